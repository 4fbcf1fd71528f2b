package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/killallgit/clipset/api"
	"github.com/killallgit/clipset/pkg/ffmpeg"
	"github.com/spf13/cobra"
)

var (
	serverHost string
	serverPort int
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the clipset API server",
	Long: `Start the clipset API server with the configured settings.

The server exposes the dataset operations the labeling frontend calls
(/api/export, /api/purge, /api/process, /api/jsonexport and
/api/most-replayed) along with /health, /version, /metrics and /docs.

Example:
  clipset serve
  clipset serve --port 9090
  clipset serve --host 0.0.0.0 --port 8080`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	// Server flags
	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host (overrides config)")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (overrides config)")
}

func runServer(cmd *cobra.Command, args []string) error {
	serverConfig := appConfig.Server
	if serverHost != "" {
		serverConfig.Host = serverHost
	}
	if serverPort != 0 {
		serverConfig.Port = serverPort
	}

	a, err := newApp(appConfig, tools{})
	if err != nil {
		return err
	}
	defer a.Close()

	if err := ffmpeg.New(appConfig.Processing.FFmpegPath, 0).ValidateBinaries(); err != nil {
		log.Printf("[WARN] %v; clip extraction will fail until it is installed", err)
	}

	server := api.NewServer(serverConfig, appConfig.RateLimit)
	server.SetDependencies(a.dependencies())
	if err := server.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.sweeper.Start(ctx)
	defer a.sweeper.Stop()

	// Channel to receive server errors
	serverErr := make(chan error, 1)

	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("server error: %w", err)
		}
	}()

	log.Printf("[INFO] Server is ready to handle requests at %s", server.Addr())

	// Wait for interrupt signal or server error
	select {
	case <-ctx.Done():
		log.Printf("[INFO] Shutting down server...")
	case err := <-serverErr:
		return err
	}

	shutdownTimeout := appConfig.Server.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("[ERROR] Server forced to shutdown: %v", err)
		return err
	}

	log.Printf("[INFO] Server gracefully stopped")
	return nil
}
