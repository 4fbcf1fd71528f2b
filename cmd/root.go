package cmd

import (
	"fmt"
	"os"

	"github.com/killallgit/clipset/internal/logging"
	"github.com/killallgit/clipset/pkg/config"
	"github.com/spf13/cobra"
)

// appConfig is loaded before any command that needs it runs
var appConfig *config.Config

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "clipset",
	Short: "Labeled audio clip dataset builder",
	Long: `clipset - builds labeled audio datasets from YouTube videos

Clip requests (a video, a time range and a set of labels) are recorded
through the HTTP API or the CLI. Processing downloads each referenced
video's audio once, cuts every requested clip to FLAC, and splits the
result into training and evaluation manifests.

Features:
  • Idempotent, concurrent source download and clip extraction
  • Per-artifact failure reporting
  • Reproducible train/eval split
  • Cached "most replayed" engagement markers`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// NewRootCmd creates a new root command (exported for testing)
func NewRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error); overrides logging.level")
}

// loadConfig initializes configuration and logging for commands that need them
func loadConfig(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" || cmd.Name() == "help" {
		return nil
	}

	if err := config.Init(); err != nil {
		return fmt.Errorf("error initializing config: %w", err)
	}

	cfg, err := config.GetConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	level := cfg.Logging.Level
	if flagLevel, _ := cmd.Flags().GetString("log-level"); flagLevel != "" {
		level = flagLevel
	}
	logging.Setup(cmd.ErrOrStderr(), level)

	appConfig = cfg
	return nil
}
