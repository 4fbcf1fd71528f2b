package cmd

import (
	"fmt"
	"io"

	"github.com/killallgit/clipset/internal/models"
	"github.com/spf13/cobra"
)

// processCmd represents the process command
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Download sources and extract every requested clip",
	Long: `Run one processing pass over the record store.

Every video referenced by a clip request has its audio downloaded once,
then each requested clip is cut to FLAC. Artifacts already on disk are
reused. Failures are reported per artifact and do not stop the pass.

Example:
  clipset process
  clipset process --strict`,
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)
	processCmd.Flags().Bool("strict", false, "exit non-zero when any artifact failed")
	processCmd.Flags().Int("workers", 0, "videos processed concurrently (overrides config)")
}

func runProcess(cmd *cobra.Command, args []string) error {
	cfg := *appConfig
	if workers, _ := cmd.Flags().GetInt("workers"); workers > 0 {
		cfg.Processing.Workers = workers
	}

	a, err := newApp(&cfg, tools{})
	if err != nil {
		return err
	}
	defer a.Close()

	a.sweeper.Sweep()

	result, err := a.processor.ProcessAll(cmd.Context())
	if result != nil {
		printProcessResult(cmd.OutOrStdout(), result)
	}
	if err != nil {
		return err
	}

	if strict, _ := cmd.Flags().GetBool("strict"); strict && result.HasFailures() {
		return fmt.Errorf("%d artifact(s) failed", len(result.Failed))
	}
	return nil
}

func printProcessResult(out io.Writer, result *models.ProcessResult) {
	fmt.Fprintf(out, "Run %s finished in %dms\n", result.RunID, result.DurationMillis)
	fmt.Fprintf(out, "Sources:  %d fetched, %d cached\n", result.SourcesFetched, result.SourcesCached)
	fmt.Fprintf(out, "Clips:    %d extracted, %d cached, %d skipped\n", result.ClipsExtracted, result.ClipsCached, result.ClipsSkipped)
	if !result.HasFailures() {
		return
	}
	fmt.Fprintf(out, "Failures: %d\n", len(result.Failed))
	for _, f := range result.Failed {
		fmt.Fprintf(out, "  %-6s %-24s %-16s %s\n", f.Kind, f.ID, f.ErrorKind, f.Message)
	}
}
