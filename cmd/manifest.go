package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// manifestCmd represents the manifest command
var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Process the store and write the train/eval manifests",
	Long: `Run a processing pass, then shuffle every clip present on disk and
write training.json and eval.json to the manifest directory.

The shuffle is seeded so the same store and seed always produce the
same split.

Example:
  clipset manifest
  clipset manifest --seed 7
  clipset manifest --random-seed`,
	RunE: runManifest,
}

func init() {
	rootCmd.AddCommand(manifestCmd)
	manifestCmd.Flags().Uint64("seed", 0, "shuffle seed (overrides config)")
	manifestCmd.Flags().Bool("random-seed", false, "draw a fresh seed for this build")
	manifestCmd.Flags().Float64("eval-ratio", 0, "share of clips in the evaluation split, 0 for none (overrides config)")
}

func runManifest(cmd *cobra.Command, args []string) error {
	cfg := *appConfig
	if cmd.Flags().Changed("seed") {
		cfg.Manifest.Seed, _ = cmd.Flags().GetUint64("seed")
	}
	if random, _ := cmd.Flags().GetBool("random-seed"); random {
		cfg.Manifest.SeedRandom = true
	}
	if cmd.Flags().Changed("eval-ratio") {
		cfg.Manifest.EvalRatio, _ = cmd.Flags().GetFloat64("eval-ratio")
	}

	a, err := newApp(&cfg, tools{})
	if err != nil {
		return err
	}
	defer a.Close()

	a.sweeper.Sweep()

	m, err := a.manifest.Build(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if m.Process != nil {
		printProcessResult(out, m.Process)
	}
	fmt.Fprintf(out, "Seed:     %d\n", m.Seed)
	fmt.Fprintf(out, "Train:    %d entries -> %s\n", len(m.Train), m.TrainPath)
	fmt.Fprintf(out, "Eval:     %d entries -> %s\n", len(m.Eval), m.EvalPath)
	return nil
}
