package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// purgeCmd represents the purge command
var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete every clip request",
	Long: `Delete every clip request from the record store.

Downloaded sources, extracted clips and cached engagement markers are
left in place.`,
	RunE: runPurge,
}

func init() {
	rootCmd.AddCommand(purgeCmd)
	purgeCmd.Flags().Bool("yes", false, "confirm the purge")
}

func runPurge(cmd *cobra.Command, args []string) error {
	if yes, _ := cmd.Flags().GetBool("yes"); !yes {
		return fmt.Errorf("refusing to purge without --yes")
	}

	a, err := newApp(appConfig, tools{})
	if err != nil {
		return err
	}
	defer a.Close()

	removed, err := a.records.Purge(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Purged %d clip request(s)\n", removed)
	return nil
}
