package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

// markersCmd represents the markers command
var markersCmd = &cobra.Command{
	Use:   "markers <videoId>",
	Short: "Print the most-replayed markers for a video",
	Long: `Print the engagement markers for a video as JSON.

Stored markers are returned directly. Otherwise the provider is queried
once and its markers are stored for next time.`,
	Args: cobra.ExactArgs(1),
	RunE: runMarkers,
}

func init() {
	rootCmd.AddCommand(markersCmd)
}

func runMarkers(cmd *cobra.Command, args []string) error {
	a, err := newApp(appConfig, tools{})
	if err != nil {
		return err
	}
	defer a.Close()

	markers, err := a.engagement.GetMarkers(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(markers)
}
