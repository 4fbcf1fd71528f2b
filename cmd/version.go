package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Set with -ldflags "-X github.com/killallgit/clipset/cmd.Version=..."
var (
	Version   = "dev"
	GitCommit = ""
	BuildTime = ""
)

// buildInfo describes the running clipset binary
type buildInfo struct {
	Version  string `json:"version"`
	Commit   string `json:"commit"`
	Built    string `json:"built"`
	Runtime  string `json:"runtime"`
	Platform string `json:"platform"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the clipset build",
	Long: `Print the clipset release, the commit it was built from and the Go
runtime it runs on. Builds without ldflags fall back to the VCS stamp
the Go toolchain embeds.`,
	Args: cobra.NoArgs,
	RunE: runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolP("short", "s", false, "print just the version number")
	versionCmd.Flags().Bool("json", false, "print build details as JSON")
}

func runVersion(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	info := currentBuild()

	if short, _ := cmd.Flags().GetBool("short"); short {
		fmt.Fprintf(out, "v%s\n", info.Version)
		return nil
	}
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}
	printBuild(out, info)
	return nil
}

func currentBuild() buildInfo {
	info := buildInfo{
		Version:  Version,
		Commit:   GitCommit,
		Built:    BuildTime,
		Runtime:  runtime.Version(),
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			switch {
			case s.Key == "vcs.revision" && info.Commit == "":
				info.Commit = s.Value
			case s.Key == "vcs.time" && info.Built == "":
				info.Built = s.Value
			}
		}
	}
	if info.Commit == "" {
		info.Commit = "unknown"
	}
	if info.Built == "" {
		info.Built = "unknown"
	}
	return info
}

func printBuild(out io.Writer, info buildInfo) {
	fmt.Fprintf(out, "clipset v%s\n", info.Version)
	fmt.Fprintf(out, "  commit   %s\n", info.Commit)
	fmt.Fprintf(out, "  built    %s\n", info.Built)
	fmt.Fprintf(out, "  runtime  %s %s\n", info.Runtime, info.Platform)
}
