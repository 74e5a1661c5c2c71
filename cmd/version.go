package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/nyaya-legal/nyaya/internal/display"
)

// Set at build time via -ldflags "-X github.com/nyaya-legal/nyaya/cmd.version=...".
var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

var versionShort bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		if versionShort {
			fmt.Fprintln(cmd.OutOrStdout(), version)
			return
		}
		display.Header("nyaya " + version)
		display.KeyValue("Commit", commit, display.BrightWhite)
		display.KeyValue("Built", buildDate, display.White)
		display.KeyValue("Go", runtime.Version(), display.Cyan)
		display.KeyValue("Platform", runtime.GOOS+"/"+runtime.GOARCH, display.Cyan)
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print only the version string")
	rootCmd.AddCommand(versionCmd)
}
