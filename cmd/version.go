package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/ginjaninja78/opensong2propresenter/internal/sectionmark"
	"github.com/spf13/cobra"
)

// Version and BuildDate are stamped by the release build:
//
//	go build -ldflags "-X github.com/ginjaninja78/opensong2propresenter/cmd.Version=1.1.0 \
//	  -X github.com/ginjaninja78/opensong2propresenter/cmd.BuildDate=2024-05-01"
var (
	Version   = "1.1.0"
	BuildDate = ""
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s %s\n", cmd.Root().Name(), Version)
		fmt.Fprintf(out, "  built:         %s\n", buildStamp())
		fmt.Fprintf(out, "  go:            %s\n", runtime.Version())
		fmt.Fprintf(out, "  section marks: %d\n", sectionmark.Len())
	},
}

// buildStamp prefers the ldflags date, then the VCS time recorded by the
// toolchain.
func buildStamp() string {
	if BuildDate != "" {
		return BuildDate
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.time" {
				return s.Value
			}
		}
	}
	return "unknown"
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
