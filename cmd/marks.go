// =============================================================================
// OpenSong to ProPresenter - Marks Command
// =============================================================================
//
// This file defines the 'marks' command, which prints the built-in
// section-mark table so an operator can compare it with sectionMarks.txt.
//
// COMMAND USAGE:
//   opensong2propresenter marks
//
// OUTPUT:
//   [1]   Verse 1
//   [2]   Verse 2
//   ...
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/ginjaninja78/opensong2propresenter/internal/sectionmark"
	"github.com/spf13/cobra"
)

// marksCmd represents the 'marks' command.
var marksCmd = &cobra.Command{
	Use:   "marks",
	Short: "List the built-in section marks",
	Long:  `List every section mark the converter knows, sorted by mark, with the label it is replaced by.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		for _, e := range sectionmark.Entries() {
			fmt.Fprintf(out, "%-5s %s\n", e.Mark, e.Label)
		}
	},
}

func init() {
	rootCmd.AddCommand(marksCmd)
}
