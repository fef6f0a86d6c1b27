// =============================================================================
// OpenSong to ProPresenter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. Called with a songs
// directory it runs the conversion; the subcommands are helpers.
//
// COBRA CLI STRUCTURE:
//   rootCmd (opensong2propresenter <songs-dir>)
//   ├── marksCmd   (opensong2propresenter marks)
//   └── versionCmd (opensong2propresenter version)
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the optional configuration file.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command. With a directory argument it converts
// every song below it.
var rootCmd = &cobra.Command{
	Use:   "opensong2propresenter <songs-dir>",
	Short: "Convert OpenSong songs to ProPresenter text files",
	Long: `opensong2propresenter converts a directory tree of OpenSong song files into
plain-text files for ProPresenter's import.

For every song it:
  - replaces section marks such as [V1] with labels such as "Verse 1"
  - drops chord rows (lines starting with ".")
  - writes <songs-dir>/ProPresenter/<same sub directories>/<title>.txt

Every section mark seen in the batch is listed in <songs-dir>/sectionMarks.txt,
ready to be pasted into the built-in table.`,
	Example: `  opensong2propresenter ~/OpenSong/Songs
  opensong2propresenter --no-wait --workbook ./Songs`,

	// A missing argument is handled in RunE so usage is printed without an
	// error exit.
	Args: cobra.MaximumNArgs(1),

	SilenceUsage:  true,
	SilenceErrors: true,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(cmd, args)
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init sets up the persistent flags.
func init() {
	// --config flag: Optional YAML configuration file.
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"Path to a YAML configuration file (optional)",
	)

	// --verbose flag: Enables debug logging.
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug logging",
	)
}
