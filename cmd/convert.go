// =============================================================================
// OpenSong to ProPresenter - Convert Command
// =============================================================================
//
// This file holds the conversion run behind the root command.
//
// FLAGS:
//   --no-wait   : Do not wait for Enter before exiting
//   --workbook  : Also write sectionMarks.xlsx
//
// EXIT BEHAVIOR:
//   A missing directory argument or an unreadable directory prints a message
//   and exits normally. Per-song errors are printed and skipped.
//
// =============================================================================

package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ginjaninja78/opensong2propresenter/internal/config"
	"github.com/ginjaninja78/opensong2propresenter/internal/converter"
	"github.com/ginjaninja78/opensong2propresenter/internal/logger"
	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// noWait skips the final prompt.
var noWait bool

// writeWorkbook forces the XLSX report on.
var writeWorkbook bool

// songsFs is the filesystem conversions run against.
var songsFs afero.Fs = afero.NewOsFs()

// isTerminal reports whether r is an interactive terminal.
var isTerminal = func(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func init() {
	rootCmd.Flags().BoolVar(
		&noWait,
		"no-wait",
		false,
		"Exit without waiting for Enter",
	)

	rootCmd.Flags().BoolVar(
		&writeWorkbook,
		"workbook",
		false,
		"Also write the section-mark report as an XLSX workbook",
	)
}

// runConvert converts the directory named by args[0].
func runConvert(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		fmt.Fprintln(out, "Error: path to OpenSong data directory is missing")
		fmt.Fprintln(out, "Example: opensong2propresenter ~/OpenSong/Songs")
		waitForEnter(cmd)
		return nil
	}

	cfg, err := config.LoadMainConfig(cfgFile)
	if err != nil {
		return err
	}
	if writeWorkbook {
		cfg.WriteWorkbook = true
	}
	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}

	batch := &converter.Batch{
		Fs:     songsFs,
		Root:   args[0],
		Config: cfg,
		Logger: logger.New(logger.Options{Level: level, Output: cmd.ErrOrStderr()}),
		Out:    out,
	}

	if _, err := batch.Run(cmd.Context()); err != nil {
		if errors.Is(err, converter.ErrRootUnreadable) {
			fmt.Fprintf(out, "Error: %v\n", err)
			return nil
		}
		return err
	}

	waitForEnter(cmd)
	return nil
}

// waitForEnter blocks until the operator presses Enter, so a console window
// opened by double-clicking stays readable. Cancelling the command context
// (Ctrl-C) ends the wait too. It does nothing when stdin is not a terminal
// or --no-wait is set.
func waitForEnter(cmd *cobra.Command) {
	in := cmd.InOrStdin()
	if noWait || !isTerminal(in) {
		return
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	out := cmd.OutOrStdout()
	fmt.Fprint(out, "Press Enter to continue...")

	entered := make(chan struct{})
	go func() {
		_, _ = bufio.NewReader(in).ReadString('\n')
		close(entered)
	}()

	select {
	case <-entered:
	case <-ctx.Done():
		fmt.Fprintln(out)
	}
}
