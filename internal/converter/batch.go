// =============================================================================
// OpenSong to ProPresenter - Batch Driver
// =============================================================================
//
// This module converts a whole songs directory.
//
// PROCESSING PIPELINE:
//   1. Check the songs directory (fatal on failure)
//   2. Discover every file below it, skipping the converter's own output
//   3. For each file, in order:
//        print "Processing: <path>", convert it, print any error, continue
//   4. If any section marks were seen, write the report file(s) at the root
//
// Files are converted one at a time. A failed file never stops the batch.
// No error count is printed at the end.
//
// =============================================================================

package converter

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/ginjaninja78/opensong2propresenter/internal/config"
	"github.com/ginjaninja78/opensong2propresenter/internal/logger"
	"github.com/ginjaninja78/opensong2propresenter/internal/report"
	"github.com/ginjaninja78/opensong2propresenter/internal/sectionmark"
	"github.com/ginjaninja78/opensong2propresenter/pkg/utils"
	"github.com/spf13/afero"
)

// =============================================================================
// SUMMARY STRUCTURE
// =============================================================================

// Summary describes a finished batch.
type Summary struct {
	// Files is the number of input files discovered.
	Files int

	// Results holds one entry per processed file, in processing order.
	Results []Result

	// Marks is the sorted, deduplicated list of marks seen.
	Marks []string

	// ReportFile is the text report path; empty when no marks were seen.
	ReportFile string

	// WorkbookFile is the XLSX report path; empty unless written.
	WorkbookFile string
}

// Converted returns the number of files written.
func (s *Summary) Converted() int {
	n := 0
	for _, r := range s.Results {
		if r.Success {
			n++
		}
	}
	return n
}

// Failed returns the results that did not produce an output file.
func (s *Summary) Failed() []Result {
	var failed []Result
	for _, r := range s.Results {
		if !r.Success {
			failed = append(failed, r)
		}
	}
	return failed
}

// =============================================================================
// BATCH STRUCTURE
// =============================================================================

// Batch converts every song below Root.
type Batch struct {
	// Fs is the filesystem to read from and write to.
	Fs afero.Fs

	// Root is the songs directory.
	Root string

	// Config holds output naming and collision settings. Nil uses defaults.
	Config *config.MainConfig

	// Logger receives diagnostics. Nil disables logging.
	Logger logger.Logger

	// Out receives the operator-facing progress and error lines.
	// Nil discards them.
	Out io.Writer
}

// Run converts the songs directory.
//
// RETURNS:
//   - A Summary of everything processed, even when an error is returned
//     after the loop started.
//   - An error wrapping ErrRootUnreadable for setup failures, the context
//     error if ctx was cancelled between files, or a report write failure.
func (b *Batch) Run(ctx context.Context) (*Summary, error) {
	cfg := b.Config
	if cfg == nil {
		cfg = config.Default()
	}
	log := b.Logger
	if log == nil {
		log = logger.Nop()
	}
	out := b.Out
	if out == nil {
		out = io.Discard
	}

	files := utils.NewFileManager(b.Fs, b.Root, cfg.ToolDir, cfg.ReportFile, cfg.WorkbookFile)

	// =========================================================================
	// STEP 1: CHECK ROOT AND DISCOVER FILES
	// =========================================================================

	if err := files.CheckRoot(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRootUnreadable, err)
	}

	inputs, err := files.DiscoverSongFiles()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRootUnreadable, err)
	}

	log.Info("Discovered song files", "root", files.Root, "count", len(inputs))

	// =========================================================================
	// STEP 2: CONVERT FILES
	// =========================================================================

	collector := sectionmark.NewCollector()
	conv := New(files, collector, cfg, log)
	summary := &Summary{Files: len(inputs)}

	var runErr error
	for _, path := range inputs {
		if err := ctx.Err(); err != nil {
			log.Warn("Batch interrupted", "remaining", len(inputs)-len(summary.Results))
			runErr = err
			break
		}

		fmt.Fprintf(out, "Processing: %s\n", path)

		result := conv.ConvertFile(path)
		summary.Results = append(summary.Results, result)
		if result.Error != nil {
			fmt.Fprintln(out, Describe(result.Error))
			log.Debug("Skipped song", "input", path, "err", result.Error)
		}
	}

	// =========================================================================
	// STEP 3: SECTION-MARK REPORT
	// =========================================================================

	summary.Marks = collector.Sorted()
	if len(summary.Marks) > 0 {
		if err := b.writeReports(files, cfg, summary); err != nil {
			return summary, err
		}
		log.Info("Wrote section-mark report", "path", summary.ReportFile, "marks", len(summary.Marks))
	}

	return summary, runErr
}

// writeReports writes the text report and, if enabled, the workbook.
func (b *Batch) writeReports(files *utils.FileManager, cfg *config.MainConfig, summary *Summary) error {
	textPath := filepath.Join(files.Root, cfg.ReportFile)
	if err := files.WriteFileAtomic(textPath, []byte(report.Text(summary.Marks))); err != nil {
		return fmt.Errorf("failed to write section-mark report: %w", err)
	}
	summary.ReportFile = textPath

	if !cfg.WriteWorkbook {
		return nil
	}

	data, err := report.Workbook(summary.Marks)
	if err != nil {
		return fmt.Errorf("failed to build section-mark workbook: %w", err)
	}
	workbookPath := filepath.Join(files.Root, cfg.WorkbookFile)
	if err := files.WriteFileAtomic(workbookPath, data); err != nil {
		return fmt.Errorf("failed to write section-mark workbook: %w", err)
	}
	summary.WorkbookFile = workbookPath
	return nil
}
