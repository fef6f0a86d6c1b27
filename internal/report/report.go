// =============================================================================
// OpenSong to ProPresenter - Section-Mark Report
// =============================================================================
//
// This module renders the section marks collected during a batch into files
// the operator uses to extend the built-in table.
//
// TEXT REPORT (sectionMarks.txt):
//   One line per mark, sorted byte-wise, joined with CRLF, no trailing line
//   break. Each line is a ready-to-paste table entry with an empty label:
//
//     { "[1]", ""},
//     { "[V1]", ""},
//     { "[z]", ""},
//
// WORKBOOK (sectionMarks.xlsx, optional):
//   The same marks with the current label (if any) and a status column, so
//   unknown marks stand out when the file is opened in a spreadsheet.
//
// =============================================================================

package report

import (
	"fmt"
	"strings"

	"github.com/ginjaninja78/opensong2propresenter/internal/sectionmark"
	"github.com/xuri/excelize/v2"
)

// LineEnding separates report lines.
const LineEnding = "\r\n"

// SheetName is the worksheet holding the marks in the workbook report.
const SheetName = "Section Marks"

// Mark statuses used in the workbook.
const (
	StatusKnown   = "known"
	StatusUnknown = "unknown"
)

// =============================================================================
// TEXT REPORT
// =============================================================================

// FormatEntry formats a mark as a table entry with an empty label.
func FormatEntry(mark string) string {
	return fmt.Sprintf("{ %q, \"\"},", mark)
}

// Text renders sorted marks as the text report. It returns "" for no marks.
//
// PARAMETERS:
//   - marks: Marks in the order they should appear (callers pass
//     Collector.Sorted()).
func Text(marks []string) string {
	lines := make([]string, len(marks))
	for i, mark := range marks {
		lines[i] = FormatEntry(mark)
	}
	return strings.Join(lines, LineEnding)
}

// =============================================================================
// WORKBOOK REPORT
// =============================================================================

// Workbook renders marks into an XLSX workbook with columns
// Mark | Label | Status.
//
// RETURNS:
//   - The encoded workbook.
//   - An error if excelize fails to build or encode it.
func Workbook(marks []string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// Rename the default sheet instead of adding a second one.
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	header := []any{"Mark", "Label", "Status"}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, mark := range marks {
		label, known := sectionmark.Lookup(mark)
		status := StatusUnknown
		if known {
			status = StatusKnown
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to address row %d: %w", i+2, err)
		}
		row := []any{mark, label, status}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write mark %s: %w", mark, err)
		}
	}

	if err := f.SetColWidth(SheetName, "A", "C", 16); err != nil {
		return nil, fmt.Errorf("failed to size columns: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}
