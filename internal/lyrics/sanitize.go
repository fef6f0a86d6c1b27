// =============================================================================
// OpenSong to ProPresenter - Line Sanitizer
// =============================================================================
//
// This module cleans a block of lyrics line by line so it can be pasted into
// ProPresenter's text import.
//
// LINE STEPS (applied in order to every line):
//   1. dropChordLine      : A line starting with "." is a chord row; it
//                           becomes an empty line (kept, so spacing survives)
//   2. trimLeadingSpaces  : Leading U+0020 spaces are removed (tabs are kept)
//   3. stripLineBreaks    : Stray CR/LF characters inside the line are removed
//
// ORDER MATTERS:
//   Chord detection runs before trimming, so " .Amaj" is NOT a chord row;
//   it is kept and trimmed to ".Amaj".
//
// OUTPUT:
//   Lines are joined with "\r\n" and a trailing "\r\n" follows the last line.
//
// =============================================================================

package lyrics

import (
	"regexp"
	"strings"
)

// LineEnding is the line terminator written to output files.
const LineEnding = "\r\n"

// lineBreakPattern splits on any line ending style.
var lineBreakPattern = regexp.MustCompile(`\r\n|\r|\n`)

// lineStep transforms a single line.
type lineStep func(line string) string

// lineSteps is the fixed order in which steps run.
var lineSteps = []lineStep{
	dropChordLine,
	trimLeadingSpaces,
	stripLineBreaks,
}

// =============================================================================
// SANITIZING FUNCTIONS
// =============================================================================

// Sanitize runs every line of lyrics through the line steps and joins the
// result with CRLF.
//
// PARAMETERS:
//   - lyrics: Normalized lyrics (section marks already replaced).
//
// RETURNS:
//   - The cleaned lyrics. The number and order of lines is unchanged.
func Sanitize(lyrics string) string {
	lines := SplitLines(lyrics)

	var b strings.Builder
	b.Grow(len(lyrics) + len(lines)*len(LineEnding))

	for _, line := range lines {
		for _, step := range lineSteps {
			line = step(line)
		}
		b.WriteString(line)
		b.WriteString(LineEnding)
	}

	return b.String()
}

// SplitLines splits s on "\r\n", "\r" or "\n" without dropping empty lines.
// An empty string yields a single empty line.
func SplitLines(s string) []string {
	return lineBreakPattern.Split(s, -1)
}

// IsChordLine reports whether line is a chord row.
func IsChordLine(line string) bool {
	return strings.HasPrefix(line, ".")
}

// =============================================================================
// LINE STEPS
// =============================================================================

func dropChordLine(line string) string {
	if IsChordLine(line) {
		return ""
	}
	return line
}

func trimLeadingSpaces(line string) string {
	return strings.TrimLeft(line, " ")
}

// stripLineBreaks removes CR and LF left inside a line. SplitLines already
// consumed every line ending, so this only matters for callers feeding
// single lines.
func stripLineBreaks(line string) string {
	if !strings.ContainsAny(line, "\r\n") {
		return line
	}
	return strings.NewReplacer("\r", "", "\n", "").Replace(line)
}
