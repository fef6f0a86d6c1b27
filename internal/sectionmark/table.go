// =============================================================================
// OpenSong to ProPresenter - Section-Mark Table
// =============================================================================
//
// This module holds the fixed mapping from OpenSong section marks (the short
// bracketed codes that head each block of lyrics) to the labels ProPresenter
// shows for a slide group.
//
// MARK SYNTAX:
//   A section mark is "[" + one or two ASCII letters/digits + "]".
//   Marks are case-sensitive: "[c]" and "[C]" are separate keys that happen
//   to share a label.
//
// ADDING MARKS:
//   Run a batch, open sectionMarks.txt in the songs directory, and paste the
//   lines you want into markLabels below with a label filled in.
//
// =============================================================================

package sectionmark

import (
	"regexp"
	"sort"
)

// markPattern matches a single section mark token.
var markPattern = regexp.MustCompile(`\[[a-zA-Z0-9]{1,2}\]`)

// wholeMarkPattern matches a string that is exactly one section mark.
var wholeMarkPattern = regexp.MustCompile(`^\[[a-zA-Z0-9]{1,2}\]$`)

// =============================================================================
// TABLE CONTENTS
// =============================================================================

// markLabels is the built-in table. It is never modified after init; callers
// only see it through Lookup and Entries.
var markLabels = map[string]string{
	"[1]":  "Verse 1",
	"[2]":  "Verse 2",
	"[3]":  "Verse 3",
	"[4]":  "Verse 4",
	"[5]":  "Verse 5",
	"[b]":  "Bridge",
	"[B]":  "Bridge",
	"[B1]": "Bridge 1",
	"[B2]": "Bridge 2",
	"[B3]": "Bridge 3",
	"[c]":  "Chorus",
	"[C]":  "Chorus",
	"[c1]": "Chorus 1",
	"[C1]": "Chorus 1",
	"[c2]": "Chorus 2",
	"[C2]": "Chorus 2",
	"[C3]": "Chorus 3",
	"[C4]": "Chorus 4",
	"[C5]": "Chorus",
	"[Ca]": "Chorus 1",
	"[CA]": "Chorus 1",
	"[Cb]": "Chorus 2",
	"[CB]": "Chorus 2",
	"[I]":  "Intro",
	"[P]":  "Prechorus",
	"[P1]": "Prechorus",
	"[P2]": "Prechorus",
	"[r]":  "Chorus",
	"[R]":  "Chorus",
	"[R1]": "Chorus 1",
	"[R2]": "Chorus 2",
	"[R3]": "Chorus 3",
	"[R4]": "Chorus 4",
	"[R5]": "Chorus",
	"[T]":  "Turnaround",
	"[Ta]": "Turnaround",
	"[Tb]": "Turnaround",
	"[V]":  "Verse",
	"[v1]": "Verse 1",
	"[V1]": "Verse 1",
	"[v2]": "Verse 2",
	"[V2]": "Verse 2",
	"[v3]": "Verse 3",
	"[V3]": "Verse 3",
	"[v4]": "Verse 4",
	"[V4]": "Verse 4",
	"[v5]": "Verse 5",
	"[V5]": "Verse 5",
	"[V6]": "Verse 6",
	"[V7]": "Verse",
	"[V8]": "Verse",
	"[V9]": "Verse",
	"[VV]": "Verse",
}

// =============================================================================
// LOOKUP FUNCTIONS
// =============================================================================

// Entry is a single row of the table.
type Entry struct {
	// Mark is the bracketed code, e.g. "[V1]".
	Mark string

	// Label is the text ProPresenter shows, e.g. "Verse 1".
	Label string
}

// Lookup returns the label for a known mark.
//
// PARAMETERS:
//   - mark: The full bracketed token, e.g. "[C2]".
//
// RETURNS:
//   - The label and true if the mark is in the table.
//   - "" and false otherwise.
func Lookup(mark string) (string, bool) {
	label, ok := markLabels[mark]
	return label, ok
}

// Len returns the number of marks in the table.
func Len() int {
	return len(markLabels)
}

// Entries returns a copy of the table sorted by mark (byte-wise).
func Entries() []Entry {
	entries := make([]Entry, 0, len(markLabels))
	for mark, label := range markLabels {
		entries = append(entries, Entry{Mark: mark, Label: label})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Mark < entries[j].Mark
	})
	return entries
}

// IsMark reports whether s is exactly one section mark token.
func IsMark(s string) bool {
	return wholeMarkPattern.MatchString(s)
}
