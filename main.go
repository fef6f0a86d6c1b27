// =============================================================================
// OpenSong to ProPresenter - Main Entry Point
// =============================================================================
//
// This is the main entry point for the converter CLI. It hands control to
// the Cobra commands in the cmd package.
//
// USAGE:
//   opensong2propresenter <songs-dir>   - Convert every song below songs-dir
//   opensong2propresenter marks         - List the built-in section marks
//   opensong2propresenter version       - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Conversion logic (not for external import)
//   - pkg/           : Shared filesystem utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/opensong2propresenter/cmd"
)

// main is the entry point of the application.
func main() {
	cmd.Execute()
}
