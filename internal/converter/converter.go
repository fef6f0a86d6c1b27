// =============================================================================
// OpenSong to ProPresenter - Converter Module
// =============================================================================
//
// This module converts a single OpenSong file into a ProPresenter text file.
//
// CONVERSION PIPELINE:
//   1. Read and parse the song (title + lyrics)
//   2. Record every section mark in the raw lyrics
//   3. Derive the output file name from the title
//   4. Replace known section marks with their labels
//   5. Clean every line (chord rows, leading spaces, CRLF endings)
//   6. Write "{title}\n\n{lyrics}" to the mirrored output path
//
// FAILURES:
//   Every failure is returned in Result.Error as a *FileError (or wraps a
//   *opensong.ParseError). Nothing is retried.
//
// =============================================================================

package converter

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ginjaninja78/opensong2propresenter/internal/config"
	"github.com/ginjaninja78/opensong2propresenter/internal/logger"
	"github.com/ginjaninja78/opensong2propresenter/internal/lyrics"
	"github.com/ginjaninja78/opensong2propresenter/internal/opensong"
	"github.com/ginjaninja78/opensong2propresenter/internal/sectionmark"
	"github.com/ginjaninja78/opensong2propresenter/pkg/utils"
)

// OutputExt is the extension of converted files.
const OutputExt = ".txt"

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of converting a single file.
type Result struct {
	// FilePath is the input file.
	FilePath string

	// OutputFile is the written text file; empty on failure.
	OutputFile string

	// Title is the song title as found in the document.
	Title string

	// NewMarks is how many marks this file added to the batch collector.
	NewMarks int

	// Success indicates whether the file was written.
	Success bool

	// Error is nil on success.
	Error error
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter converts files for one batch. It remembers which output files
// it has written so collisions can be handled per config.OnCollision.
type Converter struct {
	files     *utils.FileManager
	collector *sectionmark.Collector
	config    *config.MainConfig
	logger    logger.Logger

	// claimed holds the claim keys of output paths written during this batch.
	claimed map[string]struct{}
}

// New creates a Converter.
//
// PARAMETERS:
//   - files: File manager rooted at the songs directory.
//   - collector: Receives the section marks of every converted song.
//   - cfg: Converter settings (collision policy).
//   - log: Diagnostic logger; nil means no logging.
func New(files *utils.FileManager, collector *sectionmark.Collector, cfg *config.MainConfig, log logger.Logger) *Converter {
	if log == nil {
		log = logger.Nop()
	}
	return &Converter{
		files:     files,
		collector: collector,
		config:    cfg,
		logger:    log,
		claimed:   make(map[string]struct{}),
	}
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// ConvertFile runs the conversion pipeline for one input file.
func (c *Converter) ConvertFile(path string) Result {
	result := Result{FilePath: path}

	// =========================================================================
	// STEP 1: PARSE
	// =========================================================================

	song, err := c.readSong(path)
	if err != nil {
		result.Error = err
		return result
	}
	result.Title = song.Title

	// =========================================================================
	// STEP 2: MARKS
	// =========================================================================

	// Marks count even when the title turns out to be unusable.
	result.NewMarks = c.collector.Collect(song.Lyrics)

	// =========================================================================
	// STEP 3: FILE NAME
	// =========================================================================

	baseName, err := FileBaseName(song.Title)
	if err != nil {
		result.Error = fileError(path, CategoryTitle, err)
		return result
	}

	// =========================================================================
	// STEPS 4-5: LINES
	// =========================================================================

	content := Render(song)

	// =========================================================================
	// STEP 6: WRITE
	// =========================================================================

	outputPath, err := c.writeOutput(path, baseName, content)
	if err != nil {
		result.Error = err
		return result
	}

	c.logger.Debug("Converted song", "source", song.Source, "output", outputPath, "new_marks", result.NewMarks)

	result.OutputFile = outputPath
	result.Success = true
	return result
}

// =============================================================================
// PIPELINE STAGES
// =============================================================================

// Render builds the output text for a song: the untouched title, a blank
// line, then the normalized and sanitized lyrics.
func Render(song *opensong.Song) string {
	body := lyrics.Sanitize(sectionmark.Normalize(song.Lyrics))
	return song.Title + "\n\n" + body
}

// FileBaseName derives the output base name from a title.
//
// RETURNS:
//   - The sanitized name (see utils.SanitizeFileName).
//   - An error wrapping ErrTitle if the name is blank or would escape the
//     output directory.
func FileBaseName(title string) (string, error) {
	name := utils.SanitizeFileName(title)
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("%w: title is empty", ErrTitle)
	}
	if strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q contains a path separator", ErrTitle, title)
	}
	return name, nil
}

// readSong opens and parses an input file.
func (c *Converter) readSong(path string) (*opensong.Song, error) {
	f, err := c.files.Fs.Open(path)
	if err != nil {
		return nil, fileError(path, CategoryFilesystem, err)
	}
	defer f.Close()

	song, err := opensong.Parse(f, path)
	if err != nil {
		return nil, fileError(path, categoryOf(err), err)
	}
	return song, nil
}

// writeOutput writes content under the mirrored directory and returns the
// final path.
func (c *Converter) writeOutput(inputPath, baseName, content string) (string, error) {
	dir, err := c.files.MirrorDir(inputPath)
	if err != nil {
		return "", fileError(inputPath, CategoryFilesystem, err)
	}
	if err := c.files.EnsureDir(dir); err != nil {
		return "", fileError(inputPath, CategoryFilesystem, err)
	}

	outputPath, err := c.claim(dir, baseName)
	if err != nil {
		return "", fileError(inputPath, CategoryFilesystem, err)
	}

	if err := c.files.WriteFileAtomic(outputPath, []byte(content)); err != nil {
		delete(c.claimed, claimKey(outputPath))
		return "", fileError(inputPath, CategoryFilesystem, err)
	}
	return outputPath, nil
}

// claim picks the output path for baseName in dir according to the
// collision policy and reserves it for the rest of the batch.
//
// COLLISION POLICIES:
//   - suffix:    "Name.txt", then "Name (2).txt", "Name (3).txt", ...
//   - overwrite: always "Name.txt"; the later song wins
//   - error:     a second "Name.txt" fails with ErrCollision
//
// Names are compared without regard to case, since "Amazing Grace.txt" and
// "Amazing grace.txt" are one file on Windows and macOS. The returned path
// keeps the title's own casing.
//
// Files left over from earlier runs are not collisions; they are replaced.
func (c *Converter) claim(dir, baseName string) (string, error) {
	first := filepath.Join(dir, utils.NumberedFileName(baseName, OutputExt, 1))
	if _, taken := c.claimed[claimKey(first)]; !taken {
		c.claimed[claimKey(first)] = struct{}{}
		if c.files.FileExists(first) {
			c.logger.Debug("Replacing output from an earlier run", "output", first)
		}
		return first, nil
	}

	switch c.config.OnCollision {
	case config.CollisionOverwrite:
		c.logger.Warn("Overwriting song converted earlier in this batch", "output", first)
		return first, nil

	case config.CollisionError:
		return "", fmt.Errorf("%w: %s", ErrCollision, first)

	default:
		for n := 2; ; n++ {
			candidate := filepath.Join(dir, utils.NumberedFileName(baseName, OutputExt, n))
			if _, taken := c.claimed[claimKey(candidate)]; taken {
				continue
			}
			c.claimed[claimKey(candidate)] = struct{}{}
			c.logger.Warn("Song title already used in this directory; numbering output", "output", candidate)
			return candidate, nil
		}
	}
}

// claimKey folds an output path to the form used to detect collisions.
func claimKey(path string) string {
	return strings.ToLower(path)
}
