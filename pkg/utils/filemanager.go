// =============================================================================
// OpenSong to ProPresenter - File Manager Utility
// =============================================================================
//
// This module provides the filesystem plumbing for a conversion batch:
//   - Song file discovery (recursive, every extension)
//   - Output path mirroring under the tool directory
//   - File name sanitizing for song titles
//   - Atomic writes (temp file + rename)
//
// All operations go through an afero.Fs so tests can run on an in-memory
// filesystem.
//
// LAYOUT:
//   <root>/Sub/Dir/song.xml  ->  <root>/<tool_dir>/Sub/Dir/<title>.txt
//
// =============================================================================

package utils

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// ErrNotDirectory is returned when the batch root is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// tempSuffix marks in-flight files written by WriteFileAtomic.
const tempSuffix = ".tmp"

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles file operations for one songs directory.
type FileManager struct {
	// Fs is the filesystem everything is read from and written to.
	Fs afero.Fs

	// Root is the songs directory given on the command line.
	Root string

	// ToolDir is the name of the output subdirectory inside Root.
	ToolDir string

	// reserved are file names directly inside Root that the converter
	// itself writes (reports); discovery skips them.
	reserved map[string]struct{}
}

// NewFileManager creates a FileManager.
//
// PARAMETERS:
//   - fs: The filesystem to use (afero.NewOsFs() in production).
//   - root: The songs directory.
//   - toolDir: The output subdirectory name, e.g. "ProPresenter".
//   - reserved: Names of report files at the root that must not be read as songs.
func NewFileManager(fs afero.Fs, root, toolDir string, reserved ...string) *FileManager {
	fm := &FileManager{
		Fs:       fs,
		Root:     filepath.Clean(root),
		ToolDir:  toolDir,
		reserved: make(map[string]struct{}, len(reserved)),
	}
	for _, name := range reserved {
		fm.reserved[name] = struct{}{}
	}
	return fm
}

// OutputRoot returns <root>/<tool_dir>.
func (fm *FileManager) OutputRoot() string {
	return filepath.Join(fm.Root, fm.ToolDir)
}

// CheckRoot verifies that the root exists and is a readable directory.
func (fm *FileManager) CheckRoot() error {
	info, err := fm.Fs.Stat(fm.Root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: %w", fm.Root, ErrNotDirectory)
	}
	dir, err := fm.Fs.Open(fm.Root)
	if err != nil {
		return err
	}
	defer dir.Close()
	if _, err := dir.Readdirnames(1); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// =============================================================================
// FILE DISCOVERY
// =============================================================================

// DiscoverSongFiles walks the root recursively and returns every regular
// file in lexical order. Symbolic links are followed, both for the root and
// for directories below it.
//
// SKIPPED:
//   - The output subtree (<root>/<tool_dir>), so a second run does not try
//     to convert its own output.
//   - Reserved report files directly inside the root.
//   - Temp files left behind by an interrupted atomic write.
//   - A linked directory that points back at one of its own parents.
//
// RETURNS:
//   - A slice of file paths, spelled below Root even when reached through a link.
//   - An error if the root or any directory below it cannot be read.
func (fm *FileManager) DiscoverSongFiles() ([]string, error) {
	info, err := fm.Fs.Stat(fm.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to walk songs directory: %w", err)
	}

	var files []string
	if err := fm.walkDir(fm.Root, info, nil, &files); err != nil {
		return nil, fmt.Errorf("failed to walk songs directory: %w", err)
	}
	return files, nil
}

// walkDir appends the song files below dir to files. parents holds the
// directories on the path from the root down to dir.
func (fm *FileManager) walkDir(dir string, info os.FileInfo, parents []os.FileInfo, files *[]string) error {
	for _, parent := range parents {
		if os.SameFile(parent, info) {
			return nil
		}
	}
	parents = append(parents, info)

	entries, err := afero.ReadDir(fm.Fs, dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		// Readdir reports links as links; Stat tells whether one leads to a
		// directory. Broken links stay files and fail when converted.
		if entry.Mode()&os.ModeSymlink != 0 {
			if target, err := fm.Fs.Stat(path); err == nil && target.IsDir() {
				entry = target
			}
		}

		if entry.IsDir() {
			if path == fm.OutputRoot() {
				continue
			}
			if err := fm.walkDir(path, entry, parents, files); err != nil {
				return err
			}
			continue
		}

		if dir == fm.Root {
			if _, ok := fm.reserved[entry.Name()]; ok {
				continue
			}
		}
		if IsTempFile(entry.Name()) {
			continue
		}

		*files = append(*files, path)
	}
	return nil
}

// =============================================================================
// OUTPUT PATHS
// =============================================================================

// MirrorDir returns the output directory for an input file: the file's
// directory relative to the root, placed under the tool directory.
func (fm *FileManager) MirrorDir(inputPath string) (string, error) {
	rel, err := filepath.Rel(fm.Root, filepath.Dir(filepath.Clean(inputPath)))
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s against %s: %w", inputPath, fm.Root, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is outside %s", inputPath, fm.Root)
	}
	return filepath.Join(fm.OutputRoot(), rel), nil
}

// EnsureDir creates dir and any missing parents.
func (fm *FileManager) EnsureDir(dir string) error {
	if err := fm.Fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// FileExists checks if a file exists.
func (fm *FileManager) FileExists(path string) bool {
	ok, err := afero.Exists(fm.Fs, path)
	return err == nil && ok
}

// =============================================================================
// WRITING
// =============================================================================

// WriteFileAtomic writes data to a temp file next to path and renames it
// into place, so path never holds a partially written file.
func (fm *FileManager) WriteFileAtomic(path string, data []byte) error {
	dir, name := filepath.Split(path)
	tmp := filepath.Join(dir, tempFileName(name))

	if err := afero.WriteFile(fm.Fs, tmp, data, 0o644); err != nil {
		_ = fm.Fs.Remove(tmp)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := fm.Fs.Rename(tmp, path); err != nil {
		_ = fm.Fs.Remove(tmp)
		return fmt.Errorf("failed to move %s into place: %w", path, err)
	}
	return nil
}

// =============================================================================
// FILE NAMING
// =============================================================================

// titleReplacer makes a song title usable as a file name.
var titleReplacer = strings.NewReplacer(
	":", "-",
	"?", "",
)

// SanitizeFileName turns a song title into a file base name: colons become
// dashes and question marks are dropped. Nothing else is changed.
//
// EXAMPLE:
//   "Test: Song?" -> "Test- Song"
func SanitizeFileName(title string) string {
	return titleReplacer.Replace(title)
}

// NumberedFileName returns "<base> (n)<ext>", or "<base><ext>" for n <= 1.
func NumberedFileName(base, ext string, n int) string {
	if n <= 1 {
		return base + ext
	}
	return fmt.Sprintf("%s (%d)%s", base, n, ext)
}

// IsTempFile reports whether name has the exact shape WriteFileAtomic gives
// its temp files: ".<name>.<uuid>.tmp".
func IsTempFile(name string) bool {
	inner, ok := strings.CutPrefix(name, ".")
	if !ok {
		return false
	}
	inner, ok = strings.CutSuffix(inner, tempSuffix)
	if !ok {
		return false
	}
	dot := strings.LastIndexByte(inner, '.')
	if dot <= 0 || len(inner)-dot-1 != 36 {
		return false
	}
	_, err := uuid.Parse(inner[dot+1:])
	return err == nil
}

// tempFileName returns the temp name WriteFileAtomic uses for name.
func tempFileName(name string) string {
	return "." + name + "." + uuid.NewString() + tempSuffix
}
