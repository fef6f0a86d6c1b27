package converter

import (
	"errors"
	"fmt"

	"github.com/ginjaninja78/opensong2propresenter/internal/opensong"
)

// Error categories shown to the operator.
const (
	CategoryXML        = "XML"
	CategoryDocument   = "Document"
	CategoryTitle      = "Title"
	CategoryFilesystem = "Filesystem"
)

var (
	// ErrRootUnreadable aborts a batch before any file is processed.
	ErrRootUnreadable = errors.New("songs directory is not readable")

	// ErrTitle marks a title that cannot be used as a file name.
	ErrTitle = errors.New("unusable title")

	// ErrCollision marks a second song mapping to an output file already
	// written in this batch (on_collision: error).
	ErrCollision = errors.New("output file already written in this batch")
)

// FileError is a failure confined to one input file. The batch reports it
// and moves on.
type FileError struct {
	// Path is the input file.
	Path string

	// Category is one of the Category* constants.
	Category string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *FileError) Unwrap() error {
	return e.Err
}

func fileError(path, category string, err error) *FileError {
	return &FileError{Path: path, Category: category, Err: err}
}

// Describe renders a per-file error as the console line shown to the
// operator. Malformed XML reports the document source; everything else
// reports its category and message.
func Describe(err error) string {
	var parseErr *opensong.ParseError
	if errors.As(err, &parseErr) {
		return "XML error: " + parseErr.Source
	}

	var fileErr *FileError
	if errors.As(err, &fileErr) {
		return fmt.Sprintf("%s error: %v", fileErr.Category, fileErr.Err)
	}

	return fmt.Sprintf("Error: %v", err)
}

// categoryOf classifies an error returned by opensong.Parse.
func categoryOf(err error) string {
	var parseErr *opensong.ParseError
	if errors.As(err, &parseErr) {
		return CategoryXML
	}
	return CategoryDocument
}
