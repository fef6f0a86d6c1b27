// =============================================================================
// OpenSong to ProPresenter - OpenSong Song Parser
// =============================================================================
//
// This module reads an OpenSong song file and extracts the two fields the
// converter needs. Everything else in the file is ignored.
//
// EXPECTED STRUCTURE:
//   <song>
//     <title>Amazing Grace</title>
//     <lyrics>[V1]
//   .G         C
//    Amazing grace how sweet the sound
//     </lyrics>
//     ...
//   </song>
//
//   The root element name is not checked. "title" and "lyrics" may sit at any
//   depth below the root; the first match in document order wins.
//
// =============================================================================

package opensong

import (
	"errors"
	"fmt"
	"io"

	"github.com/antchfx/xmlquery"
)

// ErrMissingElement is returned when a required element is absent.
var ErrMissingElement = errors.New("missing element")

// =============================================================================
// SONG STRUCTURE
// =============================================================================

// Song is the part of an OpenSong document the converter uses.
type Song struct {
	// Title is the text of the first <title> element, untouched.
	Title string

	// Lyrics is the text of the first <lyrics> element, including section
	// marks and chord rows.
	Lyrics string

	// Source identifies where the song was read from (usually a file path).
	Source string
}

// ParseError reports a document that is not well-formed XML.
type ParseError struct {
	// Source identifies the document that failed to parse.
	Source string

	// Err is the underlying decoder error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing XML %s: %v", e.Source, e.Err)
}

// Unwrap returns the decoder error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// =============================================================================
// PARSING FUNCTIONS
// =============================================================================

// Parse reads a song document from r.
//
// PARAMETERS:
//   - r: The XML document.
//   - source: A name for the document used in errors.
//
// RETURNS:
//   - The parsed Song.
//   - A *ParseError if the XML is malformed, or an error wrapping
//     ErrMissingElement if title or lyrics is absent.
func Parse(r io.Reader, source string) (*Song, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, &ParseError{Source: source, Err: err}
	}

	title, err := firstText(doc, "title")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}

	lyrics, err := firstText(doc, "lyrics")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}

	return &Song{
		Title:  title,
		Lyrics: lyrics,
		Source: source,
	}, nil
}

// firstText returns the text content of the first element with the given
// name below the document root.
func firstText(doc *xmlquery.Node, name string) (string, error) {
	node, err := xmlquery.Query(doc, "/*/descendant::"+name)
	if err != nil {
		return "", fmt.Errorf("query %s: %w", name, err)
	}
	if node == nil {
		return "", fmt.Errorf("%w: <%s>", ErrMissingElement, name)
	}
	return node.InnerText(), nil
}
