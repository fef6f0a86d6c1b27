package opensong

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("Should read title and lyrics", func(t *testing.T) {
		doc := `<?xml version="1.0" encoding="UTF-8"?>
<song>
  <title>Amazing Grace</title>
  <author>John Newton</author>
  <lyrics>[V1]
.G        C
 Amazing grace</lyrics>
</song>`
		song, err := Parse(strings.NewReader(doc), "amazing.xml")
		require.NoError(t, err)
		assert.Equal(t, "Amazing Grace", song.Title)
		assert.Equal(t, "[V1]\n.G        C\n Amazing grace", song.Lyrics)
		assert.Equal(t, "amazing.xml", song.Source)
	})

	t.Run("Should take the first match at any depth", func(t *testing.T) {
		doc := `<song><meta><title>First</title></meta><title>Second</title><lyrics>x</lyrics></song>`
		song, err := Parse(strings.NewReader(doc), "nested.xml")
		require.NoError(t, err)
		assert.Equal(t, "First", song.Title)
	})

	t.Run("Should keep punctuation in titles", func(t *testing.T) {
		doc := `<song><title>Test: Song?</title><lyrics></lyrics></song>`
		song, err := Parse(strings.NewReader(doc), "t.xml")
		require.NoError(t, err)
		assert.Equal(t, "Test: Song?", song.Title)
		assert.Empty(t, song.Lyrics)
	})

	t.Run("Should report malformed XML with its source", func(t *testing.T) {
		_, err := Parse(strings.NewReader(`<song><title>x</lyrics></song>`), "broken.xml")
		require.Error(t, err)
		var parseErr *ParseError
		require.True(t, errors.As(err, &parseErr))
		assert.Equal(t, "broken.xml", parseErr.Source)
	})

	t.Run("Should report a missing title", func(t *testing.T) {
		_, err := Parse(strings.NewReader(`<song><lyrics>x</lyrics></song>`), "notitle.xml")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMissingElement)
		assert.Contains(t, err.Error(), "<title>")
	})

	t.Run("Should report missing lyrics", func(t *testing.T) {
		_, err := Parse(strings.NewReader(`<song><title>x</title></song>`), "nolyrics.xml")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMissingElement)
		assert.Contains(t, err.Error(), "<lyrics>")
	})
}
