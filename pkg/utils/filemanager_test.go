package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
}

func TestFileManager_CheckRoot(t *testing.T) {
	t.Run("Should accept an existing directory", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, fs.MkdirAll("/songs", 0o755))
		fm := NewFileManager(fs, "/songs", "ProPresenter")
		assert.NoError(t, fm.CheckRoot())
	})

	t.Run("Should reject a missing directory", func(t *testing.T) {
		fm := NewFileManager(afero.NewMemMapFs(), "/absent", "ProPresenter")
		assert.Error(t, fm.CheckRoot())
	})

	t.Run("Should reject a file", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		writeFile(t, fs, "/songs.xml", "<song/>")
		fm := NewFileManager(fs, "/songs.xml", "ProPresenter")
		assert.ErrorIs(t, fm.CheckRoot(), ErrNotDirectory)
	})
}

func TestFileManager_DiscoverSongFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/songs/b.xml", "")
	writeFile(t, fs, "/songs/a", "")
	writeFile(t, fs, "/songs/Sub/Dir/c.txt", "")
	writeFile(t, fs, "/songs/ProPresenter/old.txt", "")
	writeFile(t, fs, "/songs/sectionMarks.txt", "")
	writeFile(t, fs, "/songs/Sub/sectionMarks.txt", "")
	writeFile(t, fs, "/songs/Sub/"+tempFileName("x.txt"), "")
	writeFile(t, fs, "/songs/Sub/.backup.tmp", "")

	fm := NewFileManager(fs, "/songs", "ProPresenter", "sectionMarks.txt")
	files, err := fm.DiscoverSongFiles()
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join("/songs", "Sub", ".backup.tmp"),
		filepath.Join("/songs", "Sub", "Dir", "c.txt"),
		filepath.Join("/songs", "Sub", "sectionMarks.txt"),
		filepath.Join("/songs", "a"),
		filepath.Join("/songs", "b.xml"),
	}, files)
}

func symlink(t *testing.T, target, link string) {
	t.Helper()
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
}

func TestFileManager_DiscoverSongFilesLinks(t *testing.T) {
	t.Run("Should walk a linked root", func(t *testing.T) {
		base := t.TempDir()
		target := filepath.Join(base, "real")
		writeFile(t, afero.NewOsFs(), filepath.Join(target, "Sub", "a.xml"), "")
		link := filepath.Join(base, "link")
		symlink(t, target, link)

		fm := NewFileManager(afero.NewOsFs(), link, "ProPresenter")
		require.NoError(t, fm.CheckRoot())
		files, err := fm.DiscoverSongFiles()
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(link, "Sub", "a.xml")}, files)
	})

	t.Run("Should walk linked subdirectories", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, afero.NewOsFs(), filepath.Join(root, "Sub", "a.xml"), "")
		symlink(t, filepath.Join(root, "Sub"), filepath.Join(root, "Linked"))

		fm := NewFileManager(afero.NewOsFs(), root, "ProPresenter")
		files, err := fm.DiscoverSongFiles()
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(root, "Linked", "a.xml"),
			filepath.Join(root, "Sub", "a.xml"),
		}, files)
	})

	t.Run("Should not loop on a link back to a parent", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, afero.NewOsFs(), filepath.Join(root, "Sub", "a.xml"), "")
		symlink(t, root, filepath.Join(root, "Sub", "Up"))

		fm := NewFileManager(afero.NewOsFs(), root, "ProPresenter")
		files, err := fm.DiscoverSongFiles()
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(root, "Sub", "a.xml")}, files)
	})

	t.Run("Should keep a broken link as a song file", func(t *testing.T) {
		root := t.TempDir()
		symlink(t, filepath.Join(root, "gone.xml"), filepath.Join(root, "dangling.xml"))

		fm := NewFileManager(afero.NewOsFs(), root, "ProPresenter")
		files, err := fm.DiscoverSongFiles()
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(root, "dangling.xml")}, files)
	})
}

func TestFileManager_MirrorDir(t *testing.T) {
	fm := NewFileManager(afero.NewMemMapFs(), "/songs", "ProPresenter")

	t.Run("Should mirror nested directories", func(t *testing.T) {
		dir, err := fm.MirrorDir("/songs/Sub/Dir/song.xml")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("/songs", "ProPresenter", "Sub", "Dir"), dir)
	})

	t.Run("Should map root files to the tool directory", func(t *testing.T) {
		dir, err := fm.MirrorDir("/songs/song.xml")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("/songs", "ProPresenter"), dir)
	})

	t.Run("Should refuse files outside the root", func(t *testing.T) {
		_, err := fm.MirrorDir("/elsewhere/song.xml")
		assert.Error(t, err)
	})
}

func TestFileManager_WriteFileAtomic(t *testing.T) {
	fs := afero.NewMemMapFs()
	fm := NewFileManager(fs, "/songs", "ProPresenter")
	require.NoError(t, fm.EnsureDir("/songs/ProPresenter"))

	path := "/songs/ProPresenter/Song.txt"
	require.NoError(t, fm.WriteFileAtomic(path, []byte("first")))
	require.NoError(t, fm.WriteFileAtomic(path, []byte("second")))

	got, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))

	entries, err := afero.ReadDir(fs, "/songs/ProPresenter")
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestSanitizeFileName(t *testing.T) {
	assert.Equal(t, "Test- Song", SanitizeFileName("Test: Song?"))
	assert.Equal(t, "How Great", SanitizeFileName("How Great"))
	assert.Equal(t, "a-b-c", SanitizeFileName("a:b:c???"))
}

func TestNumberedFileName(t *testing.T) {
	assert.Equal(t, "Song.txt", NumberedFileName("Song", ".txt", 1))
	assert.Equal(t, "Song (2).txt", NumberedFileName("Song", ".txt", 2))
}

func TestIsTempFile(t *testing.T) {
	assert.True(t, IsTempFile(tempFileName("Song.txt")))
	assert.True(t, IsTempFile("."+"Song.txt."+uuid.NewString()+".tmp"))
	assert.False(t, IsTempFile(".Song.txt.abc.tmp"))
	assert.False(t, IsTempFile(".backup.tmp"))
	assert.False(t, IsTempFile("."+uuid.NewString()+".tmp"))
	assert.False(t, IsTempFile("Song.tmp"))
	assert.False(t, IsTempFile(".hidden"))
}
