package batch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	}
}

func TestDiscoverDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.png", "b.jpg", "notes.txt", "sub/c.png")

	files, err := Discover([]string{dir}, Config{})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.png"),
		filepath.Join(dir, "b.jpg"),
	}, files)
}

func TestDiscoverRecursive(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.png", "sub/c.png", "sub/deep/d.bmp")

	files, err := Discover([]string{dir}, Config{Recursive: true})
	require.NoError(t, err)
	assert.Len(t, files, 3)
	assert.Contains(t, files, filepath.Join(dir, "sub", "deep", "d.bmp"))
}

func TestDiscoverPatterns(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "scan_001.png", "scan_002.png", "photo.png")

	files, err := Discover([]string{dir}, Config{IncludePatterns: []string{"scan_*.png"}})
	require.NoError(t, err)
	assert.Len(t, files, 2)

	files, err = Discover([]string{dir}, Config{ExcludePatterns: []string{"scan_002*"}})
	require.NoError(t, err)
	assert.NotContains(t, files, filepath.Join(dir, "scan_002.png"))
	assert.Len(t, files, 2)
}

func TestDiscoverExplicitFile(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.png", "notes.txt")

	files, err := Discover([]string{filepath.Join(dir, "a.png")}, Config{})
	require.NoError(t, err)
	assert.Len(t, files, 1)

	_, err = Discover([]string{filepath.Join(dir, "notes.txt")}, Config{})
	assert.Error(t, err)
}

func TestDiscoverMissingPath(t *testing.T) {
	_, err := Discover([]string{filepath.Join(t.TempDir(), "nope")}, Config{})
	assert.Error(t, err)
}
