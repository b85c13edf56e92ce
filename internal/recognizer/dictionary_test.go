package recognizer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDict(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dict.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCharset(t *testing.T) {
	path := writeDict(t, "a\nb\nc\n")
	cs, err := LoadCharset(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cs.Size())
	assert.Equal(t, "a", cs.Token(0))
	assert.Equal(t, "c", cs.Token(2))
}

func TestLoadCharsetSkipsBlankLinesAndBOM(t *testing.T) {
	path := writeDict(t, "\uFEFFx\n\n  \ny\n")
	cs, err := LoadCharset(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cs.Size())
	assert.Equal(t, "x", cs.Token(0))
	assert.Equal(t, "y", cs.Token(1))
}

func TestLoadCharsetErrors(t *testing.T) {
	_, err := LoadCharset("")
	assert.Error(t, err)

	_, err = LoadCharset(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)

	_, err = LoadCharset(writeDict(t, "\n\n"))
	assert.Error(t, err)
}

func TestTokenOutOfRange(t *testing.T) {
	cs := NewCharset([]string{"a"})
	assert.Equal(t, "", cs.Token(-1))
	assert.Equal(t, "", cs.Token(1))
}

func TestTextAssembly(t *testing.T) {
	cs := NewCharset([]string{"h", "i", "!"})
	glyphs := []Glyph{{ID: 0}, {ID: 1}, {ID: 2}, {ID: 99}}
	assert.Equal(t, "hi!", cs.Text(glyphs))
}

func TestCleanTextNormalization(t *testing.T) {
	// e + combining acute composes to a single rune under NFC.
	s := CleanText("é", DefaultCleanOptions())
	assert.Equal(t, "é", s)
}

func TestCleanTextControlAndTrim(t *testing.T) {
	s := CleanText("  ab\tc\x00  ", DefaultCleanOptions())
	assert.Equal(t, "ab\tc", s)
}

func TestCleanTextDisabled(t *testing.T) {
	opts := CleanOptions{}
	assert.Equal(t, "  x  ", CleanText("  x  ", opts))
}
