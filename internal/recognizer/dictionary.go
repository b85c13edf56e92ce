package recognizer

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Charset maps glyph IDs to display tokens. Tokens can be single Unicode
// characters or multi-codepoint strings, one per dictionary line.
type Charset struct {
	tokens []string
}

// NewCharset builds a charset from an in-memory token list.
func NewCharset(tokens []string) *Charset {
	return &Charset{tokens: append([]string(nil), tokens...)}
}

// LoadCharset loads a dictionary file where each non-empty line is a token.
// Leading/trailing whitespace is trimmed and a UTF-8 BOM on the first line
// is removed.
func LoadCharset(path string) (*Charset, error) {
	if path == "" {
		return nil, errors.New("dictionary path cannot be empty")
	}
	f, err := os.Open(path) //nolint:gosec // G304: user-provided dictionary path is expected
	if err != nil {
		return nil, fmt.Errorf("failed to open dictionary: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			fmt.Fprintf(os.Stderr, "error closing dictionary file: %v\n", cerr)
		}
	}()

	scanner := bufio.NewScanner(f)
	tokens := make([]string, 0, 512)
	first := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if first {
			line = strings.TrimPrefix(line, "\uFEFF")
			first = false
		}
		if line == "" {
			continue
		}
		tokens = append(tokens, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed reading dictionary: %w", err)
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("dictionary is empty: %s", path)
	}
	return &Charset{tokens: tokens}, nil
}

// Size returns the number of tokens.
func (c *Charset) Size() int {
	if c == nil {
		return 0
	}
	return len(c.tokens)
}

// Token returns the display token for a glyph ID, or "" when the ID falls
// outside the dictionary.
func (c *Charset) Token(id int) string {
	if c == nil || id < 0 || id >= len(c.tokens) {
		return ""
	}
	return c.tokens[id]
}

// Text assembles the decoded glyph sequence into a string, skipping IDs the
// dictionary does not cover.
func (c *Charset) Text(glyphs []Glyph) string {
	var b strings.Builder
	for _, g := range glyphs {
		b.WriteString(c.Token(g.ID))
	}
	return b.String()
}
