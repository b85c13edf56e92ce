package recognizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// CleanOptions controls post-assembly text cleanup.
type CleanOptions struct {
	NormalizeForm      string // "NFC" (default), "NFKC", "" to disable
	RemoveControlChars bool
	Trim               bool
}

// DefaultCleanOptions returns sensible defaults for OCR output.
func DefaultCleanOptions() CleanOptions {
	return CleanOptions{
		NormalizeForm:      "NFC",
		RemoveControlChars: true,
		Trim:               true,
	}
}

// CleanText normalizes assembled text before it leaves the pipeline.
func CleanText(s string, opts CleanOptions) string {
	if s == "" {
		return s
	}
	switch opts.NormalizeForm {
	case "NFC":
		s = norm.NFC.String(s)
	case "NFKC":
		s = norm.NFKC.String(s)
	}
	if opts.RemoveControlChars {
		s = strings.Map(func(r rune) rune {
			if unicode.IsControl(r) && r != '\n' && r != '\t' {
				return -1
			}
			return r
		}, s)
	}
	if opts.Trim {
		s = strings.TrimSpace(s)
	}
	return s
}
