// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var (
	startMarkers = []string{"*** START OF", "***START OF", "*END*THE SM"}
	endMarkers   = []string{"*** END OF", "***END OF"}
)

// DecodeText returns raw as a string. Valid UTF-8 is used as is; anything
// else is decoded as ISO-8859-1, the encoding of older Gutenberg texts.
func DecodeText(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(out)
}

// CleanText keeps the lines between the Project Gutenberg start and end
// markers. The marker lines themselves are dropped. When no line is kept the
// whole text is returned unchanged.
func CleanText(text string) string {
	var (
		b       strings.Builder
		writing bool
	)
	for _, line := range strings.SplitAfter(text, "\n") {
		switch {
		case hasAnyPrefix(line, startMarkers):
			writing = true
		case hasAnyPrefix(line, endMarkers):
			writing = false
		case writing:
			b.WriteString(line)
		}
	}
	if b.Len() == 0 {
		return text
	}
	return b.String()
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// CleanBook writes the cleaned text of the raw book to the books directory.
func (l Layout) CleanBook(id int) error {
	raw, err := os.ReadFile(l.RawBook(id))
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("book %d: %w", id, ErrNoBook)
		}
		return fmt.Errorf("reading raw book %d: %w", id, err)
	}

	if err := os.MkdirAll(dirOf(l.Book(id)), 0o755); err != nil {
		return fmt.Errorf("creating books directory: %w", err)
	}
	if err := os.WriteFile(l.Book(id), []byte(CleanText(DecodeText(raw))), 0o644); err != nil {
		return fmt.Errorf("writing clean book %d: %w", id, err)
	}
	return nil
}
