// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package abstractive

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/pdiddy/book-summarizer/internal/nlp"
	"github.com/pdiddy/book-summarizer/pkg/types"
)

const (
	defaultSegmentTokens = 200
	defaultMaxChars      = 1000000

	// segmentHeader precedes every model input line. The model was trained
	// on title, summary, article triples; only the article is real.
	segmentHeader = "<s> title </s><s> summary </s><sec>"
)

// Prepared is text converted to the model's input format.
type Prepared struct {
	// Input holds one segment per line.
	Input string
	// Segments is the number of lines in Input.
	Segments int
	// Text is the folded, lower-cased text that was segmented.
	Text string
}

// Prepare folds text to lower-case ASCII, truncates it, splits it into
// tokenized sentences, and packs the sentences into segments of at most
// cfg.SegmentTokens tokens. A single sentence longer than the budget forms
// its own segment.
func Prepare(text string, cfg types.AbstractiveConfig) (Prepared, error) {
	limit := cfg.SegmentTokens
	if limit <= 0 {
		limit = defaultSegmentTokens
	}
	maxChars := cfg.MaxChars
	if maxChars <= 0 {
		maxChars = defaultMaxChars
	}

	folded := strings.ToLower(FoldASCII(text))
	if len(folded) > maxChars {
		folded = folded[:maxChars]
	}

	sentences, err := nlp.Sentences(folded)
	if err != nil {
		return Prepared{}, err
	}
	var tokenized [][]string
	for _, s := range sentences {
		toks, err := nlp.Tokens(s)
		if err != nil {
			return Prepared{}, err
		}
		kept := toks[:0]
		for _, t := range toks {
			if t != "" && !strings.Contains(t, "\n") {
				kept = append(kept, t)
			}
		}
		if len(kept) > 0 {
			tokenized = append(tokenized, kept)
		}
	}

	segments := Pack(tokenized, limit)
	var b strings.Builder
	for _, seg := range segments {
		b.WriteString(segmentHeader)
		b.WriteString(seg)
		b.WriteByte('\n')
	}
	return Prepared{Input: b.String(), Segments: len(segments), Text: folded}, nil
}

// Pack joins tokenized sentences into segments of at most limit tokens.
func Pack(sentences [][]string, limit int) []string {
	var (
		segments []string
		current  []string
		size     int
	)
	for _, toks := range sentences {
		if size+len(toks) > limit && len(current) > 0 {
			segments = append(segments, strings.Join(current, " "))
			current, size = nil, 0
		}
		current = append(current, strings.Join(toks, " "))
		size += len(toks)
	}
	if len(current) > 0 {
		segments = append(segments, strings.Join(current, " "))
	}
	return segments
}

// FoldASCII decomposes accented letters and drops every remaining non-ASCII
// rune, so "café" becomes "cafe".
func FoldASCII(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range norm.NFKD.String(s) {
		if r < unicode.MaxASCII+1 {
			b.WriteRune(r)
		}
	}
	return b.String()
}
