// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extractive selects the most representative sentences of a text.
package extractive

import (
	"errors"
	"fmt"
	"os"

	"github.com/pdiddy/book-summarizer/pkg/types"
)

// ErrEmptyText is returned when there is nothing to summarize.
var ErrEmptyText = errors.New("no sentences to summarize")

// Summarizer picks up to n sentences of text, returned in document order.
type Summarizer interface {
	Summarize(text string, n int) ([]string, error)
}

// New returns the Summarizer for method. The empty method selects Luhn.
func New(method types.ExtractiveMethod) (Summarizer, error) {
	switch method {
	case "", types.MethodLuhn:
		return Luhn{}, nil
	case types.MethodLexRank:
		return LexRank{}, nil
	default:
		return nil, fmt.Errorf("unknown extractive method %q", method)
	}
}

// SummarizeFile reads path and summarizes its contents.
func SummarizeFile(s Summarizer, path string, n int) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return s.Summarize(string(data), n)
}
