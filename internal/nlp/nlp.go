// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package nlp wraps the sentence segmenter, word tokenizer and stemmer shared
// by the extractive, abstractive and analysis stages.
package nlp

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/jdkato/prose/v2"
	"github.com/kljensen/snowball"
	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

// wordRe matches a run of letters or digits with optional apostrophe suffixes.
var wordRe = regexp.MustCompile(`[\p{L}\p{N}]+(?:['’]\p{L}+)*`)

// englishTokenizer loads the punkt training data once.
var englishTokenizer = sync.OnceValues(func() (*sentences.DefaultSentenceTokenizer, error) {
	return english.NewSentenceTokenizer(nil)
})

// Sentences splits text into trimmed, non-empty English sentences.
func Sentences(text string) ([]string, error) {
	tok, err := englishTokenizer()
	if err != nil {
		return nil, fmt.Errorf("loading sentence tokenizer: %w", err)
	}

	var out []string
	for _, s := range tok.Tokenize(text) {
		if t := strings.TrimSpace(s.Text); t != "" {
			out = append(out, t)
		}
	}
	return out, nil
}

// Tokens splits text into word and punctuation tokens. Contractions are
// separated from their stems ("don't" becomes "do", "n't").
func Tokens(text string) ([]string, error) {
	doc, err := prose.NewDocument(text,
		prose.WithSegmentation(false),
		prose.WithTagging(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil, fmt.Errorf("tokenizing: %w", err)
	}

	toks := doc.Tokens()
	out := make([]string, 0, len(toks))
	for _, t := range toks {
		out = append(out, t.Text)
	}
	return out, nil
}

// Words returns the lower-cased words of text, ignoring punctuation.
func Words(text string) []string {
	words := wordRe.FindAllString(text, -1)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return words
}

// Stem reduces an English word to its snowball stem. Words the stemmer
// rejects are returned unchanged.
func Stem(word string) string {
	s, err := snowball.Stem(word, "english", true)
	if err != nil || s == "" {
		return word
	}
	return s
}

// StemmedWords returns the stems of the non-stop words of text.
func StemmedWords(text string) []string {
	var out []string
	for _, w := range Words(text) {
		if IsStopWord(w) {
			continue
		}
		out = append(out, Stem(w))
	}
	return out
}
