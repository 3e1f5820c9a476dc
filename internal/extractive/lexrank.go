// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extractive

import (
	"fmt"
	"strings"

	"github.com/ramenjuniti/lexrankmmr"

	"github.com/pdiddy/book-summarizer/internal/nlp"
)

// lexrankDelimiter is the sentence separator lexrankmmr splits on.
const lexrankDelimiter = "。"

// LexRank ranks sentences by eigenvector centrality in the sentence
// similarity graph, with maximal marginal relevance to limit redundancy.
type LexRank struct{}

// Summarize implements Summarizer.
func (LexRank) Summarize(text string, n int) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}
	sentences, err := nlp.Sentences(text)
	if err != nil {
		return nil, err
	}
	if len(sentences) == 0 {
		return nil, ErrEmptyText
	}
	if len(sentences) <= n {
		return sentences, nil
	}

	position := map[string]int{}
	for i, s := range sentences {
		s = strings.ReplaceAll(s, lexrankDelimiter, " ")
		sentences[i] = s
		if _, ok := position[s]; !ok {
			position[s] = i
		}
	}

	data, err := lexrankmmr.New(
		lexrankmmr.MaxLines(n),
		lexrankmmr.MaxCharacters(len(text)+1),
	)
	if err != nil {
		return nil, fmt.Errorf("initializing lexrank: %w", err)
	}
	if err := data.Summarize(strings.Join(sentences, lexrankDelimiter) + lexrankDelimiter); err != nil {
		return nil, fmt.Errorf("lexrank summarization: %w", err)
	}

	picked := make([]bool, len(sentences))
	for _, score := range data.LineLimitedSummary {
		s := strings.TrimSpace(strings.TrimSuffix(score.Sentence, lexrankDelimiter))
		if i, ok := position[s]; ok {
			picked[i] = true
		}
	}

	var out []string
	for i, s := range sentences {
		if picked[i] {
			out = append(out, s)
		}
	}
	return out, nil
}
