// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extractive

import (
	"sort"

	"github.com/pdiddy/book-summarizer/internal/nlp"
)

// maxGap is the number of consecutive insignificant words that closes a
// chunk of significant words.
const maxGap = 4

// Luhn ranks sentences by their densest cluster of significant words. A
// word is significant when its stem occurs more than once in the text and
// it is not a stop word.
type Luhn struct{}

// Summarize implements Summarizer.
func (Luhn) Summarize(text string, n int) ([]string, error) {
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

	significant := significantStems(text)
	ratings := make([]float64, len(sentences))
	for i, s := range sentences {
		ratings[i] = rateSentence(s, significant)
	}
	return topSentences(sentences, ratings, n), nil
}

func significantStems(text string) map[string]bool {
	counts := map[string]int{}
	for _, stem := range nlp.StemmedWords(text) {
		counts[stem]++
	}
	out := map[string]bool{}
	for stem, c := range counts {
		if c > 1 {
			out[stem] = true
		}
	}
	return out
}

// rateSentence returns the best chunk rating of a sentence, where a chunk
// rating is the square of its significant words over its length.
func rateSentence(sentence string, significant map[string]bool) float64 {
	var (
		chunks  [][]bool
		inChunk bool
	)
	for _, w := range nlp.Words(sentence) {
		sig := significant[nlp.Stem(w)]
		switch {
		case sig && !inChunk:
			inChunk = true
			chunks = append(chunks, []bool{true})
		case inChunk:
			chunks[len(chunks)-1] = append(chunks[len(chunks)-1], sig)
		}
		if len(chunks) > 0 && gapClosed(chunks[len(chunks)-1]) {
			inChunk = false
		}
	}

	best := 0.0
	for _, c := range chunks {
		if r := chunkRating(c); r > best {
			best = r
		}
	}
	return best
}

func gapClosed(chunk []bool) bool {
	if len(chunk) < maxGap {
		return false
	}
	for _, sig := range chunk[len(chunk)-maxGap:] {
		if sig {
			return false
		}
	}
	return true
}

func chunkRating(chunk []bool) float64 {
	for len(chunk) > 0 && !chunk[len(chunk)-1] {
		chunk = chunk[:len(chunk)-1]
	}
	sig := 0
	for _, s := range chunk {
		if s {
			sig++
		}
	}
	if sig <= 1 {
		return 0
	}
	return float64(sig*sig) / float64(len(chunk))
}

// topSentences keeps the n best rated sentences in document order. Equal
// ratings favor earlier sentences.
func topSentences(sentences []string, ratings []float64, n int) []string {
	order := make([]int, len(sentences))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return ratings[order[a]] > ratings[order[b]]
	})
	if n < len(order) {
		order = order[:n]
	}
	sort.Ints(order)

	out := make([]string, len(order))
	for i, idx := range order {
		out[i] = sentences[idx]
	}
	return out
}
