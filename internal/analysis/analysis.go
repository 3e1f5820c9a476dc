// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analysis compares generated summaries with reference summaries.
package analysis

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pdiddy/book-summarizer/internal/nlp"
	"github.com/pdiddy/book-summarizer/pkg/types"
)

// Metric names written to analysis files.
const (
	MetricCosine = "cosine similarity"
	MetricRouge1 = "rouge-1"
	MetricRouge2 = "rouge-2"
	MetricRougeL = "rouge-l"
)

// ErrNoReference is returned when the reference summary is missing.
var ErrNoReference = errors.New("reference summary not found")

// CosineSimilarity is the cosine of the term-frequency vectors of a and b
// over stemmed non-stop words. It is 0 when either text has no terms.
func CosineSimilarity(a, b string) float64 {
	ta, tb := termFrequencies(a), termFrequencies(b)
	var dot, na, nb float64
	for term, x := range ta {
		na += x * x
		dot += x * tb[term]
	}
	for _, y := range tb {
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

func termFrequencies(text string) map[string]float64 {
	tf := map[string]float64{}
	for _, stem := range nlp.StemmedWords(text) {
		tf[stem]++
	}
	return tf
}

// RougeN is the share of distinct reference n-grams that also occur in the
// evaluated text.
func RougeN(evaluated, reference string, n int) float64 {
	ref := ngrams(nlp.Words(reference), n)
	if len(ref) == 0 {
		return 0
	}
	eval := ngrams(nlp.Words(evaluated), n)
	overlap := 0
	for g := range ref {
		if eval[g] {
			overlap++
		}
	}
	return float64(overlap) / float64(len(ref))
}

func ngrams(words []string, n int) map[string]bool {
	out := map[string]bool{}
	if n <= 0 {
		return out
	}
	for i := 0; i+n <= len(words); i++ {
		out[strings.Join(words[i:i+n], " ")] = true
	}
	return out
}

// RougeL is the F1 measure of the longest common word subsequence of the
// evaluated and reference texts.
func RougeL(evaluated, reference string) float64 {
	ew, rw := nlp.Words(evaluated), nlp.Words(reference)
	if len(ew) == 0 || len(rw) == 0 {
		return 0
	}
	lcs := float64(lcsLength(ew, rw))
	if lcs == 0 {
		return 0
	}
	p, r := lcs/float64(len(ew)), lcs/float64(len(rw))
	return 2 * p * r / (p + r)
}

func lcsLength(a, b []string) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			switch {
			case a[i-1] == b[j-1]:
				cur[j] = prev[j-1] + 1
			case prev[j] >= cur[j-1]:
				cur[j] = prev[j]
			default:
				cur[j] = cur[j-1]
			}
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

// Compare scores a generated summary against the reference.
func Compare(reference, generated string) []types.Score {
	return []types.Score{
		{Metric: MetricCosine, Value: CosineSimilarity(reference, generated)},
		{Metric: MetricRouge1, Value: RougeN(generated, reference, 1)},
		{Metric: MetricRouge2, Value: RougeN(generated, reference, 2)},
		{Metric: MetricRougeL, Value: RougeL(generated, reference)},
	}
}

// CompareFiles reads both summaries and compares them.
func CompareFiles(referencePath, generatedPath string) ([]types.Score, error) {
	ref, err := os.ReadFile(referencePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", referencePath, ErrNoReference)
		}
		return nil, fmt.Errorf("reading reference summary: %w", err)
	}
	gen, err := os.ReadFile(generatedPath)
	if err != nil {
		return nil, fmt.Errorf("reading generated summary: %w", err)
	}
	return Compare(string(ref), string(gen)), nil
}

// WriteCSV writes one metric,value row per score.
func WriteCSV(w io.Writer, scores []types.Score) error {
	cw := csv.NewWriter(w)
	for _, s := range scores {
		if err := cw.Write([]string{s.Metric, strconv.FormatFloat(s.Value, 'f', -1, 64)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveCSV writes scores to path.
func SaveCSV(path string, scores []types.Score) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating analysis file: %w", err)
	}
	if err := WriteCSV(f, scores); err != nil {
		f.Close()
		return fmt.Errorf("writing analysis file: %w", err)
	}
	return f.Close()
}
