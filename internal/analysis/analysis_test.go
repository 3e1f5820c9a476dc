// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analysis

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/book-summarizer/pkg/types"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "whale ship", "whale ship", 1},
		{"stems match", "whales ships", "whale ship", 1},
		{"disjoint", "whale", "ship", 0},
		{"half overlap", "whale ship", "whale", 0.7071067811865475},
		{"stop words only", "the and of", "whale", 0},
		{"empty", "", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CosineSimilarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestRougeN(t *testing.T) {
	ref := "the cat sat on the mat"
	tests := []struct {
		name string
		eval string
		n    int
		want float64
	}{
		{"unigram full", ref, 1, 1},
		// Reference unigrams: the cat sat on mat.
		{"unigram partial", "the cat ran", 1, 0.4},
		{"bigram partial", "the cat sat down", 2, 0.4},
		{"no overlap", "dogs bark", 1, 0},
		{"n too large", "the cat", 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, RougeN(tt.eval, ref, tt.n), 1e-9)
		})
	}
}

func TestRougeL(t *testing.T) {
	tests := []struct {
		name      string
		eval, ref string
		want      float64
	}{
		{"identical", "a b c d", "a b c d", 1},
		// LCS "a c d": precision 3/4, recall 3/3.
		{"subsequence", "a x c d", "a c d", 6.0 / 7.0},
		{"disjoint", "a b", "c d", 0},
		{"empty", "", "a", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, RougeL(tt.eval, tt.ref), 1e-9)
		})
	}
}

func TestLCSLength(t *testing.T) {
	assert.Equal(t, 4, lcsLength([]string{"a", "b", "c", "b", "d", "a", "b"}, []string{"b", "d", "c", "a", "b", "a"}))
	assert.Equal(t, 0, lcsLength(nil, []string{"a"}))
}

func TestCompare(t *testing.T) {
	scores := Compare("Ahab hunts the whale.", "Ahab hunts the whale.")
	require.Len(t, scores, 4)
	for _, s := range scores {
		assert.InDelta(t, 1.0, s.Value, 1e-9, s.Metric)
	}
	assert.Equal(t, []string{MetricCosine, MetricRouge1, MetricRouge2, MetricRougeL},
		[]string{scores[0].Metric, scores[1].Metric, scores[2].Metric, scores[3].Metric})
}

func TestCompareFiles(t *testing.T) {
	dir := t.TempDir()
	ref := filepath.Join(dir, "ref.txt")
	gen := filepath.Join(dir, "gen.txt")
	require.NoError(t, os.WriteFile(gen, []byte("whale"), 0o644))

	_, err := CompareFiles(ref, gen)
	assert.ErrorIs(t, err, ErrNoReference)

	require.NoError(t, os.WriteFile(ref, []byte("whale"), 0o644))
	scores, err := CompareFiles(ref, gen)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, scores[0].Value, 1e-9)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []types.Score{
		{Metric: MetricCosine, Value: 0.5},
		{Metric: MetricRougeL, Value: 1},
	}))
	assert.Equal(t, "cosine similarity,0.5\nrouge-l,1\n", buf.String())
}

func TestSaveCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "84-all.csv")
	require.NoError(t, SaveCSV(path, []types.Score{{Metric: MetricRouge1, Value: 0.25}}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "rouge-1,0.25\n", string(data))
}
