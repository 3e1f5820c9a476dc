// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extractive

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/book-summarizer/pkg/types"
)

const whaleText = "The whale swam near the ship. Birds sang. The whale attacked the ship again. Nothing else happened."

func TestNew(t *testing.T) {
	tests := []struct {
		method  types.ExtractiveMethod
		want    Summarizer
		wantErr bool
	}{
		{"", Luhn{}, false},
		{types.MethodLuhn, Luhn{}, false},
		{types.MethodLexRank, LexRank{}, false},
		{"textrank", nil, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.method), func(t *testing.T) {
			got, err := New(tt.method)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLuhn_Summarize(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want []string
	}{
		{"best sentence", 1, []string{"The whale attacked the ship again."}},
		{"document order", 2, []string{"The whale swam near the ship.", "The whale attacked the ship again."}},
		{"more than available", 10, []string{"The whale swam near the ship.", "Birds sang.", "The whale attacked the ship again.", "Nothing else happened."}},
		{"zero", 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Luhn{}.Summarize(whaleText, tt.n)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLuhn_EmptyText(t *testing.T) {
	_, err := Luhn{}.Summarize("   ", 3)
	assert.ErrorIs(t, err, ErrEmptyText)
}

func TestRateSentence(t *testing.T) {
	significant := map[string]bool{"whale": true, "ship": true}

	tests := []struct {
		name     string
		sentence string
		want     float64
	}{
		{"two significant in five words", "whale swam near the ship", 0.8},
		{"adjacent significant words", "whale ship", 2},
		{"single significant word", "the whale swam", 0},
		{"gap closes chunk", "whale a b c d ship", 0},
		{"no significant words", "birds sang", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, rateSentence(tt.sentence, significant), 1e-9)
		})
	}
}

func TestTopSentences_TiesKeepEarlier(t *testing.T) {
	got := topSentences([]string{"a", "b", "c"}, []float64{1, 1, 1}, 2)
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestLexRank_ShortText(t *testing.T) {
	got, err := LexRank{}.Summarize("One sentence here. Another one there.", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"One sentence here.", "Another one there."}, got)

	got, err = LexRank{}.Summarize("One sentence here.", 0)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = LexRank{}.Summarize("", 1)
	assert.ErrorIs(t, err, ErrEmptyText)
}

func TestSummarizeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chapter.txt")
	require.NoError(t, os.WriteFile(path, []byte(whaleText), 0o644))

	got, err := SummarizeFile(Luhn{}, path, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"The whale attacked the ship again."}, got)

	_, err = SummarizeFile(Luhn{}, filepath.Join(t.TempDir(), "missing.txt"), 1)
	assert.Error(t, err)
}
