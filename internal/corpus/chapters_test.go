// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/book-summarizer/pkg/types"
)

func TestSplitChapters(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		min, max int
		want     [][]string
	}{
		{
			name: "double blank ends chapter",
			text: "a\nb\n\n\nc\nd\n",
			min:  2, max: 5,
			want: [][]string{{"a", "b", ""}, {"c", "d"}},
		},
		{
			name: "double blank inside short chapter is kept",
			text: "a\n\n\nb\n\n\nc\n",
			min:  3, max: 10,
			want: [][]string{{"a", "", "", "b", ""}, {"c"}},
		},
		{
			name: "long chapter breaks at next blank",
			text: "a\nb\nc\nd\n\ne\n",
			min:  1, max: 3,
			want: [][]string{{"a", "b", "c", "d"}, {"e"}},
		},
		{
			name: "windows line endings",
			text: "a\r\nb\r\n\r\n\r\nc\r\n",
			min:  2, max: 5,
			want: [][]string{{"a", "b", ""}, {"c"}},
		},
		{
			name: "empty text is one empty chapter",
			text: "",
			min:  2, max: 5,
			want: [][]string{nil},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitChapters(tt.text, tt.min, tt.max))
		})
	}
}

func TestSplitChapters_Defaults(t *testing.T) {
	// Twenty lines are needed before a double blank line ends a chapter.
	var lines []string
	for i := 0; i < 19; i++ {
		lines = append(lines, "line")
	}
	text := "\n\n" + strings.Join(lines, "\n") + "\n\n\nnext\n"

	chapters := SplitChapters(text, 0, 0)
	require.Len(t, chapters, 2)
	assert.Equal(t, []string{"next"}, chapters[1])
}

func TestFirstLines(t *testing.T) {
	tests := []struct {
		name string
		text string
		n    int
		want string
	}{
		{"two lines", "\nCHAPTER I\n\nIt was a dark night.\nThe wind blew.\n", 2, "CHAPTER I It was a dark night. ..."},
		{"short text", "Only one\n", 2, "Only one ..."},
		{"empty", "", 2, "..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FirstLines(tt.text, tt.n))
		})
	}
}

func TestProcessBook(t *testing.T) {
	root := t.TempDir()
	l := Layout{DataDir: root}
	require.NoError(t, os.MkdirAll(filepath.Join(root, "raw_books"), 0o755))
	raw := "*** START OF IT\none\ntwo\n\n\nthree\n*** END OF IT\n"
	require.NoError(t, os.WriteFile(l.RawBook(5), []byte(raw), 0o644))

	n, err := l.ProcessBook(5, types.CorpusConfig{MinChapterLines: 2, MaxChapterLines: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	first, err := l.ChapterText(5, 0)
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n\n", first)

	second, err := l.ChapterText(5, 1)
	require.NoError(t, err)
	assert.Equal(t, "three\n", second)
}

func TestProcessBook_NoBook(t *testing.T) {
	l := Layout{DataDir: t.TempDir()}
	_, err := l.ProcessBook(1, types.CorpusConfig{})
	assert.True(t, errors.Is(err, ErrNoBook))
}
