// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "standard markers",
			in:   "License\n*** START OF THIS PROJECT GUTENBERG EBOOK ***\nCall me Ishmael.\nSome years ago.\n*** END OF THIS PROJECT GUTENBERG EBOOK ***\nMore license\n",
			want: "Call me Ishmael.\nSome years ago.\n",
		},
		{
			name: "compact markers",
			in:   "***START OF THE BOOK\nText.\n***END OF THE BOOK\n",
			want: "Text.\n",
		},
		{
			name: "old small print marker",
			in:   "small print\n*END*THE SMALL PRINT! FOR PUBLIC DOMAIN ETEXTS*\nText.\n",
			want: "Text.\n",
		},
		{
			name: "no markers keeps whole text",
			in:   "Just a book.\nNo header.\n",
			want: "Just a book.\nNo header.\n",
		},
		{
			name: "empty body keeps whole text",
			in:   "*** START OF X\n*** END OF X\n",
			want: "*** START OF X\n*** END OF X\n",
		},
		{
			name: "text restarts after second start marker",
			in:   "*** START OF A\none\n*** END OF A\nskip\n*** START OF B\ntwo\n",
			want: "one\ntwo\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.in))
		})
	}
}

func TestDecodeText(t *testing.T) {
	assert.Equal(t, "café", DecodeText([]byte("café")))
	// 0xE9 is é in ISO-8859-1 and invalid as UTF-8.
	assert.Equal(t, "café", DecodeText([]byte{'c', 'a', 'f', 0xE9}))
}

func TestCleanBook(t *testing.T) {
	root := t.TempDir()
	l := Layout{DataDir: root}
	require.NoError(t, os.MkdirAll(filepath.Join(root, "raw_books"), 0o755))
	raw := "header\n*** START OF IT\nBody line.\n*** END OF IT\n"
	require.NoError(t, os.WriteFile(l.RawBook(7), []byte(raw), 0o644))

	require.NoError(t, l.CleanBook(7))

	got, err := os.ReadFile(l.Book(7))
	require.NoError(t, err)
	assert.Equal(t, "Body line.\n", string(got))
}

func TestCleanBook_Missing(t *testing.T) {
	l := Layout{DataDir: t.TempDir()}
	err := l.CleanBook(99)
	assert.ErrorIs(t, err, ErrNoBook)
}
