// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package entity

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/book-summarizer/pkg/types"
)

// fakeRecognizer returns a fixed entity list and records its input.
type fakeRecognizer struct {
	ents []Entity
	err  error
	got  string
}

func (f *fakeRecognizer) Entities(text string) ([]Entity, error) {
	f.got = text
	return f.ents, f.err
}

func repeat(text, label string, n int) []Entity {
	out := make([]Entity, n)
	for i := range out {
		out[i] = Entity{Text: text, Label: label}
	}
	return out
}

func bookEntities() []Entity {
	var ents []Entity
	ents = append(ents, repeat("Sherlock Holmes", "PERSON", 3)...)
	ents = append(ents, repeat("Holmes", "PERSON", 1)...)
	ents = append(ents, repeat("Holmes\n", "PERSON", 1)...)
	ents = append(ents, repeat("Watson", "PERSON", 2)...)
	ents = append(ents, repeat("London", "GPE", 2)...)
	ents = append(ents, repeat("Baker Street", "FAC", 1)...)
	ents = append(ents, repeat("Tuesday", "DATE", 4)...)
	ents = append(ents, repeat("  ", "PERSON", 1)...)
	return ents
}

func TestFindBook(t *testing.T) {
	rec := &fakeRecognizer{ents: bookEntities()}
	e := NewExtractor(rec, types.EntityConfig{})

	found, err := e.FindBook("line one\nline two")
	require.NoError(t, err)

	assert.Equal(t, "line one line two", rec.got)
	assert.Equal(t, Counts{"Sherlock Holmes": 5, "Watson": 2}, found.Characters)
	assert.Equal(t, Counts{"London": 2, "Baker Street": 1}, found.KeyTerms)
}

func TestFindBook_Truncates(t *testing.T) {
	rec := &fakeRecognizer{}
	e := NewExtractor(rec, types.EntityConfig{MaxChars: 5})

	_, err := e.FindBook("abcdéfgh")
	require.NoError(t, err)
	// The cut backs off to the start of the two-byte é.
	assert.Equal(t, "abcd", rec.got)
}

func TestFindBook_RecognizerError(t *testing.T) {
	e := NewExtractor(&fakeRecognizer{err: errors.New("model missing")}, types.EntityConfig{})
	_, err := e.FindBook("text")
	assert.EqualError(t, err, "model missing")
}

func TestFindChapter(t *testing.T) {
	book := Found{
		Characters: Counts{"Sherlock Holmes": 5, "Watson": 2},
		KeyTerms:   Counts{"London": 2, "Baker Street": 1},
	}
	rec := &fakeRecognizer{ents: []Entity{
		{Text: "Holmes", Label: "PERSON"},
		{Text: "London", Label: "GPE"},
		{Text: "Watson", Label: "PERSON"},
		{Text: "Holmes", Label: "PERSON"},
		{Text: "Moriarty", Label: "PERSON"},
	}}
	e := NewExtractor(rec, types.EntityConfig{})

	found, err := e.FindChapter("chapter text", book)
	require.NoError(t, err)
	assert.Equal(t, Counts{"Sherlock Holmes": 2, "Watson": 1}, found.Characters)
	assert.Equal(t, Counts{"London": 1}, found.KeyTerms)
}

func TestConsolidate(t *testing.T) {
	got := Consolidate(Counts{"Sherlock Holmes": 3, "Holmes": 2, "Watson": 2, "Dr. Watson": 1}, 80)
	assert.Equal(t, Counts{"Sherlock Holmes": 5, "Watson": 3}, got)
}

func TestSorted(t *testing.T) {
	got := Sorted(Counts{"b": 2, "a": 2, "c": 5})
	assert.Equal(t, []types.EntityCount{{Name: "c", Count: 5}, {Name: "a", Count: 2}, {Name: "b", Count: 2}}, got)
}

func TestSentence(t *testing.T) {
	many := Counts{}
	for i, name := range strings.Fields("a b c d e f g h i j k l") {
		many[name] = 100 - i
	}

	tests := []struct {
		name            string
		counts          Counts
		aboutBook       bool
		aboutCharacters bool
		want            string
	}{
		{"empty", Counts{}, true, true, ""},
		{"characters", Counts{"Watson": 2, "Sherlock Holmes": 5}, true, true, "Characters: Sherlock Holmes, Watson."},
		{"key terms", Counts{"London": 1}, false, false, "Key terms: London."},
		{"under limit lists every name", Counts{"Watson": 2, "Sherlock Holmes": 5, "Mycroft": 1}, false, true, "Characters: Sherlock Holmes, Watson, Mycroft."},
		{"book limit", many, true, false, "Key terms: a, b, c, d, e, f, g, h, i, j."},
		{"chapter limit", many, false, true, "Characters: a, b, c, d, e."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sentence(tt.counts, tt.aboutBook, tt.aboutCharacters))
		})
	}
}

func TestRecords(t *testing.T) {
	f := Found{Characters: Counts{"Watson": 2}, KeyTerms: Counts{"London": 1}}
	got := f.Records(84, types.BookLevel)
	assert.Equal(t, []types.EntityRecord{
		{BookID: 84, Chapter: -1, Kind: types.KindCharacter, EntityCount: types.EntityCount{Name: "Watson", Count: 2}},
		{BookID: 84, Chapter: -1, Kind: types.KindKeyTerm, EntityCount: types.EntityCount{Name: "London", Count: 1}},
	}, got)
}

func TestWriteTable(t *testing.T) {
	book := Found{Characters: Counts{"Watson": 2}, KeyTerms: Counts{"London": 1}}
	chapters := []Found{
		{Characters: Counts{"Watson": 1}, KeyTerms: Counts{}},
		{Characters: Counts{}, KeyTerms: Counts{"London, England": 1}},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, book, chapters))
	assert.Equal(t, "Watson,2\nLondon,1\nChapter 0\nWatson,1\nChapter 1\n\"London, England\",1\n", buf.String())
}
