// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package entity finds the characters and key terms of a book and of its
// chapters using named-entity recognition.
package entity

import (
	"sort"
	"strings"

	"github.com/pdiddy/book-summarizer/internal/fuzzy"
	"github.com/pdiddy/book-summarizer/pkg/types"
)

const (
	defaultThreshold = 80
	defaultMaxChars  = 1000000
)

// KeyTermLabels are the entity labels counted as key terms. PERSON
// entities are also counted as characters.
var KeyTermLabels = map[string]bool{
	"PERSON": true, "NORP": true, "FAC": true, "ORG": true, "GPE": true,
	"LOC": true, "PRODUCT": true, "EVENT": true, "WORK_OF_ART": true,
	"LAW": true, "LANGUAGE": true,
}

const characterLabel = "PERSON"

// Entity is one recognized mention.
type Entity struct {
	Text  string
	Label string
}

// Recognizer finds named entities in text.
type Recognizer interface {
	Entities(text string) ([]Entity, error)
}

// Counts maps an entity name to its number of mentions.
type Counts map[string]int

// Names returns the names in ascending order.
func (c Counts) Names() []string {
	names := make([]string, 0, len(c))
	for n := range c {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Found holds the characters and key terms of a book or chapter.
type Found struct {
	Characters Counts
	KeyTerms   Counts
}

// Records flattens f into persistence records for a book and chapter.
func (f Found) Records(bookID, chapter int) []types.EntityRecord {
	var out []types.EntityRecord
	for _, c := range Sorted(f.Characters) {
		out = append(out, types.EntityRecord{BookID: bookID, Chapter: chapter, Kind: types.KindCharacter, EntityCount: c})
	}
	for _, c := range Sorted(f.KeyTerms) {
		out = append(out, types.EntityRecord{BookID: bookID, Chapter: chapter, Kind: types.KindKeyTerm, EntityCount: c})
	}
	return out
}

// Extractor counts and consolidates entities.
type Extractor struct {
	rec       Recognizer
	threshold int
	maxChars  int
}

// NewExtractor creates an Extractor. Zero configuration values select a
// match threshold of 80 and a 1,000,000 character limit.
func NewExtractor(rec Recognizer, cfg types.EntityConfig) *Extractor {
	e := &Extractor{rec: rec, threshold: cfg.MatchThreshold, maxChars: cfg.MaxChars}
	if e.threshold <= 0 {
		e.threshold = defaultThreshold
	}
	if e.maxChars <= 0 {
		e.maxChars = defaultMaxChars
	}
	return e
}

// FindBook counts the key terms and characters of a whole book. Similar key
// terms are merged, characters are mapped onto the merged key terms, and
// characters are then removed from the key terms.
func (e *Extractor) FindBook(text string) (Found, error) {
	ents, err := e.rec.Entities(e.prepare(text))
	if err != nil {
		return Found{}, err
	}

	terms, people := Counts{}, Counts{}
	for _, ent := range ents {
		name := strings.TrimSpace(strings.ReplaceAll(ent.Text, "\n", ""))
		if name == "" {
			continue
		}
		if KeyTermLabels[ent.Label] {
			terms[name]++
		}
		if ent.Label == characterLabel {
			people[name]++
		}
	}

	keyTerms := Consolidate(terms, e.threshold)
	candidates := keyTerms.Names()
	characters := Counts{}
	for _, name := range people.Names() {
		if match, ok := fuzzy.BestMatch(candidates, name, e.threshold); ok {
			characters[match] += people[name]
		}
	}
	for name := range characters {
		delete(keyTerms, name)
	}
	return Found{Characters: characters, KeyTerms: keyTerms}, nil
}

// FindChapter counts the chapter mentions that match a book character or
// key term.
func (e *Extractor) FindChapter(text string, book Found) (Found, error) {
	ents, err := e.rec.Entities(e.prepare(text))
	if err != nil {
		return Found{}, err
	}

	characterNames, termNames := book.Characters.Names(), book.KeyTerms.Names()
	out := Found{Characters: Counts{}, KeyTerms: Counts{}}
	for _, ent := range ents {
		name := strings.TrimSpace(ent.Text)
		if match, ok := fuzzy.BestMatch(termNames, name, e.threshold); ok {
			out.KeyTerms[match]++
		}
		if match, ok := fuzzy.BestMatch(characterNames, name, e.threshold); ok {
			out.Characters[match]++
		}
	}
	return out, nil
}

func (e *Extractor) prepare(text string) string {
	text = strings.ReplaceAll(text, "\n", " ")
	if len(text) <= e.maxChars {
		return text
	}
	cut := e.maxChars
	for cut > 0 && !utf8RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}

func utf8RuneStart(b byte) bool { return b&0xC0 != 0x80 }

// Consolidate merges names whose partial ratio exceeds threshold. Names are
// visited from most to least mentioned, so the most frequent spelling
// absorbs its variants.
func Consolidate(counts Counts, threshold int) Counts {
	out := Counts{}
	var kept []string
	for _, ec := range Sorted(counts) {
		if match, ok := fuzzy.BestMatch(kept, ec.Name, threshold); ok {
			out[match] += ec.Count
			continue
		}
		kept = append(kept, ec.Name)
		out[ec.Name] = ec.Count
	}
	return out
}

// Sorted orders counts by mentions, most first, then by name.
func Sorted(counts Counts) []types.EntityCount {
	out := make([]types.EntityCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, types.EntityCount{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Sentence lists the most mentioned entities, up to 10 for a book and 5 for
// a chapter: "Characters: a, b." or "Key terms: a, b.". It returns "" when
// counts is empty.
func Sentence(counts Counts, aboutBook, aboutCharacters bool) string {
	if len(counts) == 0 {
		return ""
	}
	limit := 5
	if aboutBook {
		limit = 10
	}
	sorted := Sorted(counts)
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	names := make([]string, len(sorted))
	for i, ec := range sorted {
		names[i] = ec.Name
	}

	prefix := "Key terms: "
	if aboutCharacters {
		prefix = "Characters: "
	}
	return prefix + strings.Join(names, ", ") + "."
}
