// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/book-summarizer/internal/fuzzy"
	"github.com/pdiddy/book-summarizer/pkg/types"
)

const defaultAuthorThreshold = 40

// CatalogEntry is one Project Gutenberg catalog row.
type CatalogEntry struct {
	ID     int
	Title  string
	Author string
}

// SummaryEntry is one row of the CMU book summary corpus.
type SummaryEntry struct {
	Title   string
	Author  string
	Summary string
}

// Match pairs a catalog book with a reference summary of the same title.
type Match struct {
	Book    CatalogEntry
	Summary SummaryEntry
}

// ReadCatalog parses the Project Gutenberg metadata CSV. Columns are found
// by header name; identifiers look like "PG1342". Rows with an unparseable
// identifier are skipped. Titles are lower-cased.
func ReadCatalog(r io.Reader) ([]CatalogEntry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading catalog header: %w", err)
	}
	col := map[string]int{}
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range []string{"id", "title", "author"} {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("catalog has no %q column", name)
		}
	}

	var entries []CatalogEntry
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading catalog: %w", err)
		}
		id, err := strconv.Atoi(strings.TrimPrefix(field(rec, col["id"]), "PG"))
		if err != nil {
			continue
		}
		entries = append(entries, CatalogEntry{
			ID:     id,
			Title:  strings.ToLower(field(rec, col["title"])),
			Author: field(rec, col["author"]),
		})
	}
	return entries, nil
}

// ReadSummaries parses the tab-separated CMU book summary file: Wikipedia
// id, Freebase id, title, author, date, genres, summary. Titles are
// lower-cased.
func ReadSummaries(r io.Reader) ([]SummaryEntry, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var entries []SummaryEntry
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading summaries: %w", err)
		}
		if len(rec) < 7 {
			continue
		}
		entries = append(entries, SummaryEntry{
			Title:   strings.ToLower(rec[2]),
			Author:  rec[3],
			Summary: strings.TrimSpace(rec[6]),
		})
	}
	return entries, nil
}

func field(rec []string, i int) string {
	if i < len(rec) {
		return strings.TrimSpace(rec[i])
	}
	return ""
}

// AuthorMatch scores two author names 0-100, ignoring word order so that
// catalog "Austen, Jane" matches "Jane Austen". A missing name matches fully.
func AuthorMatch(a, b string) int {
	if a == "" || b == "" {
		return 100
	}
	return fuzzy.TokenSortPartialRatio(a, b)
}

// MatchTitles joins summaries and catalog books on exact lower-cased title,
// keeping pairs whose author score exceeds threshold. Pairs keep summary
// order, then catalog order.
func MatchTitles(catalog []CatalogEntry, summaries []SummaryEntry, threshold int) []Match {
	if threshold <= 0 {
		threshold = defaultAuthorThreshold
	}
	byTitle := map[string][]CatalogEntry{}
	for _, c := range catalog {
		byTitle[c.Title] = append(byTitle[c.Title], c)
	}

	var matches []Match
	for _, s := range summaries {
		for _, c := range byTitle[s.Title] {
			if AuthorMatch(c.Author, s.Author) > threshold {
				matches = append(matches, Match{Book: c, Summary: s})
			}
		}
	}
	return matches
}

// BatchResult holds the outcome of a dataset build.
type BatchResult struct {
	Downloaded int
	Skipped    int
	Failed     int
	Stats      []types.BookStats
}

// Total returns the number of matches attempted.
func (r BatchResult) Total() int {
	return r.Downloaded + r.Skipped + r.Failed
}

// HasFailures reports whether any book failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Fetcher retrieves a raw book into the corpus.
type Fetcher interface {
	Fetch(ctx context.Context, id int) (skipped bool, err error)
}

// Builder assembles the matched book and summary dataset.
type Builder struct {
	Layout  Layout
	Fetcher Fetcher
	Log     *zap.Logger
}

// Build downloads each matched book once per title, saves its reference
// summary, cleans it, and records statistics in the stats file. It
// continues after individual failures.
func (b *Builder) Build(ctx context.Context, matches []Match, w io.Writer) (BatchResult, error) {
	log := b.Log
	if log == nil {
		log = zap.NewNop()
	}
	if err := b.Layout.Init(); err != nil {
		return BatchResult{}, err
	}

	var result BatchResult
	titles := map[string]bool{}
	for _, m := range matches {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if titles[m.Summary.Title] {
			continue
		}

		skipped, err := b.addBook(ctx, m)
		if err != nil {
			log.Warn("dataset book failed", zap.Int("book", m.Book.ID), zap.Error(err))
			fmt.Fprintf(w, "failed:  %d %s (%v)\n", m.Book.ID, m.Summary.Title, err)
			result.Failed++
			continue
		}
		titles[m.Summary.Title] = true

		stats := types.BookStats{
			Title:         m.Summary.Title,
			CatalogAuthor: m.Book.Author,
			SummaryAuthor: m.Summary.Author,
		}
		if err := b.Layout.Stats(m.Book.ID, &stats); err != nil {
			log.Warn("dataset stats failed", zap.Int("book", m.Book.ID), zap.Error(err))
		}
		result.Stats = append(result.Stats, stats)

		if skipped {
			fmt.Fprintf(w, "skipped: %d %s (already exists)\n", m.Book.ID, m.Summary.Title)
			result.Skipped++
		} else {
			fmt.Fprintf(w, "added:   %d %s\n", m.Book.ID, m.Summary.Title)
			result.Downloaded++
		}
	}

	if err := b.Layout.SaveStats(result.Stats); err != nil {
		return result, err
	}
	fmt.Fprintf(w, "\nDataset summary: %d downloaded, %d skipped, %d failed (total: %d)\n",
		result.Downloaded, result.Skipped, result.Failed, result.Total())
	return result, nil
}

func (b *Builder) addBook(ctx context.Context, m Match) (bool, error) {
	skipped, err := b.Fetcher.Fetch(ctx, m.Book.ID)
	if err != nil {
		return false, err
	}
	if err := os.WriteFile(b.Layout.ReferenceSummary(m.Book.ID), []byte(m.Summary.Summary+"\n"), 0o644); err != nil {
		return false, fmt.Errorf("saving summary: %w", err)
	}
	if err := b.Layout.CleanBook(m.Book.ID); err != nil {
		return false, err
	}
	return skipped, nil
}
