// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package corpus manages the on-disk book corpus: raw Project Gutenberg
// downloads, cleaned books, chapter files, reference summaries, and the
// locations of generated results.
package corpus

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pdiddy/book-summarizer/pkg/types"
)

const (
	rawBooksDir  = "raw_books"
	booksDir     = "books"
	chaptersDir  = "book_chapters"
	summariesDir = "summaries"
	analysisDir  = "analysis"
	statsFile    = "data_stats.csv"
)

// ErrNoBook is returned when a raw book file does not exist.
var ErrNoBook = errors.New("raw book not found")

// Layout resolves corpus and results paths for a book.
type Layout struct {
	DataDir    string
	ResultsDir string
}

// NewLayout builds a Layout from configuration, applying the default
// "data" and "results" directories.
func NewLayout(cfg types.CorpusConfig) Layout {
	l := Layout{DataDir: cfg.DataDir, ResultsDir: cfg.ResultsDir}
	if l.DataDir == "" {
		l.DataDir = "data"
	}
	if l.ResultsDir == "" {
		l.ResultsDir = "results"
	}
	return l
}

func textName(id int) string { return strconv.Itoa(id) + ".txt" }

// RawBook is the downloaded, uncleaned book text.
func (l Layout) RawBook(id int) string {
	return filepath.Join(l.DataDir, rawBooksDir, textName(id))
}

// Book is the cleaned book text without Project Gutenberg boilerplate.
func (l Layout) Book(id int) string {
	return filepath.Join(l.DataDir, booksDir, textName(id))
}

// Chapter is the text of one chapter of a cleaned book.
func (l Layout) Chapter(id, chapter int) string {
	return filepath.Join(l.DataDir, chaptersDir, fmt.Sprintf("%d-%d.txt", id, chapter))
}

// ReferenceSummary is the human-written summary used for analysis.
func (l Layout) ReferenceSummary(id int) string {
	return filepath.Join(l.DataDir, summariesDir, textName(id))
}

// StatsFile is the dataset statistics CSV.
func (l Layout) StatsFile() string {
	return filepath.Join(l.DataDir, statsFile)
}

// SummaryFile is a generated summary; ext names the enabled features.
func (l Layout) SummaryFile(id int, ext string) string {
	return filepath.Join(l.ResultsDir, summariesDir, strconv.Itoa(id)+ext+".txt")
}

// AnalysisFile is the comparison of a generated summary with the reference.
func (l Layout) AnalysisFile(id int, ext string) string {
	return filepath.Join(l.ResultsDir, analysisDir, strconv.Itoa(id)+ext+".csv")
}

// EntityTable is the CSV of sorted book and chapter entities.
func (l Layout) EntityTable(id int) string {
	return filepath.Join(l.ResultsDir, summariesDir, strconv.Itoa(id)+".csv")
}

// Dirs lists every directory the pipeline writes to.
func (l Layout) Dirs() []string {
	return []string{
		filepath.Join(l.DataDir, rawBooksDir),
		filepath.Join(l.DataDir, booksDir),
		filepath.Join(l.DataDir, chaptersDir),
		filepath.Join(l.DataDir, summariesDir),
		filepath.Join(l.ResultsDir, summariesDir),
		filepath.Join(l.ResultsDir, analysisDir),
	}
}

// Init creates the directory structure.
func (l Layout) Init() error {
	for _, dir := range l.Dirs() {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	return nil
}

// ListBooks returns the identifiers of all raw books, in ascending order.
// Files whose names are not numeric are ignored.
func (l Layout) ListBooks() ([]int, error) {
	entries, err := os.ReadDir(filepath.Join(l.DataDir, rawBooksDir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading raw books directory: %w", err)
	}

	var ids []int
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".txt") {
			continue
		}
		id, err := strconv.Atoi(strings.TrimSuffix(e.Name(), ".txt"))
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids, nil
}

// Inventory counts the files in each stage of the corpus.
type Inventory struct {
	RawBooks           int
	Books              int
	Chapters           int
	ReferenceSummaries int
	Summaries          int
	Analyses           int
}

// Inventory counts the text and CSV files the pipeline has produced so far.
// Directories that do not exist count as empty.
func (l Layout) Inventory() (Inventory, error) {
	var inv Inventory
	counts := []struct {
		dir string
		ext string
		n   *int
	}{
		{filepath.Join(l.DataDir, rawBooksDir), ".txt", &inv.RawBooks},
		{filepath.Join(l.DataDir, booksDir), ".txt", &inv.Books},
		{filepath.Join(l.DataDir, chaptersDir), ".txt", &inv.Chapters},
		{filepath.Join(l.DataDir, summariesDir), ".txt", &inv.ReferenceSummaries},
		{filepath.Join(l.ResultsDir, summariesDir), ".txt", &inv.Summaries},
		{filepath.Join(l.ResultsDir, analysisDir), ".csv", &inv.Analyses},
	}
	for _, c := range counts {
		n, err := countFiles(c.dir, c.ext)
		if err != nil {
			return Inventory{}, err
		}
		*c.n = n
	}
	return inv, nil
}

func countFiles(dir, ext string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("reading %s: %w", dir, err)
	}
	n := 0
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ext {
			n++
		}
	}
	return n, nil
}
