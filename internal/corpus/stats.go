// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pdiddy/book-summarizer/internal/nlp"
	"github.com/pdiddy/book-summarizer/pkg/types"
)

// TextStats counts sentences, words, and bytes in a text file.
func TextStats(path string) (sentences, words int, size int64, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("reading %s: %w", path, err)
	}
	text := DecodeText(data)
	sents, err := nlp.Sentences(text)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("segmenting %s: %w", path, err)
	}
	return len(sents), len(nlp.Words(text)), int64(len(data)), nil
}

// Stats fills the size fields of a BookStats record from the clean book
// and its reference summary.
func (l Layout) Stats(id int, stats *types.BookStats) error {
	var err error
	stats.ID = id
	stats.BookSentences, stats.BookWords, stats.BookBytes, err = TextStats(l.Book(id))
	if err != nil {
		return err
	}
	stats.SummarySentences, stats.SummaryWords, stats.SummaryBytes, err = TextStats(l.ReferenceSummary(id))
	return err
}

var statsHeader = []string{
	"title", "id", "catalog_author", "summary_author",
	"book_sentences", "book_words", "book_bytes",
	"summary_sentences", "summary_words", "summary_bytes",
}

// WriteStats writes dataset statistics as CSV with a header row.
func WriteStats(w io.Writer, stats []types.BookStats) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(statsHeader); err != nil {
		return err
	}
	for _, s := range stats {
		row := []string{
			s.Title, strconv.Itoa(s.ID), s.CatalogAuthor, s.SummaryAuthor,
			strconv.Itoa(s.BookSentences), strconv.Itoa(s.BookWords), strconv.FormatInt(s.BookBytes, 10),
			strconv.Itoa(s.SummarySentences), strconv.Itoa(s.SummaryWords), strconv.FormatInt(s.SummaryBytes, 10),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveStats writes the dataset statistics file.
func (l Layout) SaveStats(stats []types.BookStats) error {
	f, err := os.Create(l.StatsFile())
	if err != nil {
		return fmt.Errorf("creating stats file: %w", err)
	}
	if err := WriteStats(f, stats); err != nil {
		f.Close()
		return fmt.Errorf("writing stats file: %w", err)
	}
	return f.Close()
}
