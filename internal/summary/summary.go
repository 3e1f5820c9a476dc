// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package summary assembles book summaries from the chapter-level
// features: opening lines, entities, quotes, and generated summaries.
package summary

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/book-summarizer/internal/abstractive"
	"github.com/pdiddy/book-summarizer/internal/analysis"
	"github.com/pdiddy/book-summarizer/internal/corpus"
	"github.com/pdiddy/book-summarizer/internal/entity"
	"github.com/pdiddy/book-summarizer/internal/extractive"
	"github.com/pdiddy/book-summarizer/pkg/types"
)

const (
	firstLineCount = 2
	// quoteSentences is the quote length fed to the abstractive model.
	quoteSentences = 5
)

// Status is the outcome of summarizing one book.
type Status int

const (
	StatusSummarized Status = iota
	StatusSkipped
	StatusFailed
)

// Store persists generated summaries and their analysis. The results
// index implements it.
type Store interface {
	SaveBook(ctx context.Context, b types.Book) error
	SaveSummary(ctx context.Context, rec types.SummaryRecord) error
	SaveEntities(ctx context.Context, bookID int, records []types.EntityRecord) error
	SaveScores(ctx context.Context, bookID int, variant string, scores []types.Score) error
}

// Pipeline summarizes books from the corpus. Extractive, Entities, and
// Abstractive are required only when Options enables their features;
// Store and Log are optional.
type Pipeline struct {
	Layout      corpus.Layout
	Corpus      types.CorpusConfig
	Options     Options
	Extractive  extractive.Summarizer
	Entities    *entity.Extractor
	Abstractive *abstractive.Summarizer
	Store       Store
	Log         *zap.Logger
}

// BatchResult holds the outcome of a summarization run.
type BatchResult struct {
	Summarized int
	Skipped    int
	Failed     int
}

// Total returns the number of books attempted.
func (r BatchResult) Total() int {
	return r.Summarized + r.Skipped + r.Failed
}

// HasFailures reports whether any book failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

func (p *Pipeline) log() *zap.Logger {
	if p.Log == nil {
		return zap.NewNop()
	}
	return p.Log
}

func (p *Pipeline) check() error {
	if err := p.Options.Validate(); err != nil {
		return err
	}
	switch {
	case p.Options.Entities && p.Entities == nil:
		return errors.New("entity summary requested without an entity extractor")
	case p.Options.NeedsExtractive() && p.Extractive == nil:
		return errors.New("extractive summary requested without an extractive summarizer")
	case p.Options.NeedsModel() && p.Abstractive == nil:
		return errors.New("abstractive summary requested without a model")
	}
	return nil
}

// Run cleans and divides each book into chapters, then summarizes it.
// With no ids every raw book in the corpus is summarized. Books that fail
// are reported and counted; Run continues with the next book.
func (p *Pipeline) Run(ctx context.Context, ids []int, w io.Writer) (BatchResult, error) {
	if err := p.check(); err != nil {
		return BatchResult{}, err
	}
	if len(ids) == 0 {
		var err error
		if ids, err = p.Layout.ListBooks(); err != nil {
			return BatchResult{}, err
		}
	}

	var result BatchResult
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		switch p.summarize(ctx, id, w) {
		case StatusSummarized:
			result.Summarized++
		case StatusSkipped:
			result.Skipped++
		case StatusFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d summarized, %d skipped, %d failed (total: %d)\n",
		result.Summarized, result.Skipped, result.Failed, result.Total())
	return result, nil
}

func (p *Pipeline) summarize(ctx context.Context, id int, w io.Writer) Status {
	chapters, err := p.Layout.ProcessBook(id, p.Corpus)
	if err != nil {
		p.log().Warn("processing book failed", zap.Int("book", id), zap.Error(err))
		fmt.Fprintf(w, "failed:  %d (%v)\n", id, err)
		return StatusFailed
	}
	status, err := p.SummarizeBook(ctx, id, chapters)
	switch {
	case err != nil:
		p.log().Warn("summarizing book failed", zap.Int("book", id), zap.Error(err))
		fmt.Fprintf(w, "failed:  %d (%v)\n", id, err)
	case status == StatusSkipped:
		fmt.Fprintf(w, "skipped: %d (already exists)\n", id)
	default:
		fmt.Fprintf(w, "summarized: %d (%d chapters)\n", id, chapters)
	}
	return status
}

// SummarizeBook writes the summary of a processed book with the given
// number of chapters. An existing summary is kept unless Overwrite is set.
func (p *Pipeline) SummarizeBook(ctx context.Context, id, chapters int) (Status, error) {
	if err := p.check(); err != nil {
		return StatusFailed, err
	}
	ext := p.Options.Extension()
	path := p.Layout.SummaryFile(id, ext)
	if _, err := os.Stat(path); err == nil && !p.Options.Overwrite {
		return StatusSkipped, nil
	}

	var (
		buf      bytes.Buffer
		book     entity.Found
		found    []entity.Found
		bookText string
	)
	if p.Options.Entities {
		data, err := os.ReadFile(p.Layout.Book(id))
		if err != nil {
			return StatusFailed, fmt.Errorf("reading book: %w", err)
		}
		bookText = string(data)
		if book, err = p.Entities.FindBook(bookText); err != nil {
			return StatusFailed, fmt.Errorf("finding book entities: %w", err)
		}
		buf.WriteString(entity.Sentence(book.Characters, true, true) + "\n")
		buf.WriteString(entity.Sentence(book.KeyTerms, true, false) + "\n")
		buf.WriteString("\n")
	}

	for ch := 0; ch < chapters; ch++ {
		if err := ctx.Err(); err != nil {
			return StatusFailed, err
		}
		text, err := p.Layout.ChapterText(id, ch)
		if err != nil {
			return StatusFailed, err
		}
		f, err := p.writeChapter(ctx, &buf, ch, text, book)
		if err != nil {
			return StatusFailed, fmt.Errorf("chapter %d: %w", ch, err)
		}
		found = append(found, f)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return StatusFailed, fmt.Errorf("creating summaries directory: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return StatusFailed, fmt.Errorf("writing summary: %w", err)
	}
	p.log().Debug("summary written", zap.Int("book", id), zap.String("path", path))

	if p.Options.Entities {
		if err := p.saveEntityTable(id, book, found); err != nil {
			return StatusFailed, err
		}
	}
	if err := p.persist(ctx, id, chapters, ext, path, buf.String(), book, found); err != nil {
		return StatusFailed, err
	}
	if p.Options.Analysis {
		if err := p.Analyze(ctx, id); err != nil {
			return StatusFailed, err
		}
	}
	return StatusSummarized, nil
}

func (p *Pipeline) writeChapter(ctx context.Context, buf *bytes.Buffer, ch int, text string, book entity.Found) (entity.Found, error) {
	fmt.Fprintf(buf, "Chapter %d\n", ch)

	if p.Options.FirstLines {
		buf.WriteString("Starting:\n")
		buf.WriteString(corpus.FirstLines(text, firstLineCount) + "\n")
	}

	var found entity.Found
	if p.Options.Entities {
		var err error
		if found, err = p.Entities.FindChapter(text, book); err != nil {
			return found, fmt.Errorf("finding entities: %w", err)
		}
		for _, line := range []string{
			entity.Sentence(found.Characters, false, true),
			entity.Sentence(found.KeyTerms, false, false),
		} {
			if line != "" {
				buf.WriteString(line + "\n")
			}
		}
	}

	if p.Options.Extractive > 0 {
		quote, err := p.quote(text, p.Options.Extractive)
		if err != nil {
			return found, err
		}
		switch len(quote) {
		case 0:
		case 1:
			buf.WriteString("Quote: ")
		default:
			buf.WriteString("Quotes:\n")
		}
		for _, q := range quote {
			buf.WriteString("\"" + q + "\"\n")
		}
	}

	if p.Options.AbstractiveFromExtractive {
		quote, err := p.quote(text, quoteSentences)
		if err != nil {
			return found, err
		}
		lines, err := p.Abstractive.FromExtractive(ctx, quote)
		if err != nil {
			return found, err
		}
		writeLines(buf, lines)
	}

	if p.Options.fromAbstractive() {
		lines, err := p.Abstractive.FromText(ctx, text, p.Options.AbstractiveFromAbstractive == LengthShort)
		if err != nil {
			return found, err
		}
		writeLines(buf, lines)
	}

	buf.WriteString("\n")
	return found, nil
}

// quote returns up to n representative sentences. A chapter without
// sentences has no quote.
func (p *Pipeline) quote(text string, n int) ([]string, error) {
	sentences, err := p.Extractive.Summarize(text, n)
	if errors.Is(err, extractive.ErrEmptyText) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("extracting quote: %w", err)
	}
	return sentences, nil
}

func writeLines(buf *bytes.Buffer, lines []string) {
	for _, l := range lines {
		buf.WriteString(l + "\n")
	}
}

func (p *Pipeline) saveEntityTable(id int, book entity.Found, chapters []entity.Found) error {
	f, err := os.Create(p.Layout.EntityTable(id))
	if err != nil {
		return fmt.Errorf("creating entity table: %w", err)
	}
	if err := entity.WriteTable(f, book, chapters); err != nil {
		f.Close()
		return fmt.Errorf("writing entity table: %w", err)
	}
	return f.Close()
}

func (p *Pipeline) persist(ctx context.Context, id, chapters int, ext, path, content string, book entity.Found, found []entity.Found) error {
	if p.Store == nil {
		return nil
	}
	if err := p.Store.SaveBook(ctx, types.Book{ID: id, Chapters: chapters}); err != nil {
		return err
	}
	if err := p.Store.SaveSummary(ctx, types.SummaryRecord{
		BookID:    id,
		Variant:   ext,
		Path:      path,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		return err
	}
	if !p.Options.Entities {
		return nil
	}
	records := book.Records(id, types.BookLevel)
	for ch, f := range found {
		records = append(records, f.Records(id, ch)...)
	}
	return p.Store.SaveEntities(ctx, id, records)
}

// Analyze compares the book's summary for the current options with its
// reference summary and writes the scores to the analysis file. A book
// without a reference summary is logged and left without analysis.
func (p *Pipeline) Analyze(ctx context.Context, id int) error {
	ext := p.Options.Extension()
	scores, err := analysis.CompareFiles(p.Layout.ReferenceSummary(id), p.Layout.SummaryFile(id, ext))
	if errors.Is(err, analysis.ErrNoReference) {
		p.log().Info("no reference summary, skipping analysis", zap.Int("book", id))
		return nil
	}
	if err != nil {
		return err
	}

	path := p.Layout.AnalysisFile(id, ext)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating analysis directory: %w", err)
	}
	if err := analysis.SaveCSV(path, scores); err != nil {
		return err
	}
	if p.Store != nil {
		return p.Store.SaveScores(ctx, id, ext, scores)
	}
	return nil
}
