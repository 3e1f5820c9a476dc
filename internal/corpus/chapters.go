// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/book-summarizer/pkg/types"
)

const (
	defaultMinChapterLines = 20
	defaultMaxChapterLines = 3000
)

// SplitChapters divides book text into chapters. A chapter ends at a blank
// line that follows another blank line, but only once it holds at least
// minLines lines, since chapter openings often contain double blank lines.
// A chapter longer than maxLines ends at the next blank line. Returned
// chapters are lists of lines without line terminators.
func SplitChapters(text string, minLines, maxLines int) [][]string {
	if minLines <= 0 {
		minLines = defaultMinChapterLines
	}
	if maxLines <= 0 {
		maxLines = defaultMaxChapterLines
	}

	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	var (
		chapters  [][]string
		current   []string
		count     int
		prevBlank bool
	)
	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		blank := line == ""

		switch {
		case count < maxLines && (!blank || count < minLines):
			prevBlank = false
			count++
			current = append(current, line)
		case blank && (prevBlank || count >= maxLines):
			chapters = append(chapters, current)
			current = nil
			count = 0
		case blank:
			prevBlank = true
			count++
			current = append(current, line)
		default:
			count++
			current = append(current, line)
		}
	}
	if len(current) > 0 || len(chapters) == 0 {
		chapters = append(chapters, current)
	}
	return chapters
}

// DivideBook splits the cleaned book into chapter files and returns the
// number of chapters written.
func (l Layout) DivideBook(id int, cfg types.CorpusConfig) (int, error) {
	data, err := os.ReadFile(l.Book(id))
	if err != nil {
		return 0, fmt.Errorf("reading clean book %d: %w", id, err)
	}

	if err := os.MkdirAll(filepath.Join(l.DataDir, chaptersDir), 0o755); err != nil {
		return 0, fmt.Errorf("creating chapters directory: %w", err)
	}

	chapters := SplitChapters(string(data), cfg.MinChapterLines, cfg.MaxChapterLines)
	for i, lines := range chapters {
		content := strings.Join(lines, "\n")
		if len(lines) > 0 {
			content += "\n"
		}
		if err := os.WriteFile(l.Chapter(id, i), []byte(content), 0o644); err != nil {
			return 0, fmt.Errorf("writing chapter %d of book %d: %w", i, id, err)
		}
	}
	return len(chapters), nil
}

// ProcessBook cleans a raw book and divides it into chapters. It returns
// ErrNoBook when the raw book is missing.
func (l Layout) ProcessBook(id int, cfg types.CorpusConfig) (int, error) {
	if err := l.CleanBook(id); err != nil {
		return 0, err
	}
	return l.DivideBook(id, cfg)
}

// ChapterText reads one chapter file.
func (l Layout) ChapterText(id, chapter int) (string, error) {
	data, err := os.ReadFile(l.Chapter(id, chapter))
	if err != nil {
		return "", fmt.Errorf("reading chapter %d of book %d: %w", chapter, id, err)
	}
	return string(data), nil
}

// FirstLines joins the first n non-blank lines of text with spaces and
// appends an ellipsis to show the text continues.
func FirstLines(text string, n int) string {
	var b strings.Builder
	taken := 0
	for _, line := range strings.Split(text, "\n") {
		if taken >= n {
			break
		}
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		b.WriteString(line)
		b.WriteByte(' ')
		taken++
	}
	b.WriteString("...")
	return b.String()
}

func dirOf(path string) string { return filepath.Dir(path) }
