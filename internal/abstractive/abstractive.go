// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package abstractive produces generated summaries with an external
// pointer-generator model and turns its tokenized output back into text.
package abstractive

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/pdiddy/book-summarizer/internal/detok"
	"github.com/pdiddy/book-summarizer/pkg/types"
)

const (
	defaultMaxLevels = 4
	smallThreshold   = 5
	largeThreshold   = 20
)

// Summarizer drives a Model over prepared text.
type Summarizer struct {
	model Model
	cfg   types.AbstractiveConfig
	log   *zap.Logger
}

// New creates a Summarizer. A nil logger discards log output.
func New(model Model, cfg types.AbstractiveConfig, log *zap.Logger) *Summarizer {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.MaxLevels <= 0 {
		cfg.MaxLevels = defaultMaxLevels
	}
	return &Summarizer{model: model, cfg: cfg, log: log}
}

// FromText summarizes text, then re-summarizes the result while it still
// spans more than 5 segments (small) or 20 segments (large), up to the
// configured number of levels. Text that fits in one segment is returned
// as is with its first letter capitalized.
func (s *Summarizer) FromText(ctx context.Context, text string, small bool) ([]string, error) {
	threshold := largeThreshold
	if small {
		threshold = smallThreshold
	}

	p, lines, err := s.pass(ctx, text)
	if err != nil {
		return nil, err
	}
	for level := 0; p.Segments > threshold && level < s.cfg.MaxLevels; level++ {
		s.log.Debug("re-summarizing", zap.Int("level", level+1), zap.Int("segments", p.Segments))
		p, lines, err = s.pass(ctx, strings.Join(lines, "\n"))
		if err != nil {
			return nil, err
		}
	}
	return lines, nil
}

// FromExtractive summarizes extracted sentences with the model.
func (s *Summarizer) FromExtractive(ctx context.Context, sentences []string) ([]string, error) {
	p, err := Prepare(strings.Join(sentences, "\n"), s.cfg)
	if err != nil {
		return nil, err
	}
	if p.Segments == 0 {
		return nil, nil
	}
	return s.run(ctx, p)
}

// pass summarizes text once. Text of a single segment is not worth a model
// run and is copied through.
func (s *Summarizer) pass(ctx context.Context, text string) (Prepared, []string, error) {
	p, err := Prepare(text, s.cfg)
	if err != nil {
		return Prepared{}, nil, err
	}
	switch p.Segments {
	case 0:
		return p, nil, nil
	case 1:
		return p, []string{capitalizeFirst(strings.TrimSpace(strings.ReplaceAll(p.Text, "\n", "")))}, nil
	}
	lines, err := s.run(ctx, p)
	return p, lines, err
}

func (s *Summarizer) run(ctx context.Context, p Prepared) ([]string, error) {
	var raw, text bytes.Buffer
	if err := s.model.Summarize(ctx, strings.NewReader(p.Input), &raw); err != nil {
		return nil, fmt.Errorf("running abstractive model: %w", err)
	}
	lines, err := detok.ProcessOutput(ctx, &raw, &text, s.cfg.Workers)
	if err != nil {
		return nil, fmt.Errorf("detokenizing model output: %w", err)
	}
	s.log.Debug("abstractive pass", zap.Int("segments", p.Segments), zap.Int("lines", len(lines)))
	return lines, nil
}

func capitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
