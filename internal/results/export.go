// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package results

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/book-summarizer/pkg/types"
)

// ExportEntry is one summary with its scores, as written by the exports.
type ExportEntry struct {
	BookID    int           `json:"book_id" yaml:"book_id"`
	Title     string        `json:"title,omitempty" yaml:"title,omitempty"`
	Variant   string        `json:"variant" yaml:"variant"`
	Path      string        `json:"path" yaml:"path"`
	CreatedAt string        `json:"created_at" yaml:"created_at"`
	Content   string        `json:"content" yaml:"content"`
	Scores    []types.Score `json:"scores,omitempty" yaml:"scores,omitempty"`
}

const exportLimit = 100000

// ExportYAML writes the selected summaries to index/export.yaml and returns
// the file path.
func (s *Store) ExportYAML(ctx context.Context, opts QueryOptions) (string, error) {
	entries, err := s.exportEntries(ctx, opts)
	if err != nil {
		return "", err
	}
	data, err := yaml.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	path := filepath.Join(s.dir, "export.yaml")
	return path, os.WriteFile(path, data, 0o644)
}

// ExportJSON writes the selected summaries to index/export.json and returns
// the file path.
func (s *Store) ExportJSON(ctx context.Context, opts QueryOptions) (string, error) {
	entries, err := s.exportEntries(ctx, opts)
	if err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	path := filepath.Join(s.dir, "export.json")
	return path, os.WriteFile(path, data, 0o644)
}

func (s *Store) exportEntries(ctx context.Context, opts QueryOptions) ([]ExportEntry, error) {
	opts.MaxResults = exportLimit
	results, err := s.Search(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}

	entries := make([]ExportEntry, len(results))
	for i, r := range results {
		scores, err := s.Scores(ctx, r.BookID, r.Variant)
		if err != nil {
			return nil, err
		}
		entries[i] = ExportEntry{
			BookID:  r.BookID,
			Title:   r.Title,
			Variant: r.Variant,
			Path:    r.Path,
			Content: r.Content,
			Scores:  scores,
		}
		if !r.CreatedAt.IsZero() {
			entries[i].CreatedAt = r.CreatedAt.UTC().Format("2006-01-02T15:04:05Z")
		}
	}
	return entries, nil
}
