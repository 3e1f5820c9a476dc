// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package results

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/book-summarizer/pkg/types"
)

// QueryOptions holds parameters for summary queries.
type QueryOptions struct {
	// Query is the full-text search string. Empty lists summaries.
	Query string

	// BookID filters by book when non-zero.
	BookID int

	// Variant filters by feature extension (e.g. "-all").
	Variant string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// Result is a stored summary with its book title and, for full-text
// queries, a snippet around the matched terms.
type Result struct {
	types.SummaryRecord `yaml:",inline"`
	Title               string `json:"title,omitempty" yaml:"title,omitempty"`
	Snippet             string `json:"snippet,omitempty" yaml:"snippet,omitempty"`
}

// Search queries stored summaries with optional full-text search and
// filters. Results are ordered by book and variant.
func (s *Store) Search(ctx context.Context, opts QueryOptions) ([]Result, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)
	if useFTS {
		qb.WriteString(
			`SELECT su.book_id, su.variant, su.path, su.content, su.created_at, b.title,
				snippet(summaries_fts, '[', ']', '...', -1, 12)
			FROM summaries_fts
			JOIN summaries su ON su.rowid = summaries_fts.docid
			LEFT JOIN books b ON b.id = su.book_id
			WHERE summaries_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(
			`SELECT su.book_id, su.variant, su.path, su.content, su.created_at, b.title, ''
			FROM summaries su
			LEFT JOIN books b ON b.id = su.book_id
			WHERE 1=1`)
	}

	if opts.BookID != 0 {
		qb.WriteString(` AND su.book_id = ?`)
		args = append(args, opts.BookID)
	}
	if opts.Variant != "" {
		qb.WriteString(` AND su.variant = ?`)
		args = append(args, opts.Variant)
	}
	qb.WriteString(` ORDER BY su.book_id, su.variant LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying summaries: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var (
			r         Result
			path      sql.NullString
			createdAt sql.NullString
			title     sql.NullString
		)
		if err := rows.Scan(&r.BookID, &r.Variant, &path, &r.Content, &createdAt, &title, &r.Snippet); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		r.Path, r.Title = path.String, title.String
		if createdAt.Valid {
			r.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt.String)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// EntityFilter selects entity records. A nil Chapter matches every chapter
// and the book level; an empty Kind matches both kinds.
type EntityFilter struct {
	BookID  int
	Chapter *int
	Kind    types.EntityKind
}

// Entities returns the entity records of a book, most mentioned first
// within each chapter. Book-level records come first.
func (s *Store) Entities(ctx context.Context, f EntityFilter) ([]types.EntityRecord, error) {
	q := `SELECT book_id, chapter, kind, name, count FROM entities WHERE book_id = ?`
	args := []any{f.BookID}
	if f.Chapter != nil {
		q += ` AND chapter = ?`
		args = append(args, *f.Chapter)
	}
	if f.Kind != "" {
		q += ` AND kind = ?`
		args = append(args, string(f.Kind))
	}
	q += ` ORDER BY chapter, kind, count DESC, name`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying entities: %w", err)
	}
	defer rows.Close()

	var out []types.EntityRecord
	for rows.Next() {
		var (
			r    types.EntityRecord
			kind string
		)
		if err := rows.Scan(&r.BookID, &r.Chapter, &kind, &r.Name, &r.Count); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		r.Kind = types.EntityKind(kind)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Scores returns the analysis scores of a summary variant ordered by metric.
func (s *Store) Scores(ctx context.Context, bookID int, variant string) ([]types.Score, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT metric, value FROM scores WHERE book_id = ? AND variant = ? ORDER BY metric`,
		bookID, variant,
	)
	if err != nil {
		return nil, fmt.Errorf("querying scores: %w", err)
	}
	defer rows.Close()

	var out []types.Score
	for rows.Next() {
		var sc types.Score
		if err := rows.Scan(&sc.Metric, &sc.Value); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}
