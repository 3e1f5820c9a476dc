// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package results persists generated summaries, entities, and analysis
// scores in a SQLite database with a full-text index over summaries.
package results

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/book-summarizer/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "results.db"
)

// Store manages the results SQLite database.
type Store struct {
	db         *sql.DB
	dir        string
	maxResults int
}

// NewStore opens or creates resultsDir/index/results.db and creates the
// schema if it does not exist.
func NewStore(resultsDir string, cfg types.ResultsConfig) (*Store, error) {
	dir := filepath.Join(resultsDir, indexDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	db, err := sql.Open("sqlite3", filepath.Join(dir, dbFile)+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}
	s := &Store{db: db, dir: dir, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS books (
			id INTEGER PRIMARY KEY,
			title TEXT,
			author TEXT,
			chapters INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS summaries (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			book_id INTEGER NOT NULL REFERENCES books(id),
			variant TEXT NOT NULL,
			path TEXT,
			content TEXT NOT NULL,
			created_at TEXT,
			UNIQUE(book_id, variant)
		)`,
		`CREATE TABLE IF NOT EXISTS entities (
			book_id INTEGER NOT NULL REFERENCES books(id),
			chapter INTEGER NOT NULL,
			kind TEXT NOT NULL,
			name TEXT NOT NULL,
			count INTEGER NOT NULL,
			PRIMARY KEY (book_id, chapter, kind, name)
		)`,
		`CREATE TABLE IF NOT EXISTS scores (
			book_id INTEGER NOT NULL REFERENCES books(id),
			variant TEXT NOT NULL,
			metric TEXT NOT NULL,
			value REAL NOT NULL,
			PRIMARY KEY (book_id, variant, metric)
		)`,
		`CREATE VIRTUAL TABLE IF NOT EXISTS summaries_fts USING fts4(content)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// SaveBook inserts or updates a book record.
func (s *Store) SaveBook(ctx context.Context, b types.Book) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO books (id, title, author, chapters) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			title=COALESCE(NULLIF(excluded.title, ''), books.title),
			author=COALESCE(NULLIF(excluded.author, ''), books.author),
			chapters=excluded.chapters`,
		b.ID, b.Title, b.Author, b.Chapters,
	)
	if err != nil {
		return fmt.Errorf("saving book %d: %w", b.ID, err)
	}
	return nil
}

// Book returns a book record.
func (s *Store) Book(ctx context.Context, id int) (types.Book, error) {
	var (
		b             types.Book
		title, author sql.NullString
		chapters      sql.NullInt64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, author, chapters FROM books WHERE id = ?`, id,
	).Scan(&b.ID, &title, &author, &chapters)
	if err == sql.ErrNoRows {
		return types.Book{}, fmt.Errorf("book %d not found", id)
	}
	if err != nil {
		return types.Book{}, fmt.Errorf("looking up book: %w", err)
	}
	b.Title, b.Author, b.Chapters = title.String, author.String, int(chapters.Int64)
	return b, nil
}

// SaveSummary stores a summary and refreshes its full-text entry. A
// summary with the same book and variant is replaced.
func (s *Store) SaveSummary(ctx context.Context, rec types.SummaryRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO books (id) VALUES (?)`, rec.BookID); err != nil {
		return fmt.Errorf("inserting book stub: %w", err)
	}

	var rowid int64
	err = tx.QueryRowContext(ctx,
		`INSERT INTO summaries (book_id, variant, path, content, created_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(book_id, variant) DO UPDATE SET
			path=excluded.path, content=excluded.content, created_at=excluded.created_at
		 RETURNING rowid`,
		rec.BookID, rec.Variant, rec.Path, rec.Content, rec.CreatedAt.UTC().Format(time.RFC3339Nano),
	).Scan(&rowid)
	if err != nil {
		return fmt.Errorf("saving summary: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM summaries_fts WHERE docid = ?`, rowid); err != nil {
		return fmt.Errorf("clearing search entry: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO summaries_fts (docid, content) VALUES (?, ?)`, rowid, rec.Content,
	); err != nil {
		return fmt.Errorf("indexing summary: %w", err)
	}

	return tx.Commit()
}

// SaveEntities replaces the entity records of a book.
func (s *Store) SaveEntities(ctx context.Context, bookID int, records []types.EntityRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO books (id) VALUES (?)`, bookID); err != nil {
		return fmt.Errorf("inserting book stub: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM entities WHERE book_id = ?`, bookID); err != nil {
		return fmt.Errorf("deleting old entities: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO entities (book_id, chapter, kind, name, count) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx, bookID, r.Chapter, string(r.Kind), r.Name, r.Count); err != nil {
			return fmt.Errorf("inserting entity %q: %w", r.Name, err)
		}
	}
	return tx.Commit()
}

// SaveScores replaces the analysis scores of a summary variant.
func (s *Store) SaveScores(ctx context.Context, bookID int, variant string, scores []types.Score) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO books (id) VALUES (?)`, bookID); err != nil {
		return fmt.Errorf("inserting book stub: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM scores WHERE book_id = ? AND variant = ?`, bookID, variant,
	); err != nil {
		return fmt.Errorf("deleting old scores: %w", err)
	}
	for _, sc := range scores {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO scores (book_id, variant, metric, value) VALUES (?, ?, ?, ?)`,
			bookID, variant, sc.Metric, sc.Value,
		); err != nil {
			return fmt.Errorf("inserting score %s: %w", sc.Metric, err)
		}
	}
	return tx.Commit()
}
