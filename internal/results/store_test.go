package results

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/book-summarizer/pkg/types"
)

// --- test helpers ---

func testSetup(t *testing.T) (*Store, string) {
	t.Helper()
	tmpDir := t.TempDir()
	store, err := NewStore(filepath.Join(tmpDir, "results"), types.ResultsConfig{MaxResults: 20})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store, tmpDir
}

func saveSummary(t *testing.T, s *Store, bookID int, variant, content string) {
	t.Helper()
	rec := types.SummaryRecord{
		BookID:    bookID,
		Variant:   variant,
		Path:      filepath.Join("results", "summaries", variant+".txt"),
		Content:   content,
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := s.SaveSummary(context.Background(), rec); err != nil {
		t.Fatal(err)
	}
}

func intPtr(n int) *int { return &n }

// --- schema ---

func TestNewStore_CreatesDatabase(t *testing.T) {
	_, tmpDir := testSetup(t)
	if _, err := os.Stat(filepath.Join(tmpDir, "results", indexDir, dbFile)); err != nil {
		t.Fatalf("database file missing: %v", err)
	}
}

func TestNewStore_ReopenKeepsData(t *testing.T) {
	tmpDir := t.TempDir()
	dir := filepath.Join(tmpDir, "results")

	s1, err := NewStore(dir, types.ResultsConfig{})
	if err != nil {
		t.Fatal(err)
	}
	saveSummary(t, s1, 84, "-all", "Victor builds a creature.")
	s1.Close()

	s2, err := NewStore(dir, types.ResultsConfig{})
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()

	got, err := s2.Search(context.Background(), QueryOptions{Query: "creature"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d results after reopen, want 1", len(got))
	}
}

// --- books ---

func TestSaveBook(t *testing.T) {
	s, _ := testSetup(t)
	ctx := context.Background()

	if err := s.SaveBook(ctx, types.Book{ID: 84, Title: "frankenstein", Author: "Shelley, Mary", Chapters: 24}); err != nil {
		t.Fatal(err)
	}
	// A later save without catalog data keeps the title and author.
	if err := s.SaveBook(ctx, types.Book{ID: 84, Chapters: 25}); err != nil {
		t.Fatal(err)
	}

	b, err := s.Book(ctx, 84)
	if err != nil {
		t.Fatal(err)
	}
	want := types.Book{ID: 84, Title: "frankenstein", Author: "Shelley, Mary", Chapters: 25}
	if b != want {
		t.Errorf("Book = %+v, want %+v", b, want)
	}

	if _, err := s.Book(ctx, 1); err == nil {
		t.Error("expected error for unknown book")
	}
}

// --- summaries ---

func TestSearch_FullText(t *testing.T) {
	s, _ := testSetup(t)
	ctx := context.Background()
	if err := s.SaveBook(ctx, types.Book{ID: 84, Title: "frankenstein"}); err != nil {
		t.Fatal(err)
	}
	saveSummary(t, s, 84, "-all", "Victor Frankenstein builds a creature in Ingolstadt.")
	saveSummary(t, s, 1342, "-en-ex", "Elizabeth Bennet meets Mr Darcy at a ball.")

	got, err := s.Search(ctx, QueryOptions{Query: "creature"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d results, want 1", len(got))
	}
	r := got[0]
	if r.BookID != 84 || r.Variant != "-all" || r.Title != "frankenstein" {
		t.Errorf("unexpected result %+v", r)
	}
	if !strings.Contains(r.Snippet, "[creature]") {
		t.Errorf("snippet %q should highlight the match", r.Snippet)
	}
	if !r.CreatedAt.Equal(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("CreatedAt = %v", r.CreatedAt)
	}
}

func TestSearch_Filters(t *testing.T) {
	s, _ := testSetup(t)
	ctx := context.Background()
	saveSummary(t, s, 84, "-all", "A ship in the ice.")
	saveSummary(t, s, 84, "-fl", "A ship leaves port.")
	saveSummary(t, s, 2701, "-all", "A ship hunts a whale.")

	tests := []struct {
		name string
		opts QueryOptions
		want []string
	}{
		{"all", QueryOptions{}, []string{"84-all", "84-fl", "2701-all"}},
		{"by book", QueryOptions{BookID: 84}, []string{"84-all", "84-fl"}},
		{"by variant", QueryOptions{Variant: "-all"}, []string{"84-all", "2701-all"}},
		{"text and book", QueryOptions{Query: "ship", BookID: 2701}, []string{"2701-all"}},
		{"limit", QueryOptions{MaxResults: 1}, []string{"84-all"}},
		{"no match", QueryOptions{Query: "dragon"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Search(ctx, tt.opts)
			if err != nil {
				t.Fatal(err)
			}
			var keys []string
			for _, r := range got {
				keys = append(keys, fmt.Sprintf("%d%s", r.BookID, r.Variant))
			}
			if strings.Join(keys, ",") != strings.Join(tt.want, ",") {
				t.Errorf("got %v, want %v", keys, tt.want)
			}
		})
	}
}

func TestSaveSummary_ReplacesVariant(t *testing.T) {
	s, _ := testSetup(t)
	ctx := context.Background()
	saveSummary(t, s, 84, "-all", "The old summary mentions glaciers.")
	saveSummary(t, s, 84, "-all", "The new summary mentions lightning.")

	all, err := s.Search(ctx, QueryOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 || !strings.Contains(all[0].Content, "lightning") {
		t.Fatalf("expected one replaced summary, got %+v", all)
	}

	old, err := s.Search(ctx, QueryOptions{Query: "glaciers"})
	if err != nil {
		t.Fatal(err)
	}
	if len(old) != 0 {
		t.Errorf("stale text still indexed: %+v", old)
	}
	fresh, err := s.Search(ctx, QueryOptions{Query: "lightning"})
	if err != nil {
		t.Fatal(err)
	}
	if len(fresh) != 1 {
		t.Errorf("new text not indexed")
	}
}

// --- entities ---

func TestEntities(t *testing.T) {
	s, _ := testSetup(t)
	ctx := context.Background()
	records := []types.EntityRecord{
		{Chapter: types.BookLevel, Kind: types.KindCharacter, EntityCount: types.EntityCount{Name: "Watson", Count: 2}},
		{Chapter: types.BookLevel, Kind: types.KindCharacter, EntityCount: types.EntityCount{Name: "Sherlock Holmes", Count: 5}},
		{Chapter: types.BookLevel, Kind: types.KindKeyTerm, EntityCount: types.EntityCount{Name: "London", Count: 2}},
		{Chapter: 0, Kind: types.KindCharacter, EntityCount: types.EntityCount{Name: "Watson", Count: 1}},
	}
	if err := s.SaveEntities(ctx, 1661, records); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		filter EntityFilter
		want   []string
	}{
		{"whole book", EntityFilter{BookID: 1661}, []string{"Sherlock Holmes", "Watson", "London", "Watson"}},
		{"book level", EntityFilter{BookID: 1661, Chapter: intPtr(types.BookLevel)}, []string{"Sherlock Holmes", "Watson", "London"}},
		{"chapter", EntityFilter{BookID: 1661, Chapter: intPtr(0)}, []string{"Watson"}},
		{"key terms", EntityFilter{BookID: 1661, Kind: types.KindKeyTerm}, []string{"London"}},
		{"other book", EntityFilter{BookID: 2}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Entities(ctx, tt.filter)
			if err != nil {
				t.Fatal(err)
			}
			var names []string
			for _, r := range got {
				if r.BookID != 1661 {
					t.Errorf("record for book %d", r.BookID)
				}
				names = append(names, r.Name)
			}
			if strings.Join(names, ",") != strings.Join(tt.want, ",") {
				t.Errorf("got %v, want %v", names, tt.want)
			}
		})
	}
}

func TestSaveEntities_Replaces(t *testing.T) {
	s, _ := testSetup(t)
	ctx := context.Background()
	first := []types.EntityRecord{{Chapter: 0, Kind: types.KindKeyTerm, EntityCount: types.EntityCount{Name: "Paris", Count: 1}}}
	second := []types.EntityRecord{{Chapter: 0, Kind: types.KindKeyTerm, EntityCount: types.EntityCount{Name: "Rome", Count: 3}}}
	if err := s.SaveEntities(ctx, 7, first); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveEntities(ctx, 7, second); err != nil {
		t.Fatal(err)
	}
	got, err := s.Entities(ctx, EntityFilter{BookID: 7})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Name != "Rome" || got[0].Count != 3 {
		t.Errorf("got %+v, want only Rome", got)
	}
}

// --- scores ---

func TestScores(t *testing.T) {
	s, _ := testSetup(t)
	ctx := context.Background()
	if err := s.SaveScores(ctx, 84, "-all", []types.Score{{Metric: "rouge-1", Value: 0.4}, {Metric: "cosine similarity", Value: 0.7}}); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveScores(ctx, 84, "-all", []types.Score{{Metric: "rouge-1", Value: 0.5}}); err != nil {
		t.Fatal(err)
	}
	got, err := s.Scores(ctx, 84, "-all")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != (types.Score{Metric: "rouge-1", Value: 0.5}) {
		t.Errorf("got %+v", got)
	}
}

// --- export ---

func TestExportYAML(t *testing.T) {
	s, tmpDir := testSetup(t)
	ctx := context.Background()
	saveSummary(t, s, 84, "-all", "Victor builds a creature.")
	if err := s.SaveScores(ctx, 84, "-all", []types.Score{{Metric: "rouge-l", Value: 0.25}}); err != nil {
		t.Fatal(err)
	}

	path, err := s.ExportYAML(ctx, QueryOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if path != filepath.Join(tmpDir, "results", indexDir, "export.yaml") {
		t.Errorf("path = %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var entries []ExportEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e.BookID != 84 || e.Variant != "-all" || e.CreatedAt != "2026-03-01T12:00:00Z" {
		t.Errorf("unexpected entry %+v", e)
	}
	if len(e.Scores) != 1 || e.Scores[0].Value != 0.25 {
		t.Errorf("scores = %+v", e.Scores)
	}
}

func TestExportJSON_Filtered(t *testing.T) {
	s, _ := testSetup(t)
	ctx := context.Background()
	saveSummary(t, s, 84, "-all", "Victor builds a creature.")
	saveSummary(t, s, 2701, "-all", "Ahab hunts a whale.")

	path, err := s.ExportJSON(ctx, QueryOptions{Query: "whale"})
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var entries []ExportEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].BookID != 2701 {
		t.Errorf("got %+v, want only book 2701", entries)
	}
}
