// Package types defines shared data structures for the book-summarizer pipeline.
package types

// Book identifies a Project Gutenberg book in the local corpus.
type Book struct {
	// ID is the Project Gutenberg identifier (e.g. 1342).
	ID int `json:"id" yaml:"id"`

	// Title is the lower-cased catalog title, when known.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Author is the catalog author, when known.
	Author string `json:"author,omitempty" yaml:"author,omitempty"`

	// Chapters is the number of chapter files the book was divided into.
	Chapters int `json:"chapters" yaml:"chapters"`
}

// BookStats records size statistics for a book and its reference summary.
type BookStats struct {
	Title            string `json:"title" yaml:"title"`
	ID               int    `json:"id" yaml:"id"`
	CatalogAuthor    string `json:"catalog_author" yaml:"catalog_author"`
	SummaryAuthor    string `json:"summary_author" yaml:"summary_author"`
	BookSentences    int    `json:"book_sentences" yaml:"book_sentences"`
	BookWords        int    `json:"book_words" yaml:"book_words"`
	BookBytes        int64  `json:"book_bytes" yaml:"book_bytes"`
	SummarySentences int    `json:"summary_sentences" yaml:"summary_sentences"`
	SummaryWords     int    `json:"summary_words" yaml:"summary_words"`
	SummaryBytes     int64  `json:"summary_bytes" yaml:"summary_bytes"`
}
