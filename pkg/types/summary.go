package types

import "time"

// SummaryRecord is a generated book summary as stored in the results index.
type SummaryRecord struct {
	// BookID identifies the summarized book.
	BookID int `json:"book_id" yaml:"book_id"`

	// Variant is the filename extension describing the enabled features
	// (e.g. "-en-ex" or "-all").
	Variant string `json:"variant" yaml:"variant"`

	// Path is the summary file on disk.
	Path string `json:"path" yaml:"path"`

	// Content is the full summary text.
	Content string `json:"content" yaml:"content"`

	// CreatedAt is when the summary was written.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Score is one comparison metric between a generated and a reference summary.
type Score struct {
	Metric string  `json:"metric" yaml:"metric"`
	Value  float64 `json:"value" yaml:"value"`
}
