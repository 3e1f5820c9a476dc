//go:build mage

// Package main contains Mage build targets for book-summarizer developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/sh"

	"github.com/pdiddy/book-summarizer/internal/corpus"
	"github.com/pdiddy/book-summarizer/pkg/types"
)

// indexDir holds the results database and its exports.
const indexDir = "results/index"

// Init creates the project directory structure for the pipeline.
func Init() error {
	l := corpus.NewLayout(types.CorpusConfig{})
	if err := l.Init(); err != nil {
		return err
	}
	if err := os.MkdirAll(indexDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", indexDir, err)
	}
	for _, dir := range append(l.Dirs(), indexDir) {
		fmt.Println("  ", dir)
	}
	fmt.Println("Project directories initialized.")
	return nil
}

const (
	binDir  = "bin"
	binName = "book-summarizer"
	cmdPkg  = "./cmd/book-summarizer"
)

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Stats prints how far the corpus has moved through the pipeline.
func Stats() error {
	inv, err := corpus.NewLayout(types.CorpusConfig{}).Inventory()
	if err != nil {
		return err
	}

	fmt.Printf("Raw books:           %d\n", inv.RawBooks)
	fmt.Printf("Cleaned books:       %d\n", inv.Books)
	fmt.Printf("Chapter files:       %d\n", inv.Chapters)
	fmt.Printf("Reference summaries: %d\n", inv.ReferenceSummaries)
	fmt.Printf("Generated summaries: %d\n", inv.Summaries)
	fmt.Printf("Analyses:            %d\n", inv.Analyses)
	return nil
}
