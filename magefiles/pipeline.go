//go:build mage

package main

import (
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

func bin() string { return filepath.Join(binDir, binName) }

// Dataset downloads the books that have a reference summary.
func Dataset() error {
	mg.Deps(Init, Build)
	return sh.RunV(bin(), "dataset")
}

// Summarize writes first-line, entity, and quote summaries of every raw book
// and scores them against the reference summaries.
func Summarize() error {
	mg.Deps(Init, Build)
	return sh.RunV(bin(), "summarize", "--first-lines", "--entities", "--extractive=1", "--analysis")
}

// SummarizeAll writes summaries with every feature, including the
// abstractive ones, which need the pointer-generator image.
func SummarizeAll() error {
	mg.Deps(Init, Build)
	return sh.RunV(bin(), "summarize", "--first-lines", "--entities", "--extractive=1",
		"--abstractive-extractive", "--abstractive-abstractive=s", "--analysis")
}

// Export writes the results database to results/index/export.yaml.
func Export() error {
	mg.Deps(Build)
	return sh.RunV(bin(), "results", "export")
}
