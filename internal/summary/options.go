// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summary

import (
	"errors"
	"fmt"
)

// Abstractive-from-abstractive lengths.
const (
	LengthNone  = "n"
	LengthShort = "s"
	LengthLong  = "l"
)

// MaxExtractive is the largest number of quoted sentences per chapter.
const MaxExtractive = 9

// ErrInvalidOptions is returned by Validate for out-of-range options.
var ErrInvalidOptions = errors.New("invalid summary options")

// Options selects the features included in a book summary.
type Options struct {
	// Entities adds the characters and key terms of the book and of each
	// chapter.
	Entities bool `json:"entities" yaml:"entities"`

	// Extractive is the number of quoted sentences per chapter (0 disables).
	Extractive int `json:"extractive" yaml:"extractive"`

	// AbstractiveFromExtractive adds a generated summary of a five
	// sentence quote of each chapter.
	AbstractiveFromExtractive bool `json:"abstractive_from_extractive" yaml:"abstractive_from_extractive"`

	// AbstractiveFromAbstractive adds a generated summary of each whole
	// chapter: "s" for short, "l" for long, "n" or empty to disable.
	AbstractiveFromAbstractive string `json:"abstractive_from_abstractive" yaml:"abstractive_from_abstractive"`

	// FirstLines adds the opening lines of each chapter.
	FirstLines bool `json:"first_lines" yaml:"first_lines"`

	// Analysis compares the summary with the reference summary.
	Analysis bool `json:"analysis" yaml:"analysis"`

	// Overwrite regenerates summaries that already exist.
	Overwrite bool `json:"overwrite" yaml:"overwrite"`
}

// Validate checks the extractive count and the abstractive length.
func (o Options) Validate() error {
	if o.Extractive < 0 || o.Extractive > MaxExtractive {
		return fmt.Errorf("%w: extractive summary takes between 1 and %d sentences, got %d",
			ErrInvalidOptions, MaxExtractive, o.Extractive)
	}
	switch o.AbstractiveFromAbstractive {
	case "", LengthNone, LengthShort, LengthLong:
	default:
		return fmt.Errorf("%w: abstractive from abstractive length must be s or l, got %q",
			ErrInvalidOptions, o.AbstractiveFromAbstractive)
	}
	return nil
}

func (o Options) fromAbstractive() bool {
	return o.AbstractiveFromAbstractive != "" && o.AbstractiveFromAbstractive != LengthNone
}

// NeedsExtractive reports whether the options quote sentences, either
// directly or as input to the abstractive model.
func (o Options) NeedsExtractive() bool {
	return o.Extractive > 0 || o.AbstractiveFromExtractive
}

// NeedsModel reports whether the options generate abstractive summaries.
func (o Options) NeedsModel() bool {
	return o.AbstractiveFromExtractive || o.fromAbstractive()
}

// Extension names the summary variant: "-all" when every content feature
// is enabled, otherwise one tag per enabled feature.
func (o Options) Extension() string {
	if o.FirstLines && o.Entities && o.Extractive != 0 && o.AbstractiveFromExtractive && o.fromAbstractive() {
		return "-all"
	}
	var ext string
	if o.FirstLines {
		ext += "-fl"
	}
	if o.Entities {
		ext += "-en"
	}
	if o.Extractive != 0 {
		ext += "-ex"
	}
	if o.AbstractiveFromExtractive {
		ext += "-ae"
	}
	if o.fromAbstractive() {
		ext += "-aa"
	}
	return ext
}
