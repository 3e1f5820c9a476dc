// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/book-summarizer/internal/corpus"
	"github.com/pdiddy/book-summarizer/internal/results"
	"github.com/pdiddy/book-summarizer/pkg/types"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultUserAgent = "book-summarizer/0.1"
)

// pipelineConfig assembles the stage configuration from flags, the config
// file, and the environment. Keys are flag names.
func pipelineConfig() types.PipelineConfig {
	timeout := viper.GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return types.PipelineConfig{
		Corpus: types.CorpusConfig{
			DataDir:         viper.GetString("data-dir"),
			ResultsDir:      viper.GetString("results-dir"),
			MinChapterLines: viper.GetInt("min-chapter-lines"),
			MaxChapterLines: viper.GetInt("max-chapter-lines"),
		},
		Download: types.DownloadConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   timeout,
				UserAgent: defaultUserAgent,
			},
			Mirror:            viper.GetString("mirror"),
			RequestsPerSecond: viper.GetFloat64("rate"),
			AuthorThreshold:   viper.GetInt("author-threshold"),
		},
		Extractive: types.ExtractiveConfig{
			Method: types.ExtractiveMethod(viper.GetString("method")),
		},
		Abstractive: types.AbstractiveConfig{
			Runtime:       types.ModelRuntime(viper.GetString("runtime")),
			Image:         viper.GetString("image"),
			Command:       viper.GetStringSlice("model-command"),
			ModelDir:      viper.GetString("model-dir"),
			SegmentTokens: viper.GetInt("segment-tokens"),
			MaxLevels:     viper.GetInt("max-levels"),
			Workers:       viper.GetInt("workers"),
		},
		Entity: types.EntityConfig{
			MatchThreshold: viper.GetInt("match-threshold"),
		},
		Results: types.ResultsConfig{
			MaxResults: viper.GetInt("max-results"),
		},
	}
}

func layoutFromConfig() corpus.Layout {
	return corpus.NewLayout(pipelineConfig().Corpus)
}

func openResults() (*results.Store, error) {
	cfg := pipelineConfig()
	return results.NewStore(cfg.Corpus.ResultsDir, cfg.Results)
}

// bookIDs parses positional book identifiers.
func bookIDs(args []string) ([]int, error) {
	ids := make([]int, 0, len(args))
	for _, a := range args {
		id, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("book id %q is not a number", a)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// inputText reads the named file, or stdin when path is "" or "-".
func inputText(path string) (string, error) {
	var r io.Reader = os.Stdin
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return "", err
		}
		defer f.Close()
		r = f
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return string(data), nil
}
