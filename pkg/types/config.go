package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "book-summarizer/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// CorpusConfig locates the book corpus and the generated results.
type CorpusConfig struct {
	// DataDir is the base directory for books (contains raw_books/, books/,
	// book_chapters/, summaries/).
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// ResultsDir is the base directory for generated output (contains
	// summaries/, analysis/, index/).
	ResultsDir string `json:"results_dir" yaml:"results_dir"`

	// MinChapterLines is the number of lines a chapter must reach before a
	// double blank line may end it (default 20).
	MinChapterLines int `json:"min_chapter_lines" yaml:"min_chapter_lines"`

	// MaxChapterLines forces a chapter break at the next blank line once a
	// chapter grows past this many lines (default 3000).
	MaxChapterLines int `json:"max_chapter_lines" yaml:"max_chapter_lines"`
}

// DownloadConfig holds settings for building the book/summary dataset.
type DownloadConfig struct {
	HTTPConfig `yaml:",inline"`

	// Mirror is the Project Gutenberg mirror base URL.
	Mirror string `json:"mirror" yaml:"mirror"`

	// RequestsPerSecond bounds the download rate (default 1).
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`

	// MaxRetries bounds retries of busy (429/503) responses (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// AuthorThreshold is the minimum author partial-ratio for a catalog match
	// (default 40).
	AuthorThreshold int `json:"author_threshold" yaml:"author_threshold"`
}

// ExtractiveMethod identifies the sentence-ranking algorithm.
type ExtractiveMethod string

const (
	MethodLuhn    ExtractiveMethod = "luhn"
	MethodLexRank ExtractiveMethod = "lexrank"
)

// ExtractiveConfig holds settings for extractive summarization.
type ExtractiveConfig struct {
	// Method selects the ranking algorithm: luhn or lexrank.
	Method ExtractiveMethod `json:"method" yaml:"method"`
}

// ModelRuntime selects how the abstractive model is executed.
type ModelRuntime string

const (
	RuntimeContainer ModelRuntime = "container"
	RuntimeCommand   ModelRuntime = "command"
)

// AbstractiveConfig holds settings for the pointer-generator summarizer.
type AbstractiveConfig struct {
	// Runtime selects container or command execution.
	Runtime ModelRuntime `json:"runtime" yaml:"runtime"`

	// Image is the container image that runs the model.
	Image string `json:"image" yaml:"image"`

	// Command is the local command line that runs the model (runtime=command).
	Command []string `json:"command,omitempty" yaml:"command,omitempty"`

	// ModelDir holds the pretrained model files mounted into the container.
	ModelDir string `json:"model_dir" yaml:"model_dir"`

	// SegmentTokens is the token budget of one model input line (default 200).
	SegmentTokens int `json:"segment_tokens" yaml:"segment_tokens"`

	// MaxChars truncates input text before segmentation (default 1,000,000).
	MaxChars int `json:"max_chars" yaml:"max_chars"`

	// MaxLevels bounds the number of re-summarization passes (default 4).
	MaxLevels int `json:"max_levels" yaml:"max_levels"`

	// Workers is the number of goroutines used to detokenize model output.
	Workers int `json:"workers" yaml:"workers"`
}

// EntityConfig holds settings for character and key-term extraction.
type EntityConfig struct {
	// MatchThreshold is the partial-ratio above which two names are merged
	// (default 80).
	MatchThreshold int `json:"match_threshold" yaml:"match_threshold"`

	// MaxChars truncates book text before recognition (default 1,000,000).
	MaxChars int `json:"max_chars" yaml:"max_chars"`
}

// ResultsConfig holds settings for the results index.
type ResultsConfig struct {
	// MaxResults is the default number of search results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Corpus      CorpusConfig      `json:"corpus" yaml:"corpus"`
	Download    DownloadConfig    `json:"download" yaml:"download"`
	Extractive  ExtractiveConfig  `json:"extractive" yaml:"extractive"`
	Abstractive AbstractiveConfig `json:"abstractive" yaml:"abstractive"`
	Entity      EntityConfig      `json:"entity" yaml:"entity"`
	Results     ResultsConfig     `json:"results" yaml:"results"`
}
