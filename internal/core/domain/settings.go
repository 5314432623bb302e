package domain

import (
	"errors"
	"fmt"
)

// TokenizerKind selects the tokenizer used for raw samples.
type TokenizerKind string

// Available tokenizers.
const (
	// TokenizerRule is the built-in rule-based tokenizer.
	TokenizerRule TokenizerKind = "rule"

	// TokenizerPretrained loads a tokenizer.json file.
	TokenizerPretrained TokenizerKind = "pretrained"
)

// IsValid returns true if the tokenizer kind is recognised.
func (k TokenizerKind) IsValid() bool {
	return k == TokenizerRule || k == TokenizerPretrained
}

// String returns the string representation.
func (k TokenizerKind) String() string {
	return string(k)
}

// MatchingMode controls how category values are located in a sample.
type MatchingMode string

// Available matching modes.
const (
	// MatchFirst uses the first occurrence of each value.
	MatchFirst MatchingMode = "first"

	// MatchNonOverlapping skips occurrences that overlap a span already
	// resolved for the same sample.
	MatchNonOverlapping MatchingMode = "non_overlapping"
)

// IsValid returns true if the matching mode is recognised.
func (m MatchingMode) IsValid() bool {
	return m == MatchFirst || m == MatchNonOverlapping
}

// String returns the string representation.
func (m MatchingMode) String() string {
	return string(m)
}

// PathSettings holds default input and output locations.
type PathSettings struct {
	Samples  string
	Trainset string
}

// TokenizerSettings configures the tokenizer.
type TokenizerSettings struct {
	Kind TokenizerKind
	// File is the tokenizer.json path, required for TokenizerPretrained.
	File string
}

// SpanSettings configures span resolution.
type SpanSettings struct {
	Matching MatchingMode
}

// HistorySettings configures the run history database.
type HistorySettings struct {
	Enabled bool
	// Dir overrides the database directory. Empty means <config-dir>/data.
	Dir string
}

// MetricsSettings configures metric export.
type MetricsSettings struct {
	// Textfile is written after each run when set.
	Textfile string
}

// AppSettings is the complete application configuration.
type AppSettings struct {
	Paths     PathSettings
	Tokenizer TokenizerSettings
	Spans     SpanSettings
	History   HistorySettings
	Metrics   MetricsSettings
}

// DefaultAppSettings returns settings used when nothing is configured.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Paths: PathSettings{
			Samples:  "data/text_samples.txt",
			Trainset: "data/train.spacy",
		},
		Tokenizer: TokenizerSettings{Kind: TokenizerRule},
		Spans:     SpanSettings{Matching: MatchFirst},
		History:   HistorySettings{Enabled: true},
	}
}

// Validate checks the settings are usable.
func (s AppSettings) Validate() error {
	var errs []error
	if !s.Tokenizer.Kind.IsValid() {
		errs = append(errs, fmt.Errorf("%w: tokenizer %q", ErrUnsupportedFormat, s.Tokenizer.Kind))
	}
	if s.Tokenizer.Kind == TokenizerPretrained && s.Tokenizer.File == "" {
		errs = append(errs, fmt.Errorf("%w: pretrained tokenizer requires tokenizer.file", ErrInvalidInput))
	}
	if !s.Spans.Matching.IsValid() {
		errs = append(errs, fmt.Errorf("%w: span matching %q", ErrUnsupportedFormat, s.Spans.Matching))
	}
	return errors.Join(errs...)
}
