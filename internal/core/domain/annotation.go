package domain

import (
	"fmt"
	"unicode/utf8"
)

// Span is a half-open character range [Start, End) within a text.
type Span struct {
	Start int
	End   int
}

// Len returns the number of characters covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Overlaps returns true if both spans share at least one character.
func (s Span) Overlaps(other Span) bool {
	return s.Start < other.End && other.Start < s.End
}

// Annotation is a labelled character span within a sample.
type Annotation struct {
	Start int
	End   int
	Label Label
}

// Span returns the character range of the annotation.
func (a Annotation) Span() Span {
	return Span{Start: a.Start, End: a.End}
}

// Validate checks 0 <= Start < End <= len(text) and that the label is known.
func (a Annotation) Validate(text string) error {
	if !a.Label.IsValid() {
		return fmt.Errorf("%w: unknown label %q", ErrInvalidInput, a.Label)
	}
	if a.Start < 0 || a.Start >= a.End || a.End > utf8.RuneCountInString(text) {
		return fmt.Errorf("%w: [%d, %d) in text of length %d",
			ErrInvalidSpan, a.Start, a.End, utf8.RuneCountInString(text))
	}
	return nil
}

// AnnotatedEntry pairs a sample with its annotations.
// Annotations follow category declaration order and are not checked for
// overlap here; documents reject overlapping entities when they are set.
type AnnotatedEntry struct {
	Text        string
	Annotations []Annotation
}

// Record is a pre-tokenised annotation record, one per JSON line.
type Record struct {
	Text   string        `json:"text"`
	Tokens []RecordToken `json:"tokens"`
	Spans  []RecordSpan  `json:"spans"`
}

// RecordToken is a token of a Record. Only Text is required on input.
type RecordToken struct {
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	ID    int    `json:"id"`
	WS    bool   `json:"ws"`
}

// RecordSpan is a labelled character span of a Record.
type RecordSpan struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Label string `json:"label"`
}

// Words returns the token texts of the record.
func (r Record) Words() []string {
	words := make([]string, len(r.Tokens))
	for i, tok := range r.Tokens {
		words[i] = tok.Text
	}
	return words
}
