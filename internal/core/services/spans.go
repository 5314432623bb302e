package services

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/nerset/internal/core/domain"
)

// SpanResolver locates category values inside sample text.
type SpanResolver struct {
	mode domain.MatchingMode
}

// NewSpanResolver creates a resolver. An unknown mode falls back to MatchFirst.
func NewSpanResolver(mode domain.MatchingMode) *SpanResolver {
	if !mode.IsValid() {
		mode = domain.MatchFirst
	}
	return &SpanResolver{mode: mode}
}

// Mode returns the matching mode in use.
func (r *SpanResolver) Mode() domain.MatchingMode {
	return r.mode
}

// ResolveSpan returns the character span of the first occurrence of value.
// A value occurring more than once always resolves to its first occurrence.
func (r *SpanResolver) ResolveSpan(text, value string) (domain.Span, error) {
	if value == "" {
		return domain.Span{}, fmt.Errorf("%w: empty value", domain.ErrInvalidInput)
	}
	span, ok := findFrom(text, value, 0)
	if !ok {
		return domain.Span{}, fmt.Errorf("%w: %q", domain.ErrSubstringNotFound, value)
	}
	return span, nil
}

// ResolveSpans resolves each value in order and returns one span per value.
// In MatchNonOverlapping mode an occurrence overlapping a span resolved
// earlier in the same call is skipped in favour of a later occurrence.
func (r *SpanResolver) ResolveSpans(text string, values []string) ([]domain.Span, error) {
	spans := make([]domain.Span, 0, len(values))
	for _, value := range values {
		var (
			span domain.Span
			err  error
		)
		if r.mode == domain.MatchNonOverlapping {
			span, err = r.resolveFree(text, value, spans)
		} else {
			span, err = r.ResolveSpan(text, value)
		}
		if err != nil {
			return nil, err
		}
		spans = append(spans, span)
	}
	return spans, nil
}

// resolveFree returns the first occurrence of value not overlapping taken.
func (r *SpanResolver) resolveFree(text, value string, taken []domain.Span) (domain.Span, error) {
	if value == "" {
		return domain.Span{}, fmt.Errorf("%w: empty value", domain.ErrInvalidInput)
	}

	from := 0
	seen := false
	for from <= len(text) {
		idx := strings.Index(text[from:], value)
		if idx < 0 {
			break
		}
		seen = true
		at := from + idx
		span := charSpan(text, at, value)
		if !overlapsAny(span, taken) {
			return span, nil
		}
		_, size := utf8.DecodeRuneInString(text[at:])
		from = at + size
	}

	if seen {
		return domain.Span{}, fmt.Errorf("%w: every occurrence of %q overlaps an earlier value",
			domain.ErrSubstringNotFound, value)
	}
	return domain.Span{}, fmt.Errorf("%w: %q", domain.ErrSubstringNotFound, value)
}

// findFrom searches value in text starting at byte offset from.
func findFrom(text, value string, from int) (domain.Span, bool) {
	idx := strings.Index(text[from:], value)
	if idx < 0 {
		return domain.Span{}, false
	}
	return charSpan(text, from+idx, value), true
}

// charSpan converts a byte position of value in text to character offsets.
func charSpan(text string, at int, value string) domain.Span {
	start := utf8.RuneCountInString(text[:at])
	return domain.Span{Start: start, End: start + utf8.RuneCountInString(value)}
}

func overlapsAny(span domain.Span, taken []domain.Span) bool {
	for _, t := range taken {
		if span.Overlaps(t) {
			return true
		}
	}
	return false
}
