package services

import (
	"fmt"

	"github.com/custodia-labs/nerset/internal/core/domain"
)

// RecordAssembler turns a sample and its category values into an annotated entry.
type RecordAssembler struct {
	resolver *SpanResolver
}

// NewRecordAssembler creates an assembler. A nil resolver uses MatchFirst.
func NewRecordAssembler(resolver *SpanResolver) *RecordAssembler {
	if resolver == nil {
		resolver = NewSpanResolver(domain.MatchFirst)
	}
	return &RecordAssembler{resolver: resolver}
}

// Assemble builds one annotation per non-empty value, in label declaration
// order. Values are used verbatim.
func (a *RecordAssembler) Assemble(text string, values domain.CategoryValues) (domain.AnnotatedEntry, error) {
	var (
		labels []domain.Label
		wanted []string
	)
	for _, label := range domain.Categories() {
		if v := values.Get(label); v != "" {
			labels = append(labels, label)
			wanted = append(wanted, v)
		}
	}

	spans, err := a.resolver.ResolveSpans(text, wanted)
	if err != nil {
		return domain.AnnotatedEntry{}, fmt.Errorf("resolving categories: %w", err)
	}

	annotations := make([]domain.Annotation, len(spans))
	for i, span := range spans {
		annotations[i] = domain.Annotation{Start: span.Start, End: span.End, Label: labels[i]}
	}
	return domain.AnnotatedEntry{Text: text, Annotations: annotations}, nil
}
