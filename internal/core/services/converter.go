package services

import (
	"errors"
	"fmt"

	"github.com/custodia-labs/nerset/internal/core/domain"
	"github.com/custodia-labs/nerset/internal/core/ports/driven"
	"github.com/custodia-labs/nerset/internal/logger"
)

// Converter maps annotated text onto tokenised documents.
type Converter struct {
	tokenizer driven.Tokenizer
	metrics   driven.MetricsRecorder
}

// NewConverter creates a converter. metrics may be nil.
func NewConverter(tokenizer driven.Tokenizer, metrics driven.MetricsRecorder) *Converter {
	return &Converter{tokenizer: tokenizer, metrics: metrics}
}

// EntryToDoc tokenises the entry text and aligns every annotation to tokens.
func (c *Converter) EntryToDoc(entry domain.AnnotatedEntry) (*domain.Doc, error) {
	if c.tokenizer == nil {
		return nil, errors.New("tokenizer not configured")
	}

	tokens, err := c.tokenizer.Tokenize(entry.Text)
	if err != nil {
		return nil, fmt.Errorf("tokenizing: %w", err)
	}
	doc := &domain.Doc{Tokens: tokens}
	if doc.Text() != entry.Text {
		return nil, fmt.Errorf("%w: %s tokenizer did not reproduce the text", domain.ErrTokenMismatch, c.tokenizer.Name())
	}

	spans := make([]domain.RecordSpan, len(entry.Annotations))
	for i, ann := range entry.Annotations {
		spans[i] = domain.RecordSpan{Start: ann.Start, End: ann.End, Label: ann.Label.String()}
	}
	return c.setEntities(doc, spans)
}

// EntriesToDocs converts entries in order, stopping at the first failure.
func (c *Converter) EntriesToDocs(entries []domain.AnnotatedEntry) ([]*domain.Doc, error) {
	docs := make([]*domain.Doc, 0, len(entries))
	for i, entry := range entries {
		doc, err := c.EntryToDoc(entry)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
		logger.Debug("entry %d: %d tokens, %d entities", i+1, doc.Len(), len(doc.Entities))
		docs = append(docs, doc)
	}
	return docs, nil
}

// RecordToDoc rebuilds a document from a pre-tokenised record.
// Whitespace is recovered from the record text; no tokenizer is involved.
func (c *Converter) RecordToDoc(rec domain.Record) (*domain.Doc, error) {
	words, spaces, err := domain.WordsAndSpaces(rec.Words(), rec.Text)
	if err != nil {
		return nil, err
	}
	doc, err := domain.NewDoc(words, spaces)
	if err != nil {
		return nil, err
	}
	return c.setEntities(doc, rec.Spans)
}

// RecordsToDocs converts records in order, stopping at the first failure.
func (c *Converter) RecordsToDocs(records []domain.Record) ([]*domain.Doc, error) {
	docs := make([]*domain.Doc, 0, len(records))
	for i, rec := range records {
		doc, err := c.RecordToDoc(rec)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		logger.Debug("record %d: %d tokens, %d entities", i+1, doc.Len(), len(doc.Entities))
		docs = append(docs, doc)
	}
	return docs, nil
}

func (c *Converter) setEntities(doc *domain.Doc, spans []domain.RecordSpan) (*domain.Doc, error) {
	ents := make([]domain.Entity, 0, len(spans))
	for _, span := range spans {
		ent, err := doc.CharSpan(span.Start, span.End, span.Label)
		if err != nil {
			if errors.Is(err, domain.ErrMisalignedSpan) && c.metrics != nil {
				c.metrics.AlignmentFailed()
			}
			return nil, err
		}
		ents = append(ents, ent)
	}
	if err := doc.SetEntities(ents); err != nil {
		return nil, err
	}
	if c.metrics != nil {
		c.metrics.DocConverted(doc)
	}
	return doc, nil
}
