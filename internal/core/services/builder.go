package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/nerset/internal/core/domain"
	"github.com/custodia-labs/nerset/internal/core/ports/driven"
	"github.com/custodia-labs/nerset/internal/logger"
)

// Builder drives an interactive annotation session.
// It walks the samples once, in order; there is no skip, undo or resume.
type Builder struct {
	prompter  driven.Prompter
	assembler *RecordAssembler
}

// NewBuilder creates a builder.
func NewBuilder(prompter driven.Prompter, assembler *RecordAssembler) *Builder {
	if assembler == nil {
		assembler = NewRecordAssembler(nil)
	}
	return &Builder{prompter: prompter, assembler: assembler}
}

// Run prompts for every sample and returns one entry per sample.
// The first error aborts the session and no entries are returned.
func (b *Builder) Run(ctx context.Context, samples []string) ([]domain.AnnotatedEntry, error) {
	if b.prompter == nil {
		return nil, errors.New("prompter not configured")
	}

	labels := domain.Categories()
	entries := make([]domain.AnnotatedEntry, 0, len(samples))
	for i, sample := range samples {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		values, err := b.prompter.Prompt(ctx, i, len(samples), sample, labels)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i+1, err)
		}

		entry, err := b.assembler.Assemble(sample, values)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i+1, err)
		}
		logger.Debug("sample %d: %d annotations", i+1, len(entry.Annotations))
		entries = append(entries, entry)
	}
	return entries, nil
}
