// Package jsonl reads and writes pre-tokenised annotation records, one JSON
// object per line.
package jsonl

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/custodia-labs/nerset/internal/core/domain"
	"github.com/custodia-labs/nerset/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.RecordStore = (*Store)(nil)

// maxLineSize bounds a single record line.
const maxLineSize = 16 * 1024 * 1024

// Store is a JSON-lines record store.
type Store struct{}

// New creates a JSON-lines store.
func New() *Store {
	return &Store{}
}

// Read decodes every record in the file at path.
func (s *Store) Read(ctx context.Context, path string) ([]domain.Record, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", domain.ErrSourceNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	return Decode(ctx, f)
}

// Decode reads records from r. Blank lines are skipped.
func Decode(ctx context.Context, r io.Reader) ([]domain.Record, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	records := []domain.Record{}
	line := 0
	for sc.Scan() {
		line++
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		raw := bytes.TrimSpace(sc.Bytes())
		if len(raw) == 0 {
			continue
		}
		var rec domain.Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", domain.ErrInvalidInput, line, err)
		}
		records = append(records, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading line %d: %w", line+1, err)
	}
	return records, nil
}

// Encode renders records as JSON lines. Non-ASCII text is written as is.
func (s *Store) Encode(records []domain.Record) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	for i, rec := range records {
		if rec.Tokens == nil {
			rec.Tokens = []domain.RecordToken{}
		}
		if rec.Spans == nil {
			rec.Spans = []domain.RecordSpan{}
		}
		if err := enc.Encode(rec); err != nil {
			return nil, fmt.Errorf("encoding record %d: %w", i+1, err)
		}
	}
	return buf.Bytes(), nil
}
