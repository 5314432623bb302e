// Package samples loads raw product descriptions for interactive annotation.
//
// The format is chosen by file extension:
//
//	.jsonl        record texts from a JSON-lines file
//	.xlsx         first column of a spreadsheet sheet
//	.csv, .tsv    first column of a delimited file
//	anything else one sample per line of plain text
package samples

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/nerset/internal/adapters/driven/jsonl"
	"github.com/custodia-labs/nerset/internal/core/domain"
	"github.com/custodia-labs/nerset/internal/core/ports/driven"
	"github.com/custodia-labs/nerset/internal/logger"
)

// Ensure Loader implements the interface.
var _ driven.SampleLoader = (*Loader)(nil)

// maxLineSize bounds a single plain-text sample.
const maxLineSize = 1024 * 1024

// Loader reads samples from files.
type Loader struct {
	sheet      string
	skipHeader bool
}

// Option configures the loader.
type Option func(*Loader)

// WithSheet selects the spreadsheet sheet. Empty means the first sheet.
func WithSheet(name string) Option {
	return func(l *Loader) {
		l.sheet = name
	}
}

// WithHeader skips the first row of spreadsheets and delimited files.
func WithHeader(skip bool) Option {
	return func(l *Loader) {
		l.skipHeader = skip
	}
}

// New creates a sample loader.
func New(opts ...Option) *Loader {
	l := &Loader{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load returns the samples in path, in file order. Blank samples are skipped.
func (l *Loader) Load(ctx context.Context, path string) ([]string, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrSourceNotFound, path)
		}
		return nil, fmt.Errorf("checking %s: %w", path, err)
	}

	var (
		samples []string
		err     error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".jsonl":
		samples, err = l.loadRecords(ctx, path)
	case ".xlsx":
		samples, err = l.loadSpreadsheet(path)
	case ".csv", ".tsv":
		samples, err = l.loadDelimited(path, ext == ".tsv")
	default:
		samples, err = l.loadText(ctx, path)
	}
	if err != nil {
		return nil, err
	}
	logger.Debug("Loaded %d samples from %s", len(samples), path)
	return samples, nil
}

func (l *Loader) loadText(ctx context.Context, path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	samples := []string{}
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := strings.TrimSuffix(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		samples = append(samples, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return samples, nil
}

func (l *Loader) loadRecords(ctx context.Context, path string) ([]string, error) {
	records, err := jsonl.New().Read(ctx, path)
	if err != nil {
		return nil, err
	}
	samples := make([]string, 0, len(records))
	for _, rec := range records {
		if strings.TrimSpace(rec.Text) != "" {
			samples = append(samples, rec.Text)
		}
	}
	return samples, nil
}

func (l *Loader) loadSpreadsheet(path string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening spreadsheet %s: %v", domain.ErrUnsupportedFormat, path, err)
	}
	defer f.Close()

	sheet := l.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: no sheets in %s", domain.ErrInvalidInput, path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	return l.firstColumn(rows), nil
}

func (l *Loader) loadDelimited(path string, tsv bool) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	if tsv {
		reader.Comma = '\t'
	}
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", domain.ErrInvalidInput, path, err)
	}
	return l.firstColumn(rows), nil
}

func (l *Loader) firstColumn(rows [][]string) []string {
	if l.skipHeader && len(rows) > 0 {
		rows = rows[1:]
	}
	samples := []string{}
	for _, row := range rows {
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		samples = append(samples, row[0])
	}
	return samples
}
