package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/custodia-labs/nerset/internal/core/domain"
)

// spaceTokenizer splits on single spaces.
type spaceTokenizer struct{}

func (spaceTokenizer) Name() string { return "space" }

func (spaceTokenizer) Tokenize(text string) ([]domain.Token, error) {
	if text == "" {
		return nil, nil
	}
	words := strings.Split(text, " ")
	spaces := make([]bool, len(words))
	for i := range words {
		spaces[i] = i < len(words)-1
	}
	doc, err := domain.NewDoc(words, spaces)
	if err != nil {
		return nil, err
	}
	return doc.Tokens, nil
}

// lossyTokenizer drops the last character, so output never matches input.
type lossyTokenizer struct{}

func (lossyTokenizer) Name() string { return "lossy" }

func (lossyTokenizer) Tokenize(text string) ([]domain.Token, error) {
	r := []rune(text)
	if len(r) < 2 {
		return nil, nil
	}
	return spaceTokenizer{}.Tokenize(string(r[:len(r)-1]))
}

// fakeCodec remembers encoded documents and hands them back on Decode.
type fakeCodec struct {
	mu   sync.Mutex
	docs map[string][]*domain.Doc
}

func newFakeCodec() *fakeCodec {
	return &fakeCodec{docs: make(map[string][]*domain.Doc)}
}

func (c *fakeCodec) Encode(docs []*domain.Doc) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := fmt.Sprintf("container-%d", len(c.docs)+1)
	c.docs[key] = docs
	return []byte(key), nil
}

func (c *fakeCodec) Decode(data []byte) ([]*domain.Doc, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	docs, ok := c.docs[string(data)]
	if !ok {
		return nil, domain.ErrCorruptContainer
	}
	return docs, nil
}

// memRecords serves records by path and encodes them as JSON lines.
type memRecords struct {
	files map[string][]domain.Record
	reads int
}

func (m *memRecords) Read(_ context.Context, path string) ([]domain.Record, error) {
	m.reads++
	recs, ok := m.files[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSourceNotFound, path)
	}
	return recs, nil
}

func (m *memRecords) Encode(records []domain.Record) ([]byte, error) {
	var sb strings.Builder
	for _, rec := range records {
		line, err := json.Marshal(rec)
		if err != nil {
			return nil, err
		}
		sb.Write(line)
		sb.WriteByte('\n')
	}
	return []byte(sb.String()), nil
}

// memArtifacts is a map-backed artifact store.
type memArtifacts struct {
	mu      sync.Mutex
	files   map[string][]byte
	writes  int
	removed []string
	// failWrite makes Write fail for the given paths.
	failWrite map[string]error
}

func newMemArtifacts() *memArtifacts {
	return &memArtifacts{files: make(map[string][]byte), failWrite: make(map[string]error)}
}

func (m *memArtifacts) Exists(path string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[path]
	return ok, nil
}

func (m *memArtifacts) Read(_ context.Context, path string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSourceNotFound, path)
	}
	return data, nil
}

func (m *memArtifacts) Write(_ context.Context, path string, data []byte, override bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failWrite[path]; err != nil {
		return err
	}
	if _, ok := m.files[path]; ok && !override {
		return fmt.Errorf("%w: %s", domain.ErrDestinationExists, path)
	}
	m.files[path] = data
	m.writes++
	return nil
}

func (m *memArtifacts) Remove(_ context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, path)
	m.removed = append(m.removed, path)
	return nil
}

// memSamples serves sample lists by path.
type memSamples map[string][]string

func (m memSamples) Load(_ context.Context, path string) ([]string, error) {
	samples, ok := m[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSourceNotFound, path)
	}
	return samples, nil
}

// scriptedPrompter replays answers in order and records what it was shown.
type scriptedPrompter struct {
	answers []domain.CategoryValues
	failAt  int
	err     error
	shown   []string
	labels  []domain.Label
}

func (p *scriptedPrompter) Prompt(
	_ context.Context, index, total int, sample string, labels []domain.Label,
) (domain.CategoryValues, error) {
	p.shown = append(p.shown, fmt.Sprintf("%d/%d %s", index+1, total, sample))
	p.labels = labels
	if p.err != nil && index == p.failAt {
		return nil, p.err
	}
	if index >= len(p.answers) {
		return domain.CategoryValues{}, nil
	}
	return p.answers[index], nil
}

// countingMetrics records calls.
type countingMetrics struct {
	docs       int
	alignments int
	runs       []string
	flushes    int
	flushErr   error
}

func (m *countingMetrics) DocConverted(*domain.Doc) { m.docs++ }
func (m *countingMetrics) AlignmentFailed()         { m.alignments++ }
func (m *countingMetrics) RunFinished(command string, status domain.RunStatus) {
	m.runs = append(m.runs, command+":"+string(status))
}
func (m *countingMetrics) Flush() error {
	m.flushes++
	return m.flushErr
}
