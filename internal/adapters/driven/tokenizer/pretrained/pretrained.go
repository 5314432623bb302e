// Package pretrained adapts a HuggingFace tokenizer.json to driven.Tokenizer.
//
// Encodings are produced without special tokens. Token offsets are byte
// offsets into the input; text between tokens is recovered from the input
// so the resulting words and spaces always reproduce it.
package pretrained

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"unicode/utf8"

	"github.com/sugarme/tokenizer"
	hfpretrained "github.com/sugarme/tokenizer/pretrained"

	"github.com/custodia-labs/nerset/internal/core/domain"
	"github.com/custodia-labs/nerset/internal/core/ports/driven"
	"github.com/custodia-labs/nerset/internal/logger"
)

// Ensure Tokenizer implements the interface.
var _ driven.Tokenizer = (*Tokenizer)(nil)

// Tokenizer wraps a loaded HuggingFace tokenizer.
type Tokenizer struct {
	tk   *tokenizer.Tokenizer
	path string
}

// New loads the tokenizer.json at path.
func New(path string) (*Tokenizer, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: tokenizer file is required", domain.ErrInvalidInput)
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrSourceNotFound, path)
		}
		return nil, fmt.Errorf("checking tokenizer file: %w", err)
	}

	tk, err := hfpretrained.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading tokenizer %s: %w", path, err)
	}
	logger.Debug("Loaded pretrained tokenizer from %s", path)
	return &Tokenizer{tk: tk, path: path}, nil
}

// Name returns the tokenizer name.
func (t *Tokenizer) Name() string {
	return "pretrained"
}

// Path returns the loaded tokenizer file.
func (t *Tokenizer) Path() string {
	return t.path
}

// Tokenize encodes text and converts the token offsets into words.
func (t *Tokenizer) Tokenize(text string) ([]domain.Token, error) {
	if text == "" {
		return nil, nil
	}
	en, err := t.tk.EncodeSingle(text, false)
	if err != nil {
		return nil, fmt.Errorf("encoding: %w", err)
	}
	return FromOffsets(text, en.GetOffsets())
}

// FromOffsets builds tokens from byte offsets into text.
// Overlapping offsets are merged and surrounding whitespace is trimmed.
func FromOffsets(text string, offsets [][]int) ([]domain.Token, error) {
	spans := make([][2]int, 0, len(offsets))
	for _, off := range offsets {
		if len(off) != 2 {
			continue
		}
		start, end := off[0], off[1]
		if start < 0 || end > len(text) || start > end {
			return nil, fmt.Errorf("%w: offset [%d, %d) outside text of %d bytes",
				domain.ErrTokenMismatch, start, end, len(text))
		}
		for start < end && isSpaceByte(text[start]) {
			start++
		}
		for end > start && isSpaceByte(text[end-1]) {
			end--
		}
		if start == end {
			continue
		}
		if !boundary(text, start) || !boundary(text, end) {
			return nil, fmt.Errorf("%w: offset [%d, %d) splits a character",
				domain.ErrTokenMismatch, start, end)
		}
		spans = append(spans, [2]int{start, end})
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i][0] < spans[j][0] })

	var (
		words  []string
		spaces []bool
		pos    int
	)
	for _, sp := range spans {
		if sp[1] <= pos {
			continue
		}
		start := sp[0]
		if start < pos {
			// Overlap: extend the previous word.
			words[len(words)-1] += text[pos:sp[1]]
			pos = sp[1]
			continue
		}
		words, spaces = appendGap(words, spaces, text[pos:start])
		words = append(words, text[start:sp[1]])
		spaces = append(spaces, false)
		pos = sp[1]
	}
	words, spaces = appendGap(words, spaces, text[pos:])

	doc, err := domain.NewDoc(words, spaces)
	if err != nil {
		return nil, err
	}
	return doc.Tokens, nil
}

// appendGap records text the tokenizer skipped. A leading space becomes the
// previous word's trailing space; anything else left becomes a word.
func appendGap(words []string, spaces []bool, gap string) ([]string, []bool) {
	if gap == "" {
		return words, spaces
	}
	if len(words) > 0 && !spaces[len(spaces)-1] && gap[0] == ' ' {
		spaces[len(spaces)-1] = true
		gap = gap[1:]
	}
	if gap == "" {
		return words, spaces
	}
	trailing := len(gap) > 1 && gap[len(gap)-1] == ' '
	if trailing {
		gap = gap[:len(gap)-1]
	}
	return append(words, gap), append(spaces, trailing)
}

func boundary(text string, i int) bool {
	return i == len(text) || utf8.RuneStart(text[i])
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
