// Package rule provides a rule-based word tokenizer.
//
// Text is split on whitespace, then prefix and suffix punctuation is peeled
// off each chunk, infixes between letters are split out and numbers are
// separated from unit suffixes. Splitting works on grapheme clusters so
// accented letters and emoji sequences are never broken apart.
package rule

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/custodia-labs/nerset/internal/core/domain"
	"github.com/custodia-labs/nerset/internal/core/ports/driven"
)

// Ensure Tokenizer implements the interface.
var _ driven.Tokenizer = (*Tokenizer)(nil)

// DefaultUnits are measurement suffixes split from a preceding number.
var DefaultUnits = []string{"mm", "cm", "m", "km", "mg", "g", "gr", "kg", "ml", "cl", "l"}

var (
	prefixes = set("¿", "¡", `"`, "'", "«", "“", "‘", "(", "[", "{", "#", "$", "€", "£", "*")
	suffixes = set(".", ",", ";", ":", "!", "?", `"`, "'", "»", "”", "’", ")", "]", "}", "%", "€", "$", "£", "…")
	infixes  = set("-", "–", "/", ":")
)

// Tokenizer is a rule-based tokenizer.
type Tokenizer struct {
	unitRe *regexp.Regexp
}

// Option configures the tokenizer.
type Option func(*Tokenizer)

// WithUnits replaces the unit suffixes split after numbers.
// An empty list disables unit splitting.
func WithUnits(units ...string) Option {
	return func(t *Tokenizer) {
		t.unitRe = compileUnits(units)
	}
}

// New creates a rule tokenizer.
func New(opts ...Option) *Tokenizer {
	t := &Tokenizer{unitRe: compileUnits(DefaultUnits)}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Name returns the tokenizer name.
func (t *Tokenizer) Name() string {
	return "rule"
}

// Tokenize splits text into tokens whose texts and trailing spaces
// reproduce the input exactly.
func (t *Tokenizer) Tokenize(text string) ([]domain.Token, error) {
	words, spaces := t.split(text)
	doc, err := domain.NewDoc(words, spaces)
	if err != nil {
		return nil, err
	}
	return doc.Tokens, nil
}

// split walks whitespace-separated chunks. A single space after a token is
// recorded as its trailing space; any other whitespace becomes a token.
func (t *Tokenizer) split(text string) ([]string, []bool) {
	var (
		words  []string
		spaces []bool
	)

	for i := 0; i < len(text); {
		j := scan(text, i, unicode.IsSpace)
		if j > i {
			run := text[i:j]
			if len(words) > 0 && !spaces[len(spaces)-1] && run[0] == ' ' {
				spaces[len(spaces)-1] = true
				run = run[1:]
			}
			if run != "" {
				trailing := len(run) > 1 && run[len(run)-1] == ' '
				if trailing {
					run = run[:len(run)-1]
				}
				words = append(words, run)
				spaces = append(spaces, trailing)
			}
			i = j
			continue
		}

		j = scan(text, i, func(r rune) bool { return !unicode.IsSpace(r) })
		for _, w := range t.splitChunk(text[i:j]) {
			words = append(words, w)
			spaces = append(spaces, false)
		}
		i = j
	}
	return words, spaces
}

// splitChunk tokenises a chunk holding no whitespace.
func (t *Tokenizer) splitChunk(chunk string) []string {
	g := graphemes(chunk)

	var head []string
	for len(g) > 1 && (prefixes[g[0]] || isSymbol(g[0])) {
		head = append(head, g[0])
		g = g[1:]
	}

	var tail []string
	for len(g) > 1 {
		last := len(g) - 1
		if !suffixes[g[last]] && !isSymbol(g[last]) {
			break
		}
		start := last
		if g[last] == "." {
			for start > 1 && g[start-1] == "." {
				start--
			}
		}
		tail = append(tail, strings.Join(g[start:], ""))
		g = g[:start]
	}

	out := head
	for _, piece := range splitInfixes(g) {
		out = append(out, t.splitUnit(piece)...)
	}
	for k := len(tail) - 1; k >= 0; k-- {
		out = append(out, tail[k])
	}
	return out
}

// splitUnit separates "25cm" into "25" and "cm".
func (t *Tokenizer) splitUnit(piece string) []string {
	if t.unitRe == nil {
		return []string{piece}
	}
	m := t.unitRe.FindStringSubmatch(piece)
	if m == nil {
		return []string{piece}
	}
	return []string{m[1], m[2]}
}

// splitInfixes splits infix characters surrounded by letters.
func splitInfixes(g []string) []string {
	var (
		out []string
		cur strings.Builder
	)
	for k, cluster := range g {
		if infixes[cluster] && k > 0 && k < len(g)-1 && isLetter(g[k-1]) && isLetter(g[k+1]) {
			out = append(out, cur.String(), cluster)
			cur.Reset()
			continue
		}
		cur.WriteString(cluster)
	}
	if cur.Len() > 0 {
		out = append(out, cur.String())
	}
	return out
}

func compileUnits(units []string) *regexp.Regexp {
	if len(units) == 0 {
		return nil
	}
	quoted := make([]string, len(units))
	for i, u := range units {
		quoted[i] = regexp.QuoteMeta(u)
	}
	return regexp.MustCompile(`^(\d+(?:[.,]\d+)?)(` + strings.Join(quoted, "|") + `)$`)
}

func graphemes(s string) []string {
	var out []string
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		out = append(out, gr.Str())
	}
	return out
}

// scan returns the byte offset of the first rune at or after i failing keep.
func scan(s string, i int, keep func(rune) bool) int {
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !keep(r) {
			break
		}
		i += size
	}
	return i
}

func isLetter(cluster string) bool {
	r, _ := utf8.DecodeRuneInString(cluster)
	return unicode.IsLetter(r)
}

// isSymbol reports whether a cluster starts with an emoji or other symbol.
func isSymbol(cluster string) bool {
	r, _ := utf8.DecodeRuneInString(cluster)
	return unicode.Is(unicode.So, r)
}

func set(items ...string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, it := range items {
		m[it] = true
	}
	return m
}
