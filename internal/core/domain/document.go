package domain

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// Token is a single token of a Doc.
type Token struct {
	// Text is the verbatim token text.
	Text string

	// Start is the character offset of the first character.
	Start int

	// End is the character offset just past the last character.
	End int

	// SpaceAfter reports whether a single space follows the token.
	SpaceAfter bool
}

// Entity is a labelled token range [Start, End) within a Doc.
type Entity struct {
	Start int
	End   int
	Label string
}

// IOB is the per-token entity boundary code stored in training containers.
type IOB uint8

// IOB codes. The numbering matches the trainer's attribute values.
const (
	IOBMissing IOB = 0
	IOBInside  IOB = 1
	IOBOutside IOB = 2
	IOBBegin   IOB = 3
)

// Doc is a tokenised text with token-aligned entities.
type Doc struct {
	Tokens   []Token
	Entities []Entity
}

// NewDoc builds a document from words and trailing-space flags.
// A nil spaces slice means every word is followed by a space.
func NewDoc(words []string, spaces []bool) (*Doc, error) {
	if spaces != nil && len(spaces) != len(words) {
		return nil, fmt.Errorf("%w: %d words but %d space flags", ErrInvalidInput, len(words), len(spaces))
	}

	doc := &Doc{Tokens: make([]Token, len(words))}
	offset := 0
	for i, w := range words {
		if w == "" {
			return nil, fmt.Errorf("%w: empty word at position %d", ErrInvalidInput, i)
		}
		space := true
		if spaces != nil {
			space = spaces[i]
		}
		n := utf8.RuneCountInString(w)
		doc.Tokens[i] = Token{Text: w, Start: offset, End: offset + n, SpaceAfter: space}
		offset += n
		if space {
			offset++
		}
	}
	return doc, nil
}

// Len returns the number of tokens.
func (d *Doc) Len() int {
	return len(d.Tokens)
}

// Text reconstructs the exact document text.
func (d *Doc) Text() string {
	var b strings.Builder
	for _, tok := range d.Tokens {
		b.WriteString(tok.Text)
		if tok.SpaceAfter {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

// Words returns the token texts.
func (d *Doc) Words() []string {
	words := make([]string, len(d.Tokens))
	for i, tok := range d.Tokens {
		words[i] = tok.Text
	}
	return words
}

// Spaces returns the trailing-space flags.
func (d *Doc) Spaces() []bool {
	spaces := make([]bool, len(d.Tokens))
	for i, tok := range d.Tokens {
		spaces[i] = tok.SpaceAfter
	}
	return spaces
}

// CharSpan maps a character span onto the token sequence.
// The span must start at a token start and end at a token end.
func (d *Doc) CharSpan(start, end int, label string) (Entity, error) {
	if start < 0 || start >= end || len(d.Tokens) == 0 || end > d.Tokens[len(d.Tokens)-1].End {
		return Entity{}, fmt.Errorf("%w: [%d, %d)", ErrInvalidSpan, start, end)
	}

	first := -1
	for i, tok := range d.Tokens {
		if tok.Start == start {
			first = i
			break
		}
		if tok.Start > start {
			break
		}
	}
	if first < 0 {
		return Entity{}, fmt.Errorf("%w: [%d, %d) %s", ErrMisalignedSpan, start, end, label)
	}

	for i := first; i < len(d.Tokens); i++ {
		if d.Tokens[i].End == end {
			return Entity{Start: first, End: i + 1, Label: label}, nil
		}
		if d.Tokens[i].End > end {
			break
		}
	}
	return Entity{}, fmt.Errorf("%w: [%d, %d) %s", ErrMisalignedSpan, start, end, label)
}

// SetEntities replaces the document entities.
// Entities are sorted by position and must not overlap.
func (d *Doc) SetEntities(ents []Entity) error {
	sorted := make([]Entity, len(ents))
	copy(sorted, ents)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	for i, ent := range sorted {
		if ent.Start < 0 || ent.Start >= ent.End || ent.End > len(d.Tokens) {
			return fmt.Errorf("%w: token range [%d, %d)", ErrInvalidSpan, ent.Start, ent.End)
		}
		if i > 0 && sorted[i-1].End > ent.Start {
			prev := sorted[i-1]
			return fmt.Errorf("%w: %s [%d, %d) and %s [%d, %d)", ErrOverlappingEntities,
				prev.Label, prev.Start, prev.End, ent.Label, ent.Start, ent.End)
		}
	}

	d.Entities = sorted
	return nil
}

// CharSpans returns the entities as character spans.
func (d *Doc) CharSpans() []RecordSpan {
	spans := make([]RecordSpan, 0, len(d.Entities))
	for _, ent := range d.Entities {
		spans = append(spans, RecordSpan{
			Start: d.Tokens[ent.Start].Start,
			End:   d.Tokens[ent.End-1].End,
			Label: ent.Label,
		})
	}
	return spans
}

// EntityText returns the verbatim text covered by an entity.
func (d *Doc) EntityText(ent Entity) string {
	var b strings.Builder
	for i := ent.Start; i < ent.End; i++ {
		b.WriteString(d.Tokens[i].Text)
		if i < ent.End-1 && d.Tokens[i].SpaceAfter {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

// IOB returns per-token boundary codes and entity types.
// Tokens outside every entity are IOBOutside with an empty type.
func (d *Doc) IOB() ([]IOB, []string) {
	codes := make([]IOB, len(d.Tokens))
	types := make([]string, len(d.Tokens))
	for i := range codes {
		codes[i] = IOBOutside
	}
	for _, ent := range d.Entities {
		for i := ent.Start; i < ent.End; i++ {
			codes[i] = IOBInside
			types[i] = ent.Label
		}
		codes[ent.Start] = IOBBegin
	}
	return codes, types
}

// DocFromIOB rebuilds a document from words, space flags and IOB tags.
func DocFromIOB(words []string, spaces []bool, codes []IOB, types []string) (*Doc, error) {
	if len(codes) != len(words) || len(types) != len(words) {
		return nil, fmt.Errorf("%w: %d words, %d iob codes, %d types",
			ErrInvalidInput, len(words), len(codes), len(types))
	}

	doc, err := NewDoc(words, spaces)
	if err != nil {
		return nil, err
	}

	var ents []Entity
	open := -1
	closeOpen := func(at int) {
		if open >= 0 {
			ents = append(ents, Entity{Start: open, End: at, Label: types[open]})
			open = -1
		}
	}
	for i, code := range codes {
		switch code {
		case IOBBegin:
			closeOpen(i)
			open = i
		case IOBInside:
			// An I tag without a preceding B of the same type starts a new entity.
			if open < 0 || types[open] != types[i] {
				closeOpen(i)
				if types[i] != "" {
					open = i
				}
			}
		default:
			closeOpen(i)
		}
	}
	closeOpen(len(codes))

	if err := doc.SetEntities(ents); err != nil {
		return nil, err
	}
	return doc, nil
}

// Record converts the document into a JSON-lines record.
func (d *Doc) Record() Record {
	rec := Record{
		Text:   d.Text(),
		Tokens: make([]RecordToken, len(d.Tokens)),
		Spans:  d.CharSpans(),
	}
	for i, tok := range d.Tokens {
		rec.Tokens[i] = RecordToken{Text: tok.Text, Start: tok.Start, End: tok.End, ID: i, WS: tok.SpaceAfter}
	}
	return rec
}
