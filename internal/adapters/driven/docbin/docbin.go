// Package docbin implements driven.ContainerCodec as a compact binary
// collection of tokenised documents.
//
// # Format
//
// A container is a zlib stream holding one CBOR map:
//
//	version  format version (currently 1)
//	attrs    attribute names, one column each: ORTH, ENT_IOB, ENT_TYPE
//	tokens   row-major token attribute matrix, len(attrs) values per token
//	spaces   one trailing-space flag per token
//	lengths  token count per document
//	strings  string table referenced by ORTH and ENT_TYPE
//
// String references are 1-based indices into strings; 0 is the empty
// string. ENT_IOB values are the domain.IOB codes.
package docbin

import (
	"bytes"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zlib"

	"github.com/custodia-labs/nerset/internal/core/domain"
	"github.com/custodia-labs/nerset/internal/core/ports/driven"
)

// Ensure Codec implements the interface.
var _ driven.ContainerCodec = (*Codec)(nil)

// Version is the container format version written by Encode.
const Version = 1

// Attribute names stored per token.
const (
	AttrOrth    = "ORTH"
	AttrEntIOB  = "ENT_IOB"
	AttrEntType = "ENT_TYPE"
)

// DefaultAttrs are the attribute columns written by Encode.
var DefaultAttrs = []string{AttrOrth, AttrEntIOB, AttrEntType}

// payload is the CBOR body of a container.
type payload struct {
	Version int      `cbor:"version"`
	Attrs   []string `cbor:"attrs"`
	Tokens  []uint64 `cbor:"tokens"`
	Spaces  []bool   `cbor:"spaces"`
	Lengths []int    `cbor:"lengths"`
	Strings []string `cbor:"strings"`
}

// Codec encodes and decodes containers.
type Codec struct {
	level int
}

// Option configures the codec.
type Option func(*Codec)

// WithCompressionLevel sets the zlib level used by Encode.
func WithCompressionLevel(level int) Option {
	return func(c *Codec) {
		if level >= zlib.HuffmanOnly && level <= zlib.BestCompression {
			c.level = level
		}
	}
}

// New creates a codec.
func New(opts ...Option) *Codec {
	c := &Codec{level: zlib.DefaultCompression}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Encode serialises docs into a container.
func (c *Codec) Encode(docs []*domain.Doc) ([]byte, error) {
	p := payload{
		Version: Version,
		Attrs:   DefaultAttrs,
		Lengths: make([]int, 0, len(docs)),
	}
	strs := newStringTable()

	for i, doc := range docs {
		if doc == nil {
			return nil, fmt.Errorf("%w: doc %d is nil", domain.ErrInvalidInput, i)
		}
		codes, types := doc.IOB()
		for t, tok := range doc.Tokens {
			p.Tokens = append(p.Tokens, strs.add(tok.Text), uint64(codes[t]), strs.add(types[t]))
			p.Spaces = append(p.Spaces, tok.SpaceAfter)
		}
		p.Lengths = append(p.Lengths, len(doc.Tokens))
	}
	p.Strings = strs.values

	body, err := cbor.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshalling container: %w", err)
	}

	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, c.level)
	if err != nil {
		return nil, fmt.Errorf("creating compressor: %w", err)
	}
	if _, err := zw.Write(body); err != nil {
		zw.Close()
		return nil, fmt.Errorf("compressing container: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("compressing container: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode reads docs back from a container.
func (c *Codec) Decode(data []byte) ([]*domain.Doc, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptContainer, err)
	}
	defer zr.Close()

	body, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptContainer, err)
	}

	var p payload
	if err := cbor.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptContainer, err)
	}
	return p.docs()
}

// docs validates the payload and rebuilds its documents.
func (p *payload) docs() ([]*domain.Doc, error) {
	if p.Version != Version {
		return nil, fmt.Errorf("%w: unsupported version %d", domain.ErrCorruptContainer, p.Version)
	}

	orth, iob, typ := -1, -1, -1
	for i, a := range p.Attrs {
		switch a {
		case AttrOrth:
			orth = i
		case AttrEntIOB:
			iob = i
		case AttrEntType:
			typ = i
		}
	}
	if orth < 0 || iob < 0 || typ < 0 {
		return nil, fmt.Errorf("%w: missing attributes in %v", domain.ErrCorruptContainer, p.Attrs)
	}

	total := 0
	for _, n := range p.Lengths {
		if n < 0 {
			return nil, fmt.Errorf("%w: negative doc length", domain.ErrCorruptContainer)
		}
		total += n
	}
	width := len(p.Attrs)
	if len(p.Tokens) != total*width || len(p.Spaces) != total {
		return nil, fmt.Errorf("%w: %d tokens declared, %d attribute values and %d space flags stored",
			domain.ErrCorruptContainer, total, len(p.Tokens), len(p.Spaces))
	}

	docs := make([]*domain.Doc, 0, len(p.Lengths))
	row := 0
	for d, n := range p.Lengths {
		words := make([]string, n)
		codes := make([]domain.IOB, n)
		types := make([]string, n)
		for t := 0; t < n; t++ {
			vals := p.Tokens[(row+t)*width : (row+t+1)*width]
			var err error
			if words[t], err = p.lookup(vals[orth]); err != nil {
				return nil, err
			}
			if types[t], err = p.lookup(vals[typ]); err != nil {
				return nil, err
			}
			if vals[iob] > uint64(domain.IOBBegin) {
				return nil, fmt.Errorf("%w: iob code %d", domain.ErrCorruptContainer, vals[iob])
			}
			codes[t] = domain.IOB(vals[iob])
		}

		doc, err := domain.DocFromIOB(words, p.Spaces[row:row+n], codes, types)
		if err != nil {
			return nil, fmt.Errorf("%w: doc %d: %v", domain.ErrCorruptContainer, d, err)
		}
		docs = append(docs, doc)
		row += n
	}
	return docs, nil
}

func (p *payload) lookup(ref uint64) (string, error) {
	if ref == 0 {
		return "", nil
	}
	if ref > uint64(len(p.Strings)) {
		return "", fmt.Errorf("%w: string reference %d out of range", domain.ErrCorruptContainer, ref)
	}
	return p.Strings[ref-1], nil
}

// stringTable interns strings with 1-based references.
type stringTable struct {
	index  map[string]uint64
	values []string
}

func newStringTable() *stringTable {
	return &stringTable{index: make(map[string]uint64)}
}

func (s *stringTable) add(v string) uint64 {
	if v == "" {
		return 0
	}
	if ref, ok := s.index[v]; ok {
		return ref
	}
	s.values = append(s.values, v)
	ref := uint64(len(s.values))
	s.index[v] = ref
	return ref
}
