package driven

import "github.com/custodia-labs/nerset/internal/core/domain"

// ContainerCodec converts documents to and from the binary training container.
// The format is owned by the codec; core treats the bytes as opaque.
type ContainerCodec interface {
	// Encode serialises documents in order.
	Encode(docs []*domain.Doc) ([]byte, error)

	// Decode reverses Encode.
	// Returns domain.ErrCorruptContainer if data is not a valid container.
	Decode(data []byte) ([]*domain.Doc, error)
}
