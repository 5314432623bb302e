package driven

import (
	"context"

	"github.com/custodia-labs/nerset/internal/core/domain"
)

// RecordStore reads and writes JSON-lines annotation records.
type RecordStore interface {
	// Read returns every record in the file.
	// Returns domain.ErrSourceNotFound if the file does not exist.
	Read(ctx context.Context, path string) ([]domain.Record, error)

	// Encode renders records as JSON-lines.
	Encode(records []domain.Record) ([]byte, error)
}
