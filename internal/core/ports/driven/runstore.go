package driven

import (
	"context"

	"github.com/custodia-labs/nerset/internal/core/domain"
)

// RunStore persists run history.
type RunStore interface {
	// Save inserts or replaces a run.
	Save(ctx context.Context, run domain.Run) error

	// Get retrieves a run by ID.
	// Returns domain.ErrNotFound if the run does not exist.
	Get(ctx context.Context, id string) (*domain.Run, error)

	// List returns up to limit runs, most recent first. limit <= 0 means all.
	List(ctx context.Context, limit int) ([]domain.Run, error)
}
