package driving

import (
	"context"

	"github.com/custodia-labs/nerset/internal/core/domain"
)

// SerializeRequest converts a JSON-lines annotation file into a container.
type SerializeRequest struct {
	// Source is the JSON-lines file to read.
	Source string

	// Destination is the container path to write.
	Destination string

	// Override permits replacing an existing destination.
	Override bool
}

// AnnotateRequest runs an interactive annotation session.
type AnnotateRequest struct {
	// Samples is the raw sample file (plain text or spreadsheet).
	Samples string

	// Destination is the container path to write.
	Destination string

	// Override permits replacing existing output files.
	Override bool

	// JSONL optionally also writes the annotated entries as JSON-lines records.
	JSONL string
}

// TrainsetService builds and reads training containers.
type TrainsetService interface {
	// Serialize converts pre-annotated records into a container on disk.
	Serialize(ctx context.Context, req SerializeRequest) (*domain.RunSummary, error)

	// Annotate prompts for annotations of every sample and writes a container.
	Annotate(ctx context.Context, req AnnotateRequest) (*domain.RunSummary, error)

	// Inspect reads a container back into documents.
	Inspect(ctx context.Context, path string) ([]*domain.Doc, error)

	// History returns recorded runs, most recent first.
	History(ctx context.Context, limit int) ([]domain.Run, error)
}
