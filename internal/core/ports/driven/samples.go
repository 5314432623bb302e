package driven

import "context"

// SampleLoader reads raw text samples from a file.
type SampleLoader interface {
	// Load returns the samples in file order.
	// Returns domain.ErrSourceNotFound if the file does not exist.
	Load(ctx context.Context, path string) ([]string, error)
}
