package driven

import "context"

// ArtifactStore reads and writes whole files.
type ArtifactStore interface {
	// Exists reports whether a file is already present at path.
	Exists(path string) (bool, error)

	// Read returns the file contents.
	// Returns domain.ErrSourceNotFound if the file does not exist.
	Read(ctx context.Context, path string) ([]byte, error)

	// Write stores data at path, creating parent directories.
	// Returns domain.ErrDestinationExists if path exists and override is false.
	Write(ctx context.Context, path string, data []byte, override bool) error

	// Remove deletes the file at path. A missing file is not an error.
	Remove(ctx context.Context, path string) error
}
