// Package artifact implements driven.ArtifactStore on the local filesystem.
//
// Writes go to a temporary file in the destination directory which is
// synced and renamed over the destination, so readers never observe a
// partially written container.
package artifact

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/nerset/internal/core/domain"
	"github.com/custodia-labs/nerset/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.ArtifactStore = (*Store)(nil)

// Store reads and writes artifacts on disk.
type Store struct {
	permFile os.FileMode
	permDir  os.FileMode
}

// Option configures the store.
type Option func(*Store)

// WithPermissions sets file and directory modes. Zero keeps the default.
func WithPermissions(file, dir os.FileMode) Option {
	return func(s *Store) {
		if file != 0 {
			s.permFile = file
		}
		if dir != 0 {
			s.permDir = dir
		}
	}
}

// New creates a filesystem artifact store.
func New(opts ...Option) *Store {
	s := &Store{permFile: 0o644, permDir: 0o755}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Exists reports whether path exists.
func (s *Store) Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Read returns the contents of path.
func (s *Store) Read(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", domain.ErrSourceNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// Write stores data at path, creating parent directories.
// An existing file is only replaced when override is set.
func (s *Store) Write(ctx context.Context, path string, data []byte, override bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if path == "" {
		return fmt.Errorf("%w: empty path", domain.ErrInvalidInput)
	}

	if !override {
		exists, err := s.Exists(path)
		if err != nil {
			return fmt.Errorf("checking %s: %w", path, err)
		}
		if exists {
			return fmt.Errorf("%w: %s", domain.ErrDestinationExists, path)
		}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, s.permDir); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	return s.writeAtomic(dir, path, data)
}

// Remove deletes path. A missing file is not an error.
func (s *Store) Remove(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing %s: %w", path, err)
	}
	return nil
}

func (s *Store) writeAtomic(dir, dest string, data []byte) error {
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	_ = os.Chmod(tmpPath, s.permFile)

	fail := func(err error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		return fail(fmt.Errorf("writing %s: %w", dest, err))
	}
	if err := tmp.Sync(); err != nil {
		return fail(fmt.Errorf("syncing %s: %w", dest, err))
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("closing %s: %w", dest, err)
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replacing %s: %w", dest, err)
	}
	// Best effort: persist the rename.
	_ = syncDir(dir)
	return nil
}

func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer d.Close()
	return d.Sync()
}
