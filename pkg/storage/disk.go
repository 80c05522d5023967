package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

type diskStore struct {
	root string
}

// NewDiskStore returns a BlobStore backed by a local directory. The directory
// is created if absent.
func NewDiskStore(root string) (BlobStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &diskStore{root: root}, nil
}

func (s *diskStore) path(key string) string {
	// Keys are server-generated UUIDs, but never trust them as paths.
	return filepath.Join(s.root, filepath.Base(key))
}

func (s *diskStore) Put(ctx context.Context, key string, r io.Reader) error {
	f, err := os.Create(s.path(key))
	if err != nil {
		return fmt.Errorf("failed to create blob file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(s.path(key))
		return fmt.Errorf("failed to write blob: %w", err)
	}

	return f.Close()
}

func (s *diskStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	f, err := os.Open(s.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrBlobNotFound
		}
		return nil, fmt.Errorf("failed to open blob: %w", err)
	}
	return f, nil
}

func (s *diskStore) Delete(ctx context.Context, key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete blob: %w", err)
	}
	return nil
}
