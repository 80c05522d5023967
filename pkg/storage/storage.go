package storage

import (
	"context"
	"errors"
	"io"
)

// ErrBlobNotFound is returned by Get when no blob exists under the key.
var ErrBlobNotFound = errors.New("blob not found")

// BlobStore is the content store port. Blobs are addressed by the opaque,
// server-generated storage key alone; the key carries no trace of the
// user-supplied filename.
type BlobStore interface {
	// Put streams content into the store under key.
	Put(ctx context.Context, key string, r io.Reader) error
	// Get opens the blob stored under key for reading.
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete removes the blob. Deleting a missing blob is not an error,
	// so interrupted cascades can be re-run safely.
	Delete(ctx context.Context, key string) error
}
