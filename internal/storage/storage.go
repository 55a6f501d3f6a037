package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no blob exists under the requested id.
var ErrNotFound = errors.New("blob not found")

// BlobStore keeps opaque binary objects addressed by generated ids.
type BlobStore interface {
	// Put stores data and returns the id it can be fetched with.
	Put(ctx context.Context, data []byte, contentType string) (string, error)
	Get(ctx context.Context, id string) ([]byte, error)
	Delete(ctx context.Context, id string) error
}
