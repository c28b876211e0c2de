// Package storage provides durable key-value blob persistence for the ledger.
package storage

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned when no blob exists under the requested key.
var ErrKeyNotFound = errors.New("blob not found")

// BlobStore persists opaque blobs under string keys. The ledger serializes
// itself as one JSON blob under a single fixed key; the store has no
// knowledge of the blob's shape.
type BlobStore interface {
	// Read returns the blob stored under key, or ErrKeyNotFound.
	Read(ctx context.Context, key string) ([]byte, error)
	// Write stores the blob under key, replacing any previous value.
	Write(ctx context.Context, key string, data []byte) error
	Close() error
}
