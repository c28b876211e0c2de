package storage

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory BlobStore used in tests and as a fallback when
// no durable path is configured. Contents are lost on process exit.
type MemoryStore struct {
	blobs map[string][]byte
	mu    sync.RWMutex

	// FailWrites makes every Write return an error, for exercising the
	// save-failure path in tests.
	FailWrites error
}

// NewMemoryStore creates an empty in-memory blob store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

// Read returns the blob stored under key.
func (s *MemoryStore) Read(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.blobs[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Write stores a copy of data under key.
func (s *MemoryStore) Write(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailWrites != nil {
		return s.FailWrites
	}
	stored := make([]byte, len(data))
	copy(stored, data)
	s.blobs[key] = stored
	return nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}
