package repository

import (
	"context"
	"sync"
)

// MemoryRepository is an in-memory Repository backed by a map and a mutex,
// with a monotonically incrementing int64 version per document. Used by
// tests and the simulate CLI.
type MemoryRepository[T any] struct {
	mu      sync.Mutex
	docs    map[string]T
	version map[string]int64
}

// NewMemoryRepository constructs an empty MemoryRepository.
func NewMemoryRepository[T any]() *MemoryRepository[T] {
	return &MemoryRepository[T]{
		docs:    make(map[string]T),
		version: make(map[string]int64),
	}
}

func (r *MemoryRepository[T]) Get(ctx context.Context, id string) (T, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, ok := r.docs[id]
	if !ok {
		var zero T
		return zero, 0, ErrNotFound
	}
	return doc, r.version[id], nil
}

func (r *MemoryRepository[T]) Put(ctx context.Context, id string, doc T, expectedVersion int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, exists := r.version[id]
	if expectedVersion == NewDocument {
		if exists {
			return 0, ErrAlreadyExists
		}
	} else {
		if !exists {
			return 0, ErrNotFound
		}
		if current != expectedVersion {
			return 0, ErrVersionConflict
		}
	}

	newVersion := current + 1
	r.docs[id] = doc
	r.version[id] = newVersion
	return newVersion, nil
}

func (r *MemoryRepository[T]) Delete(ctx context.Context, id string, expectedVersion int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, exists := r.version[id]
	if !exists {
		return ErrNotFound
	}
	if current != expectedVersion {
		return ErrVersionConflict
	}
	delete(r.docs, id)
	delete(r.version, id)
	return nil
}
