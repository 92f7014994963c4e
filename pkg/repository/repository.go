// Package repository implements the abstract persistence contract (C7):
// three resources (games, lobbies, users), each a single document keyed by
// its id, with optimistic concurrency via an opaque version token.
package repository

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("repository: not found")

// ErrVersionConflict is returned when Put/Delete's expectedVersion does not
// match the stored version.
var ErrVersionConflict = errors.New("repository: version conflict")

// ErrAlreadyExists is returned when Put is called with expectedVersion ==
// NewDocument (meaning "must not exist") against an existing document.
var ErrAlreadyExists = errors.New("repository: already exists")

// NewDocument is the sentinel expectedVersion meaning "this id must not
// already exist" (spec.md §4.7: "expectedVersion = ⊥ means must not exist").
const NewDocument int64 = 0

// Repository is the abstract document store spec.md §4.7 describes,
// parameterized so the same contract serves games, lobbies, and users.
type Repository[T any] interface {
	// Get loads the document stored at id along with its current version.
	// Returns ErrNotFound if no such document exists.
	Get(ctx context.Context, id string) (doc T, version int64, err error)

	// Put writes doc at id, succeeding only if the stored version equals
	// expectedVersion (or the document doesn't yet exist and
	// expectedVersion == NewDocument). Returns the new version on success.
	Put(ctx context.Context, id string, doc T, expectedVersion int64) (newVersion int64, err error)

	// Delete removes the document at id, succeeding only if the stored
	// version equals expectedVersion.
	Delete(ctx context.Context, id string, expectedVersion int64) error
}
