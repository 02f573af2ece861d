// Package repository defines the record store interface and its
// file-backed and in-memory implementations.
package repository

import (
	"context"

	"github.com/greenbin/bunrigo/internal/domain/model"
)

// Store provides whole-document access to the persisted record set.
// There is no partial update: Load returns the full set, Save rewrites it.
type Store interface {
	// Load reads the persisted record set. A missing or unparsable
	// document yields an empty set, never an error: corrupt state is
	// empty state.
	Load(ctx context.Context) (model.RecordSet, error)

	// Save atomically replaces the persisted document with the given set.
	// Write failures are propagated as ErrSave so callers can surface a
	// retryable storage error instead of silently dropping the update.
	Save(ctx context.Context, set model.RecordSet) error
}
