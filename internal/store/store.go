// Package store defines the persistence contract for diary records.
package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/rivethead/rivethead-api/internal/domain"
)

// Field names a diary record column that may be targeted by a partial
// update. Only album and thoughts are updatable; id, band, and the
// timestamps are not.
type Field string

const (
	FieldAlbum    Field = "album"
	FieldThoughts Field = "thoughts"
)

// Store is the persistence contract for diary records. The store is the
// sole owner of record identity and timestamps.
type Store interface {
	// Create persists a new record with a fresh id, created_at set to now
	// (UTC), and updated_at unset, returning the full record.
	Create(ctx context.Context, band, album, thoughts string) (*domain.DiaryRecord, error)

	// ListAll returns every record, order unspecified. Empty storage yields
	// an empty slice, not an error.
	ListAll(ctx context.Context) ([]domain.DiaryRecord, error)

	// UpdateField overwrites exactly the named field and refreshes
	// updated_at. Returns a not-found error when no record has the id;
	// zero rows affected is never a silent success.
	UpdateField(ctx context.Context, id uuid.UUID, field Field, value string) error

	// Delete removes the record with the id. Deleting a missing id is not
	// an error.
	Delete(ctx context.Context, id uuid.UUID) error

	Close() error
}
