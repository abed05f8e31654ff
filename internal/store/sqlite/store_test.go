package sqlite

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/rivethead/rivethead-api/internal/domain"
	"github.com/rivethead/rivethead-api/internal/store"
)

var memdbSeq int

// newTestStore opens a fresh in-memory SQLite database with shared cache so
// every connection in the pool sees the same data.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	memdbSeq++
	s, err := New(fmt.Sprintf("file:diarytest%d?mode=memory&cache=shared", memdbSeq))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return s
}

func TestStore_Create(t *testing.T) {
	s := newTestStore(t)

	rec, err := s.Create(context.Background(), "Metallica", "RideTheLightning", "Great")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if rec.ID == uuid.Nil {
		t.Error("Create() returned nil id")
	}
	if rec.CreatedAt.IsZero() {
		t.Error("Create() returned zero created_at")
	}
	if rec.UpdatedAt != nil {
		t.Errorf("Create() returned updated_at = %v, want nil", rec.UpdatedAt)
	}
	if rec.Band != "Metallica" || rec.Album != "RideTheLightning" || rec.Thoughts != "Great" {
		t.Errorf("Create() returned unexpected fields: %+v", rec)
	}
}

func TestStore_CreateThenList_RoundTrip(t *testing.T) {
	s := newTestStore(t)

	created, err := s.Create(context.Background(), "Metallica", "RideTheLightning", "Great")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	records, err := s.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("ListAll() returned %d records, want 1", len(records))
	}

	got := records[0]
	if got.ID != created.ID {
		t.Errorf("ID = %v, want %v", got.ID, created.ID)
	}
	if got.Band != "Metallica" || got.Album != "RideTheLightning" || got.Thoughts != "Great" {
		t.Errorf("round-trip mismatch: %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Error("round-trip lost created_at")
	}
	if got.UpdatedAt != nil {
		t.Errorf("UpdatedAt = %v, want nil for a never-updated record", got.UpdatedAt)
	}
}

func TestStore_ListAll_Empty(t *testing.T) {
	s := newTestStore(t)

	records, err := s.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if records == nil {
		t.Fatal("ListAll() returned nil, want empty slice")
	}
	if len(records) != 0 {
		t.Errorf("ListAll() returned %d records, want 0", len(records))
	}
}

func TestStore_UpdateField(t *testing.T) {
	s := newTestStore(t)

	rec, err := s.Create(context.Background(), "Voivod", "Killing", "Raw")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := s.UpdateField(context.Background(), rec.ID, store.FieldAlbum, "Dimension"); err != nil {
		t.Fatalf("UpdateField() error = %v", err)
	}

	records, err := s.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	got := records[0]

	if got.Album != "Dimension" {
		t.Errorf("Album = %q, want %q", got.Album, "Dimension")
	}
	// Exactly one field changed
	if got.Band != "Voivod" || got.Thoughts != "Raw" {
		t.Errorf("update touched other fields: %+v", got)
	}
	if got.UpdatedAt == nil {
		t.Fatal("UpdatedAt not set after update")
	}
	if got.UpdatedAt.Before(got.CreatedAt) {
		t.Errorf("UpdatedAt %v precedes CreatedAt %v", got.UpdatedAt, got.CreatedAt)
	}
}

func TestStore_UpdateField_RefreshesTimestamp(t *testing.T) {
	s := newTestStore(t)

	rec, err := s.Create(context.Background(), "Voivod", "Killing", "Raw")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := s.UpdateField(context.Background(), rec.ID, store.FieldThoughts, "Rawer"); err != nil {
		t.Fatalf("UpdateField() error = %v", err)
	}
	records, _ := s.ListAll(context.Background())
	first := *records[0].UpdatedAt

	if err := s.UpdateField(context.Background(), rec.ID, store.FieldThoughts, "Rawest"); err != nil {
		t.Fatalf("UpdateField() error = %v", err)
	}
	records, _ = s.ListAll(context.Background())
	second := *records[0].UpdatedAt

	if second.Before(first) {
		t.Errorf("second update timestamp %v precedes first %v", second, first)
	}
	if records[0].Thoughts != "Rawest" {
		t.Errorf("Thoughts = %q, want %q", records[0].Thoughts, "Rawest")
	}
}

func TestStore_UpdateField_NotFound(t *testing.T) {
	s := newTestStore(t)

	err := s.UpdateField(context.Background(), uuid.New(), store.FieldAlbum, "Ghost")
	if err == nil {
		t.Fatal("UpdateField() on missing id succeeded, want not-found error")
	}

	var apiErr *domain.APIError
	if !errors.As(err, &apiErr) || apiErr.Type != domain.ErrorTypeNotFound {
		t.Errorf("UpdateField() error = %v, want not-found APIError", err)
	}

	// No record was conjured by the failed update.
	records, err := s.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("failed update mutated storage: %d records", len(records))
	}
}

func TestStore_UpdateField_RejectsUnknownField(t *testing.T) {
	s := newTestStore(t)

	rec, err := s.Create(context.Background(), "Gojira", "Magma", "Heavy")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	err = s.UpdateField(context.Background(), rec.ID, store.Field("band"), "Tool")
	if err == nil {
		t.Fatal("UpdateField() accepted a non-updatable field")
	}
}

func TestStore_Delete(t *testing.T) {
	s := newTestStore(t)

	rec, err := s.Create(context.Background(), "Mastodon", "Leviathan", "Crushing")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := s.Delete(context.Background(), rec.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	records, err := s.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("record still listed after delete: %d records", len(records))
	}
}

func TestStore_Delete_MissingIDIsIdempotent(t *testing.T) {
	s := newTestStore(t)

	if err := s.Delete(context.Background(), uuid.New()); err != nil {
		t.Errorf("Delete() of missing id returned error = %v, want nil", err)
	}
}

func TestStore_ConcurrentCreates_UniqueIDs(t *testing.T) {
	s := newTestStore(t)

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Create(context.Background(), "Band", "Album", "Thoughts"); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Fatalf("concurrent Create() error = %v", err)
	}

	records, err := s.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if len(records) != n {
		t.Fatalf("ListAll() returned %d records, want %d", len(records), n)
	}

	seen := make(map[uuid.UUID]bool, n)
	for _, rec := range records {
		if seen[rec.ID] {
			t.Fatalf("duplicate id %v across concurrent creates", rec.ID)
		}
		seen[rec.ID] = true
	}
}
