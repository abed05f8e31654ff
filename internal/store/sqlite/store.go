// Package sqlite provides the SQLite-backed diary record store.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/rivethead/rivethead-api/internal/domain"
	"github.com/rivethead/rivethead-api/internal/store"
)

// Store is a SQLite implementation of store.Store.
type Store struct {
	db *sql.DB
}

var _ store.Store = (*Store)(nil)

// New opens the database at dbPath and initializes the schema.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows a single writer; serializing the pool avoids
	// SQLITE_BUSY under concurrent requests.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL; PRAGMA synchronous=NORMAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	s := &Store{db: db}

	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return s, nil
}

func (s *Store) initSchema() error {
	stmt := `CREATE TABLE IF NOT EXISTS diary (
		id TEXT PRIMARY KEY,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP,
		band TEXT NOT NULL,
		album TEXT NOT NULL,
		thoughts TEXT NOT NULL
	)`

	if _, err := s.db.Exec(stmt); err != nil {
		return fmt.Errorf("failed to execute schema statement: %w", err)
	}

	return nil
}

// Create inserts a new diary record. The id and created_at are generated
// here; updated_at stays NULL until the first update.
func (s *Store) Create(ctx context.Context, band, album, thoughts string) (*domain.DiaryRecord, error) {
	rec := &domain.DiaryRecord{
		ID:        uuid.New(),
		CreatedAt: time.Now().UTC(),
		Band:      band,
		Album:     album,
		Thoughts:  thoughts,
	}

	query := `INSERT INTO diary (id, created_at, updated_at, band, album, thoughts)
	          VALUES (?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		rec.ID.String(), rec.CreatedAt, nil, rec.Band, rec.Album, rec.Thoughts)
	if err != nil {
		return nil, fmt.Errorf("failed to insert diary record: %w", err)
	}

	return rec, nil
}

// ListAll returns every diary record. No sort order is guaranteed.
func (s *Store) ListAll(ctx context.Context) ([]domain.DiaryRecord, error) {
	query := `SELECT id, created_at, updated_at, band, album, thoughts FROM diary`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query diary records: %w", err)
	}
	defer rows.Close()

	records := []domain.DiaryRecord{}
	for rows.Next() {
		var (
			rec       domain.DiaryRecord
			rawID     string
			updatedAt sql.NullTime
		)
		if err := rows.Scan(&rawID, &rec.CreatedAt, &updatedAt, &rec.Band, &rec.Album, &rec.Thoughts); err != nil {
			return nil, fmt.Errorf("failed to scan diary record: %w", err)
		}
		rec.ID, err = uuid.Parse(rawID)
		if err != nil {
			return nil, fmt.Errorf("failed to parse stored record id: %w", err)
		}
		if updatedAt.Valid {
			t := updatedAt.Time
			rec.UpdatedAt = &t
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// UpdateField overwrites the named field and stamps updated_at. A missing
// record surfaces as a not-found error; the storage layer reports it as
// zero rows affected.
func (s *Store) UpdateField(ctx context.Context, id uuid.UUID, field store.Field, value string) error {
	var query string
	switch field {
	case store.FieldAlbum:
		query = `UPDATE diary SET updated_at = ?, album = ? WHERE id = ?`
	case store.FieldThoughts:
		query = `UPDATE diary SET updated_at = ?, thoughts = ? WHERE id = ?`
	default:
		return domain.ErrValidation(string(field), "field is not updatable")
	}

	res, err := s.db.ExecContext(ctx, query, time.Now().UTC(), value, id.String())
	if err != nil {
		return fmt.Errorf("failed to update diary record: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound(fmt.Sprintf("diary record %s not found", id))
	}

	return nil
}

// Delete removes the record with the id. Deleting a missing id is a no-op,
// matching the idempotent delete contract.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM diary WHERE id = ?`, id.String()); err != nil {
		return fmt.Errorf("failed to delete diary record: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
