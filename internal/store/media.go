// Package store implements the two persistence primitives every page sits
// on: a binary media store indexed by month and a string-keyed record store
// for JSON aggregates.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// ErrMediaNotFound is returned by Get for an unknown media id.
var ErrMediaNotFound = errors.New("media not found")

// MediaRecord is one stored photo or video. ID is the upload time in unix
// milliseconds, which doubles as the sort key; Month is the owning month
// label ("January 2026").
type MediaRecord struct {
	ID        int64  `db:"id" json:"id"`
	Caption   string `db:"caption" json:"caption"`
	Kind      string `db:"kind" json:"type"` // image | video
	Mime      string `db:"mime" json:"mime"`
	Month     string `db:"month" json:"month"`
	File      []byte `db:"file" json:"-"`
	Timestamp int64  `db:"timestamp" json:"timestamp"`
}

type MediaStore struct {
	db *sqlx.DB
}

func NewMediaStore(db *sqlx.DB) *MediaStore {
	return &MediaStore{db: db}
}

// Put upserts a record by id. SQLite's single-writer lock plus the busy
// timeout serializes concurrent writes to the same id.
func (s *MediaStore) Put(ctx context.Context, rec MediaRecord) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO media (id, caption, kind, mime, month, file, timestamp)
        VALUES (?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET
            caption = excluded.caption,
            kind = excluded.kind,
            mime = excluded.mime,
            month = excluded.month,
            file = excluded.file,
            timestamp = excluded.timestamp`,
		rec.ID, rec.Caption, rec.Kind, rec.Mime, rec.Month, rec.File, rec.Timestamp)
	if err != nil {
		return fmt.Errorf("store media %d: %w", rec.ID, err)
	}
	return nil
}

// ListByMonth returns the month's records newest first. Blobs are left out
// of the projection; callers fetch bytes per id via Get when serving them.
func (s *MediaStore) ListByMonth(ctx context.Context, month string) ([]MediaRecord, error) {
	var out []MediaRecord
	err := s.db.SelectContext(ctx, &out, `SELECT id, caption, kind, mime, month, timestamp
        FROM media WHERE month = ? ORDER BY timestamp DESC`, month)
	if err != nil {
		return nil, fmt.Errorf("list media for %q: %w", month, err)
	}
	return out, nil
}

// Get fetches a single record including its blob.
func (s *MediaStore) Get(ctx context.Context, id int64) (MediaRecord, error) {
	var rec MediaRecord
	err := s.db.GetContext(ctx, &rec, `SELECT id, caption, kind, mime, month, file, timestamp
        FROM media WHERE id = ?`, id)
	if err == sql.ErrNoRows {
		return MediaRecord{}, ErrMediaNotFound
	}
	if err != nil {
		return MediaRecord{}, fmt.Errorf("get media %d: %w", id, err)
	}
	return rec, nil
}

// Delete removes a record. Deleting an id that is already gone is not an
// error, so racing double-deletes stay quiet.
func (s *MediaStore) Delete(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM media WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete media %d: %w", id, err)
	}
	return nil
}

// CountByMonth reports how many records a month owns, for the overview.
func (s *MediaStore) CountByMonth(ctx context.Context, month string) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM media WHERE month = ?`, month); err != nil {
		return 0, fmt.Errorf("count media for %q: %w", month, err)
	}
	return n, nil
}
