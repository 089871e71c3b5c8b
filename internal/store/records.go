package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// Key names are frozen: they mirror the localStorage keys of the first
// release, so previously saved data is never orphaned.
const (
	KeyPlannerEvents = "planner_events"
	KeyPlannerTasks  = "planner_tasks"
	KeyTheme         = "theme"
)

// JournalEntriesKey scopes a month's entry list.
func JournalEntriesKey(month string) string { return "journal_entries_" + month }

// JournalReviewKey scopes a month's free-text review.
func JournalReviewKey(month string) string { return "journal_review_" + month }

// LevelUpKey scopes a month's fitness/coding aggregate.
func LevelUpKey(month string) string { return "levelup_data_" + month }

// RecordStore is a get/set layer over string-serialized payloads, one
// aggregate per key. Every save overwrites the prior value entirely, so
// mutators must read-modify-write the whole aggregate. Empty collections
// are saved like any other value: deleting the last item survives a reload.
type RecordStore struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewRecordStore(db *sqlx.DB, log *zap.Logger) *RecordStore {
	return &RecordStore{db: db, log: log}
}

// Load deserializes the aggregate stored under key into v. It reports false
// when the key is unset. A corrupt stored payload also loads as absent —
// logged, never an error — so one bad row cannot take a page down.
func (s *RecordStore) Load(ctx context.Context, key string, v any) (bool, error) {
	raw, ok, err := s.loadRaw(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		s.log.Warn("discarding malformed stored record",
			zap.String("key", key),
			zap.Error(err))
		return false, nil
	}
	return true, nil
}

// Save serializes v and overwrites the aggregate stored under key.
func (s *RecordStore) Save(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode record %q: %w", key, err)
	}
	return s.saveRaw(ctx, key, string(raw))
}

// LoadString reads an unencoded text value (monthly review, theme).
func (s *RecordStore) LoadString(ctx context.Context, key string) (string, bool, error) {
	return s.loadRaw(ctx, key)
}

// SaveString writes an unencoded text value.
func (s *RecordStore) SaveString(ctx context.Context, key, value string) error {
	return s.saveRaw(ctx, key, value)
}

func (s *RecordStore) loadRaw(ctx context.Context, key string) (string, bool, error) {
	var raw string
	err := s.db.GetContext(ctx, &raw, `SELECT value FROM records WHERE key = ?`, key)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("load record %q: %w", key, err)
	}
	return raw, true, nil
}

func (s *RecordStore) saveRaw(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO records (key, value, updated_at)
        VALUES (?, ?, unixepoch())
        ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = unixepoch()`,
		key, value)
	if err != nil {
		return fmt.Errorf("save record %q: %w", key, err)
	}
	return nil
}
