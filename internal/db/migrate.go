package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const (
	// Component name under which the datastore schema is versioned.
	Component = "lifeosdb"
	// TargetSchemaVersion is the highest schema version this build supports.
	TargetSchemaVersion = 1
)

const schemaV1 = `
CREATE TABLE IF NOT EXISTS schema_versions (
    component TEXT PRIMARY KEY,
    version INTEGER NOT NULL,
    created_at INTEGER NOT NULL DEFAULT (unixepoch())
);

-- Binary media, one row per uploaded photo or clip. The month index backs
-- the gallery's only query.
CREATE TABLE IF NOT EXISTS media (
    id INTEGER PRIMARY KEY,
    caption TEXT NOT NULL DEFAULT '',
    kind TEXT NOT NULL,
    mime TEXT NOT NULL,
    month TEXT NOT NULL,
    file BLOB NOT NULL,
    timestamp INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_media_month ON media(month);

-- String-keyed JSON/text payloads: journal entries, planner state, trackers,
-- theme. One aggregate per key, overwritten whole on every save.
CREATE TABLE IF NOT EXISTS records (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at INTEGER NOT NULL DEFAULT (unixepoch())
);
`

// Open opens the SQLite datastore with WAL journaling and a busy timeout so
// overlapping writes queue instead of failing, then verifies the connection.
func Open(path string) (*sqlx.DB, error) {
	dsn := path + "?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000"
	conn, err := sqlx.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open datastore %s: %w", path, err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping datastore %s: %w", path, err)
	}
	return conn, nil
}

func schemaVersion(db *sqlx.DB) (int, error) {
	var version int
	err := db.Get(&version, `SELECT version FROM schema_versions WHERE component = ?`, Component)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		// A fresh file has no schema_versions table at all.
		return 0, nil
	}
	return version, nil
}

// RunMigrations brings the datastore schema up to TargetSchemaVersion.
// Opening an already-migrated store is a no-op; a store written by a newer
// build is refused rather than risk clobbering data it does not understand.
func RunMigrations(db *sqlx.DB) error {
	current, err := schemaVersion(db)
	if err != nil {
		return err
	}
	if current > TargetSchemaVersion {
		return fmt.Errorf("datastore schema version %d is newer than supported version %d", current, TargetSchemaVersion)
	}
	if current == TargetSchemaVersion {
		return nil
	}

	ctx := context.Background()
	if _, err := db.ExecContext(ctx, schemaV1); err != nil {
		return fmt.Errorf("apply schema v1: %w", err)
	}
	_, err = db.ExecContext(ctx, `INSERT INTO schema_versions (component, version) VALUES (?, ?)
        ON CONFLICT(component) DO UPDATE SET version = excluded.version, created_at = unixepoch()`,
		Component, TargetSchemaVersion)
	if err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	return nil
}
