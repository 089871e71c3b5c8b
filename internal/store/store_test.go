package store

import (
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"lifeos/internal/db"
)

func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	conn, err := db.Open(filepath.Join(t.TempDir(), "store_test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.RunMigrations(conn); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return conn
}

func testRecordStore(t *testing.T) *RecordStore {
	t.Helper()
	return NewRecordStore(setupTestDB(t), zap.NewNop())
}
