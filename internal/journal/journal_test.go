package journal

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"lifeos/internal/calendar"
	"lifeos/internal/crypto"
	"lifeos/internal/db"
	"lifeos/internal/models"
	"lifeos/internal/store"
)

var (
	january  = calendar.MonthRef{Year: 2026, Month: time.January}
	february = calendar.MonthRef{Year: 2026, Month: time.February}
)

func newTestService(t *testing.T, cipher *crypto.Cipher) (*Service, *store.RecordStore) {
	t.Helper()

	conn, err := db.Open(filepath.Join(t.TempDir(), "journal_test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	if err := db.RunMigrations(conn); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	records := store.NewRecordStore(conn, zap.NewNop())
	return NewService(records, cipher), records
}

func TestSaveAndListEntries(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	saved, err := svc.SaveEntry(ctx, january, models.JournalEntry{Title: "Morning", Content: "Slept well"})
	if err != nil {
		t.Fatalf("SaveEntry failed: %v", err)
	}
	if saved.ID == "" || saved.Timestamp == 0 || saved.Date == "" {
		t.Errorf("expected id, timestamp and date to be minted, got %+v", saved)
	}

	entries, err := svc.Entries(ctx, january, "")
	if err != nil {
		t.Fatalf("Entries failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Title != "Morning" || entries[0].Content != "Slept well" {
		t.Fatalf("unexpected january entries: %+v", entries)
	}

	other, err := svc.Entries(ctx, february, "")
	if err != nil {
		t.Fatalf("Entries failed: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("expected february to be empty, got %+v", other)
	}
}

func TestEntriesSortedAscending(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	base := time.Date(2026, time.January, 5, 8, 0, 0, 0, time.UTC)
	for i, title := range []string{"first", "second", "third"} {
		at := base.Add(time.Duration(i) * time.Hour)
		svc.now = func() time.Time { return at }
		if _, err := svc.SaveEntry(ctx, january, models.JournalEntry{Title: title, Content: "x"}); err != nil {
			t.Fatalf("SaveEntry failed: %v", err)
		}
	}

	entries, err := svc.Entries(ctx, january, "")
	if err != nil {
		t.Fatalf("Entries failed: %v", err)
	}
	for i, want := range []string{"first", "second", "third"} {
		if entries[i].Title != want {
			t.Errorf("position %d: expected %q, got %q", i, want, entries[i].Title)
		}
	}
}

func TestUpdateEntryInPlace(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	saved, err := svc.SaveEntry(ctx, january, models.JournalEntry{Title: "Draft", Content: "v1"})
	if err != nil {
		t.Fatalf("SaveEntry failed: %v", err)
	}

	saved.Content = "v2"
	saved.AIReflection = "Cherish these quiet mornings."
	updated, err := svc.SaveEntry(ctx, january, saved)
	if err != nil {
		t.Fatalf("update SaveEntry failed: %v", err)
	}
	if updated.Timestamp != saved.Timestamp {
		t.Errorf("creation timestamp must be immutable")
	}

	entries, _ := svc.Entries(ctx, january, "")
	if len(entries) != 1 {
		t.Fatalf("update must not duplicate, got %d entries", len(entries))
	}
	if entries[0].Content != "v2" || entries[0].AIReflection == "" {
		t.Errorf("update not applied: %+v", entries[0])
	}

	// Updating an unknown id is an explicit error, not a silent create.
	_, err = svc.SaveEntry(ctx, january, models.JournalEntry{ID: "missing", Title: "x", Content: "y"})
	if err != ErrEntryNotFound {
		t.Errorf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestSaveEntryRejectsBlank(t *testing.T) {
	svc, _ := newTestService(t, nil)

	_, err := svc.SaveEntry(context.Background(), january, models.JournalEntry{Title: "  ", Content: "\n"})
	if err != ErrEmptyEntry {
		t.Errorf("expected ErrEmptyEntry, got %v", err)
	}
}

func TestEntrySearch(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	svc.SaveEntry(ctx, january, models.JournalEntry{Title: "Morning Reflections", Content: "sun on the window"})
	svc.SaveEntry(ctx, january, models.JournalEntry{Title: "Project Kickoff", Content: "new design system"})

	hits, err := svc.Entries(ctx, january, "DESIGN")
	if err != nil {
		t.Fatalf("Entries failed: %v", err)
	}
	if len(hits) != 1 || hits[0].Title != "Project Kickoff" {
		t.Errorf("unexpected search hits: %+v", hits)
	}
}

func TestReviewRoundTrip(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	review, err := svc.Review(ctx, january)
	if err != nil || review != "" {
		t.Fatalf("expected empty review initially, got %q, %v", review, err)
	}

	if err := svc.SaveReview(ctx, january, "A slow, good month."); err != nil {
		t.Fatalf("SaveReview failed: %v", err)
	}
	review, err = svc.Review(ctx, january)
	if err != nil || review != "A slow, good month." {
		t.Fatalf("review round trip failed: %q, %v", review, err)
	}

	has, err := svc.HasReview(ctx, january)
	if err != nil || !has {
		t.Errorf("HasReview: got %v, %v", has, err)
	}
}

func TestEncryptionAtRest(t *testing.T) {
	cipher, err := crypto.NewCipher(bytes.Repeat([]byte{9}, 32))
	if err != nil {
		t.Fatalf("NewCipher failed: %v", err)
	}
	svc, records := newTestService(t, cipher)
	ctx := context.Background()

	if _, err := svc.SaveEntry(ctx, january, models.JournalEntry{Title: "Private", Content: "my secret content"}); err != nil {
		t.Fatalf("SaveEntry failed: %v", err)
	}
	if err := svc.SaveReview(ctx, january, "secret review"); err != nil {
		t.Fatalf("SaveReview failed: %v", err)
	}

	// The stored payloads must not contain the plaintext.
	raw, ok, err := records.LoadString(ctx, store.JournalEntriesKey(january.Label()))
	if err != nil || !ok {
		t.Fatalf("stored entries missing: ok=%v err=%v", ok, err)
	}
	if bytes.Contains([]byte(raw), []byte("my secret content")) {
		t.Error("entry content stored in plaintext")
	}
	raw, _, _ = records.LoadString(ctx, store.JournalReviewKey(january.Label()))
	if raw == "secret review" {
		t.Error("review stored in plaintext")
	}

	// But reads come back decrypted.
	entries, err := svc.Entries(ctx, january, "")
	if err != nil || len(entries) != 1 || entries[0].Content != "my secret content" {
		t.Errorf("decryption on load failed: %+v, %v", entries, err)
	}
	review, err := svc.Review(ctx, january)
	if err != nil || review != "secret review" {
		t.Errorf("review decryption failed: %q, %v", review, err)
	}
}
