package store

import (
	"bytes"
	"context"
	"errors"
	"testing"
)

func TestMediaRoundTrip(t *testing.T) {
	s := NewMediaStore(setupTestDB(t))
	ctx := context.Background()

	rec := MediaRecord{
		ID:        1767254400000,
		Caption:   "first snow",
		Kind:      "image",
		Mime:      "image/jpeg",
		Month:     "January 2026",
		File:      []byte{0xff, 0xd8, 0xff, 0xe0},
		Timestamp: 1767254400000,
	}
	if err := s.Put(ctx, rec); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	items, err := s.ListByMonth(ctx, "January 2026")
	if err != nil {
		t.Fatalf("ListByMonth failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	got := items[0]
	if got.ID != rec.ID || got.Caption != rec.Caption || got.Kind != rec.Kind || got.Mime != rec.Mime {
		t.Errorf("listed record does not match stored record: %+v", got)
	}
	if got.File != nil {
		t.Errorf("listing projection must not materialize blobs")
	}

	full, err := s.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !bytes.Equal(full.File, rec.File) {
		t.Errorf("blob round-trip mismatch: got %v", full.File)
	}

	// A different month must not see the record.
	other, err := s.ListByMonth(ctx, "February 2026")
	if err != nil {
		t.Fatalf("ListByMonth failed: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("expected February to be empty, got %d items", len(other))
	}
}

func TestMediaPutUpserts(t *testing.T) {
	s := NewMediaStore(setupTestDB(t))
	ctx := context.Background()

	rec := MediaRecord{ID: 7, Caption: "before", Kind: "image", Mime: "image/png", Month: "March 2026", File: []byte{1}, Timestamp: 7}
	if err := s.Put(ctx, rec); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	rec.Caption = "after"
	rec.File = []byte{2}
	if err := s.Put(ctx, rec); err != nil {
		t.Fatalf("second Put failed: %v", err)
	}

	got, err := s.Get(ctx, 7)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Caption != "after" || !bytes.Equal(got.File, []byte{2}) {
		t.Errorf("upsert did not replace record: %+v", got)
	}

	n, err := s.CountByMonth(ctx, "March 2026")
	if err != nil {
		t.Fatalf("CountByMonth failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected a single row after upsert, got %d", n)
	}
}

func TestMediaListNewestFirst(t *testing.T) {
	s := NewMediaStore(setupTestDB(t))
	ctx := context.Background()

	for _, ts := range []int64{100, 300, 200} {
		rec := MediaRecord{ID: ts, Kind: "video", Mime: "video/mp4", Month: "June 2026", File: []byte{0}, Timestamp: ts}
		if err := s.Put(ctx, rec); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
	}

	items, err := s.ListByMonth(ctx, "June 2026")
	if err != nil {
		t.Fatalf("ListByMonth failed: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	for i, want := range []int64{300, 200, 100} {
		if items[i].Timestamp != want {
			t.Errorf("position %d: expected timestamp %d, got %d", i, want, items[i].Timestamp)
		}
	}
}

func TestMediaDeleteIdempotent(t *testing.T) {
	s := NewMediaStore(setupTestDB(t))
	ctx := context.Background()

	rec := MediaRecord{ID: 42, Kind: "image", Mime: "image/png", Month: "July 2026", File: []byte{0}, Timestamp: 42}
	if err := s.Put(ctx, rec); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	if err := s.Delete(ctx, 42); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := s.Get(ctx, 42); !errors.Is(err, ErrMediaNotFound) {
		t.Errorf("expected ErrMediaNotFound after delete, got %v", err)
	}

	// Second delete of the same id, and a delete of an id that never
	// existed, both succeed quietly.
	if err := s.Delete(ctx, 42); err != nil {
		t.Errorf("repeat Delete failed: %v", err)
	}
	if err := s.Delete(ctx, 999999); err != nil {
		t.Errorf("Delete of unknown id failed: %v", err)
	}
}
