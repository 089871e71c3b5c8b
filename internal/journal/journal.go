// Package journal owns the month-scoped entry lists and monthly reviews.
// Entries live as one JSON aggregate per month in the record store; every
// mutation rewrites the whole list.
package journal

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"lifeos/internal/calendar"
	"lifeos/internal/crypto"
	"lifeos/internal/models"
	"lifeos/internal/store"

	"github.com/google/uuid"
)

// ErrEmptyEntry rejects an entry with neither title nor content.
var ErrEmptyEntry = errors.New("entry needs a title or content")

// ErrEntryNotFound is returned when updating an id the month does not hold.
var ErrEntryNotFound = errors.New("entry not found")

// Service reads and writes journal state. cipher is optional; when present,
// entry content, reflections and reviews are encrypted at rest.
type Service struct {
	records *store.RecordStore
	cipher  *crypto.Cipher
	now     func() time.Time
}

func NewService(records *store.RecordStore, cipher *crypto.Cipher) *Service {
	return &Service{records: records, cipher: cipher, now: time.Now}
}

// Entries returns the month's entries sorted by creation time ascending.
// A non-empty query filters case-insensitively over title and content.
func (s *Service) Entries(ctx context.Context, month calendar.MonthRef, query string) ([]models.JournalEntry, error) {
	entries, err := s.load(ctx, month)
	if err != nil {
		return nil, err
	}

	if query != "" {
		q := strings.ToLower(query)
		filtered := entries[:0]
		for _, e := range entries {
			if strings.Contains(strings.ToLower(e.Title), q) || strings.Contains(strings.ToLower(e.Content), q) {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Timestamp < entries[j].Timestamp })
	return entries, nil
}

// SaveEntry upserts one entry. A blank id creates: the id is minted, the
// timestamp set to now and the date label to today's ordinal day. A blank
// title becomes "Untitled". The full list is re-saved either way.
func (s *Service) SaveEntry(ctx context.Context, month calendar.MonthRef, entry models.JournalEntry) (models.JournalEntry, error) {
	if strings.TrimSpace(entry.Title) == "" && strings.TrimSpace(entry.Content) == "" {
		return models.JournalEntry{}, ErrEmptyEntry
	}

	entries, err := s.load(ctx, month)
	if err != nil {
		return models.JournalEntry{}, err
	}

	if entry.ID == "" {
		now := s.now()
		entry.ID = uuid.NewString()
		entry.Timestamp = now.UnixMilli()
		if entry.Date == "" {
			entry.Date = calendar.Ordinal(now.Day())
		}
		if entry.Title == "" {
			entry.Title = "Untitled"
		}
		entries = append(entries, entry)
	} else {
		found := false
		for i := range entries {
			if entries[i].ID == entry.ID {
				// Creation time is immutable; everything else updates in place.
				entry.Timestamp = entries[i].Timestamp
				entries[i] = entry
				found = true
				break
			}
		}
		if !found {
			return models.JournalEntry{}, ErrEntryNotFound
		}
	}

	if err := s.save(ctx, month, entries); err != nil {
		return models.JournalEntry{}, err
	}
	return entry, nil
}

// Review returns the month's free-text review, empty when unset.
func (s *Service) Review(ctx context.Context, month calendar.MonthRef) (string, error) {
	raw, ok, err := s.records.LoadString(ctx, store.JournalReviewKey(month.Label()))
	if err != nil || !ok {
		return "", err
	}
	return s.decrypt(raw)
}

// SaveReview overwrites the month's review.
func (s *Service) SaveReview(ctx context.Context, month calendar.MonthRef, review string) error {
	enc, err := s.encrypt(review)
	if err != nil {
		return err
	}
	return s.records.SaveString(ctx, store.JournalReviewKey(month.Label()), enc)
}

// HasReview reports whether a non-empty review exists, for the overview.
func (s *Service) HasReview(ctx context.Context, month calendar.MonthRef) (bool, error) {
	review, err := s.Review(ctx, month)
	return review != "", err
}

func (s *Service) load(ctx context.Context, month calendar.MonthRef) ([]models.JournalEntry, error) {
	var entries []models.JournalEntry
	if _, err := s.records.Load(ctx, store.JournalEntriesKey(month.Label()), &entries); err != nil {
		return nil, err
	}
	for i := range entries {
		content, err := s.decrypt(entries[i].Content)
		if err != nil {
			return nil, fmt.Errorf("decrypt entry %s: %w", entries[i].ID, err)
		}
		reflection, err := s.decrypt(entries[i].AIReflection)
		if err != nil {
			return nil, fmt.Errorf("decrypt entry %s: %w", entries[i].ID, err)
		}
		entries[i].Content = content
		entries[i].AIReflection = reflection
	}
	return entries, nil
}

func (s *Service) save(ctx context.Context, month calendar.MonthRef, entries []models.JournalEntry) error {
	if entries == nil {
		entries = []models.JournalEntry{}
	}
	if s.cipher != nil {
		stored := make([]models.JournalEntry, len(entries))
		copy(stored, entries)
		for i := range stored {
			content, err := s.encrypt(stored[i].Content)
			if err != nil {
				return err
			}
			reflection, err := s.encrypt(stored[i].AIReflection)
			if err != nil {
				return err
			}
			stored[i].Content = content
			stored[i].AIReflection = reflection
		}
		entries = stored
	}
	return s.records.Save(ctx, store.JournalEntriesKey(month.Label()), entries)
}

func (s *Service) encrypt(text string) (string, error) {
	if s.cipher == nil {
		return text, nil
	}
	return s.cipher.Encrypt(text)
}

func (s *Service) decrypt(text string) (string, error) {
	if s.cipher == nil {
		return text, nil
	}
	return s.cipher.Decrypt(text)
}
