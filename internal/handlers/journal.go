package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"lifeos/internal/ai"
	"lifeos/internal/journal"
	"lifeos/internal/models"
)

// collaboratorTimeout bounds every generative call; the upstream client has
// no implicit deadline of its own.
const collaboratorTimeout = 30 * time.Second

const maxAudioBytes = 25 << 20

type JournalHandler struct {
	svc          *journal.Service
	collaborator ai.Collaborator
	log          *zap.Logger
}

func NewJournalHandler(svc *journal.Service, collaborator ai.Collaborator, log *zap.Logger) *JournalHandler {
	return &JournalHandler{svc: svc, collaborator: collaborator, log: log}
}

// List returns a month's entries, oldest first. ?q= filters by title/content.
func (h *JournalHandler) List(w http.ResponseWriter, r *http.Request) {
	month, err := monthParam(r)
	if err != nil {
		http.Error(w, "unrecognized month label", http.StatusBadRequest)
		return
	}

	entries, err := h.svc.Entries(r.Context(), month, r.URL.Query().Get("q"))
	if err != nil {
		h.log.Error("could not list entries", zap.Error(err))
		http.Error(w, "could not fetch", http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []models.JournalEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// Upsert creates an entry (blank id) or updates an existing one by id.
func (h *JournalHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	month, err := monthParam(r)
	if err != nil {
		http.Error(w, "unrecognized month label", http.StatusBadRequest)
		return
	}

	var entry models.JournalEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	saved, err := h.svc.SaveEntry(r.Context(), month, entry)
	switch {
	case errors.Is(err, journal.ErrEmptyEntry):
		http.Error(w, "entry needs a title or content", http.StatusBadRequest)
		return
	case errors.Is(err, journal.ErrEntryNotFound):
		http.Error(w, "not found", http.StatusNotFound)
		return
	case err != nil:
		h.log.Error("could not save entry", zap.Error(err))
		http.Error(w, "could not save", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// GetReview returns the month's free-text review.
func (h *JournalHandler) GetReview(w http.ResponseWriter, r *http.Request) {
	month, err := monthParam(r)
	if err != nil {
		http.Error(w, "unrecognized month label", http.StatusBadRequest)
		return
	}

	review, err := h.svc.Review(r.Context(), month)
	if err != nil {
		h.log.Error("could not load review", zap.Error(err))
		http.Error(w, "could not fetch", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"review": review})
}

// PutReview overwrites the month's review. Saving an empty review is valid.
func (h *JournalHandler) PutReview(w http.ResponseWriter, r *http.Request) {
	month, err := monthParam(r)
	if err != nil {
		http.Error(w, "unrecognized month label", http.StatusBadRequest)
		return
	}

	var body struct {
		Review string `json:"review"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	if err := h.svc.SaveReview(r.Context(), month, body.Review); err != nil {
		h.log.Error("could not save review", zap.Error(err))
		http.Error(w, "could not save", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Reflect asks the collaborator for a short reflection on the given entry
// text. Failures degrade to a static fallback; the client always gets a
// reflection string.
func (h *JournalHandler) Reflect(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Content == "" {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	reflection := ai.ReflectionFallback
	if h.collaborator != nil {
		ctx, cancel := context.WithTimeout(r.Context(), collaboratorTimeout)
		defer cancel()
		if out, err := h.collaborator.Reflect(ctx, body.Content); err != nil {
			h.log.Warn("reflection failed, using fallback", zap.Error(err))
		} else {
			reflection = out
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"reflection": reflection})
}

// Transcribe turns uploaded audio into text. Unlike reflection, failures
// here are surfaced: the user is waiting on this text to appear.
func (h *JournalHandler) Transcribe(w http.ResponseWriter, r *http.Request) {
	if h.collaborator == nil {
		http.Error(w, "transcription is not configured", http.StatusServiceUnavailable)
		return
	}

	if err := r.ParseMultipartForm(maxAudioBytes); err != nil {
		http.Error(w, "invalid multipart body", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("audio")
	if err != nil {
		http.Error(w, "audio file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(io.LimitReader(file, maxAudioBytes))
	if err != nil {
		http.Error(w, "could not read audio", http.StatusBadRequest)
		return
	}
	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "audio/webm"
	}

	ctx, cancel := context.WithTimeout(r.Context(), collaboratorTimeout)
	defer cancel()
	text, err := h.collaborator.Transcribe(ctx, audio, mimeType)
	if err != nil {
		h.log.Error("transcription failed", zap.Error(err))
		http.Error(w, "failed to transcribe audio", http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"text": text})
}
