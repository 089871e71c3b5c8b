package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"lifeos/internal/models"
	"lifeos/internal/store"
)

const maxUploadBytes = 64 << 20

type GalleryHandler struct {
	media *store.MediaStore
	log   *zap.Logger
	now   func() time.Time
}

func NewGalleryHandler(media *store.MediaStore, log *zap.Logger) *GalleryHandler {
	return &GalleryHandler{media: media, log: log, now: time.Now}
}

// itemURL is the display handle for a stored blob: bytes are streamed from
// the store per request, so nothing is held open between requests.
func itemURL(id int64) string {
	return fmt.Sprintf("/api/gallery/item/%d/file", id)
}

// List returns the month's gallery, newest first, blobs projected to URLs.
func (h *GalleryHandler) List(w http.ResponseWriter, r *http.Request) {
	month, err := monthParam(r)
	if err != nil {
		http.Error(w, "unrecognized month label", http.StatusBadRequest)
		return
	}

	records, err := h.media.ListByMonth(r.Context(), month.Label())
	if err != nil {
		h.log.Error("could not list media", zap.Error(err))
		http.Error(w, "could not fetch", http.StatusInternalServerError)
		return
	}

	items := make([]models.GalleryItem, 0, len(records))
	for _, rec := range records {
		items = append(items, models.GalleryItem{
			ID:      rec.ID,
			URL:     itemURL(rec.ID),
			Caption: rec.Caption,
			Kind:    rec.Kind,
		})
	}
	writeJSON(w, http.StatusOK, items)
}

// Upload stores a multipart image or video under the month. The record id is
// the upload time in unix milliseconds, which also drives newest-first order.
func (h *GalleryHandler) Upload(w http.ResponseWriter, r *http.Request) {
	month, err := monthParam(r)
	if err != nil {
		http.Error(w, "unrecognized month label", http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "invalid multipart body", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil || len(data) == 0 {
		http.Error(w, "could not read file", http.StatusBadRequest)
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	kind := "image"
	if strings.HasPrefix(mimeType, "video/") {
		kind = "video"
	}

	now := h.now().UnixMilli()
	rec := store.MediaRecord{
		ID:        now,
		Caption:   r.FormValue("caption"),
		Kind:      kind,
		Mime:      mimeType,
		Month:     month.Label(),
		File:      data,
		Timestamp: now,
	}
	if err := h.media.Put(r.Context(), rec); err != nil {
		h.log.Error("could not store media", zap.Error(err))
		http.Error(w, "could not save", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, models.GalleryItem{
		ID:      rec.ID,
		URL:     itemURL(rec.ID),
		Caption: rec.Caption,
		Kind:    rec.Kind,
	})
}

// ServeFile streams a stored blob with its original MIME type.
func (h *GalleryHandler) ServeFile(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	rec, err := h.media.Get(r.Context(), id)
	if errors.Is(err, store.ErrMediaNotFound) {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.log.Error("could not load media", zap.Error(err))
		http.Error(w, "could not fetch", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", rec.Mime)
	w.Header().Set("Content-Length", strconv.Itoa(len(rec.File)))
	w.Write(rec.File)
}

// Delete removes a stored item. Deleting an id that is already gone still
// returns 204, so a racing double-delete stays quiet.
func (h *GalleryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.media.Delete(r.Context(), id); err != nil {
		h.log.Error("could not delete media", zap.Error(err))
		http.Error(w, "could not delete", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
