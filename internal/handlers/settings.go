package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"lifeos/internal/store"
)

type SettingsHandler struct {
	records *store.RecordStore
	log     *zap.Logger
}

func NewSettingsHandler(records *store.RecordStore, log *zap.Logger) *SettingsHandler {
	return &SettingsHandler{records: records, log: log}
}

// GetTheme returns the stored theme, "light" when never set.
func (h *SettingsHandler) GetTheme(w http.ResponseWriter, r *http.Request) {
	theme, ok, err := h.records.LoadString(r.Context(), store.KeyTheme)
	if err != nil {
		h.log.Error("could not load theme", zap.Error(err))
		http.Error(w, "could not fetch", http.StatusInternalServerError)
		return
	}
	if !ok || (theme != "dark" && theme != "light") {
		theme = "light"
	}
	writeJSON(w, http.StatusOK, map[string]string{"theme": theme})
}

// PutTheme stores the theme; only "dark" and "light" are accepted.
func (h *SettingsHandler) PutTheme(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Theme string `json:"theme"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if req.Theme != "dark" && req.Theme != "light" {
		http.Error(w, "theme must be dark or light", http.StatusBadRequest)
		return
	}

	if err := h.records.SaveString(r.Context(), store.KeyTheme, req.Theme); err != nil {
		h.log.Error("could not save theme", zap.Error(err))
		http.Error(w, "could not save", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"theme": req.Theme})
}
