// Package handlers implements the JSON HTTP surface. Handlers stay thin:
// decode, validate, call the owning service, encode. Month labels are parsed
// here and nowhere else.
package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"lifeos/internal/calendar"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// monthParam resolves the {month} URL parameter ("January 2026", possibly
// still percent-escaped) into a structured month reference.
func monthParam(r *http.Request) (calendar.MonthRef, error) {
	raw := chi.URLParam(r, "month")
	if unescaped, err := url.PathUnescape(raw); err == nil {
		raw = unescaped
	}
	return calendar.ParseMonthLabel(raw)
}
