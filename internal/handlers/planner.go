package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"lifeos/internal/calendar"
	"lifeos/internal/models"
	"lifeos/internal/planner"
)

type PlannerHandler struct {
	svc *planner.Service
	log *zap.Logger
}

func NewPlannerHandler(svc *planner.Service, log *zap.Logger) *PlannerHandler {
	return &PlannerHandler{svc: svc, log: log}
}

// Events returns the date-keyed event map, optionally filtered to one month
// via ?month=January+2026.
func (h *PlannerHandler) Events(w http.ResponseWriter, r *http.Request) {
	var (
		events map[string][]models.PlannerEvent
		err    error
	)
	if label := r.URL.Query().Get("month"); label != "" {
		month, perr := calendar.ParseMonthLabel(label)
		if perr != nil {
			http.Error(w, "unrecognized month label", http.StatusBadRequest)
			return
		}
		events, err = h.svc.EventsForMonth(r.Context(), month)
	} else {
		events, err = h.svc.Events(r.Context())
	}
	if err != nil {
		h.log.Error("could not list events", zap.Error(err))
		http.Error(w, "could not fetch", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

// EventsOn returns one day's ordered events.
func (h *PlannerHandler) EventsOn(w http.ResponseWriter, r *http.Request) {
	events, err := h.svc.EventsOn(r.Context(), chi.URLParam(r, "date"))
	if errors.Is(err, planner.ErrBadDate) {
		http.Error(w, "invalid date; expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	if err != nil {
		h.log.Error("could not list events", zap.Error(err))
		http.Error(w, "could not fetch", http.StatusInternalServerError)
		return
	}
	if events == nil {
		events = []models.PlannerEvent{}
	}
	writeJSON(w, http.StatusOK, events)
}

type eventRequest struct {
	Date  string `json:"date"`
	Title string `json:"title"`
	Time  string `json:"time"`
	Color string `json:"color"`
}

func (h *PlannerHandler) AddEvent(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	event, err := h.svc.AddEvent(r.Context(), req.Date, req.Title, req.Time, req.Color)
	switch {
	case errors.Is(err, planner.ErrBadDate):
		http.Error(w, "invalid date; expected YYYY-MM-DD", http.StatusBadRequest)
		return
	case errors.Is(err, planner.ErrTitleRequired):
		http.Error(w, "event title is required", http.StatusBadRequest)
		return
	case err != nil:
		h.log.Error("could not save event", zap.Error(err))
		http.Error(w, "could not save", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, event)
}

func (h *PlannerHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	event, err := h.svc.UpdateEvent(r.Context(), chi.URLParam(r, "id"), req.Title, req.Time, req.Color)
	if errors.Is(err, planner.ErrEventNotFound) {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.log.Error("could not update event", zap.Error(err))
		http.Error(w, "could not save", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

func (h *PlannerHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	err := h.svc.DeleteEvent(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, planner.ErrEventNotFound) {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.log.Error("could not delete event", zap.Error(err))
		http.Error(w, "could not delete", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Tasks returns the global to-do list, newest first.
func (h *PlannerHandler) Tasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.svc.Tasks(r.Context())
	if err != nil {
		h.log.Error("could not list tasks", zap.Error(err))
		http.Error(w, "could not fetch", http.StatusInternalServerError)
		return
	}
	if tasks == nil {
		tasks = []models.ToDoItem{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *PlannerHandler) AddTask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	task, err := h.svc.AddTask(r.Context(), req.Text)
	switch {
	case errors.Is(err, planner.ErrTextRequired):
		http.Error(w, "task text is required", http.StatusBadRequest)
		return
	case err != nil:
		h.log.Error("could not save task", zap.Error(err))
		http.Error(w, "could not save", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (h *PlannerHandler) ToggleTask(w http.ResponseWriter, r *http.Request) {
	task, err := h.svc.ToggleTask(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, planner.ErrTaskNotFound) {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.log.Error("could not toggle task", zap.Error(err))
		http.Error(w, "could not save", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *PlannerHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	err := h.svc.DeleteTask(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, planner.ErrTaskNotFound) {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.log.Error("could not delete task", zap.Error(err))
		http.Error(w, "could not delete", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
