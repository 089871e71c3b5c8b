package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"lifeos/internal/levelup"
)

type LevelUpHandler struct {
	svc *levelup.Service
	log *zap.Logger
}

func NewLevelUpHandler(svc *levelup.Service, log *zap.Logger) *LevelUpHandler {
	return &LevelUpHandler{svc: svc, log: log}
}

// Get returns the month's fitness and coding aggregate, defaults included.
func (h *LevelUpHandler) Get(w http.ResponseWriter, r *http.Request) {
	month, err := monthParam(r)
	if err != nil {
		http.Error(w, "unrecognized month label", http.StatusBadRequest)
		return
	}

	data, err := h.svc.Stats(r.Context(), month)
	if err != nil {
		h.log.Error("could not load levelup data", zap.Error(err))
		http.Error(w, "could not fetch", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (h *LevelUpHandler) LogWeight(w http.ResponseWriter, r *http.Request) {
	month, err := monthParam(r)
	if err != nil {
		http.Error(w, "unrecognized month label", http.StatusBadRequest)
		return
	}

	var req struct {
		Weight float64 `json:"weight"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if req.Weight <= 0 {
		http.Error(w, "weight must be positive", http.StatusBadRequest)
		return
	}

	data, err := h.svc.LogWeight(r.Context(), month, req.Weight)
	if err != nil {
		h.log.Error("could not log weight", zap.Error(err))
		http.Error(w, "could not save", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (h *LevelUpHandler) SetPR(w http.ResponseWriter, r *http.Request) {
	month, err := monthParam(r)
	if err != nil {
		http.Error(w, "unrecognized month label", http.StatusBadRequest)
		return
	}

	var req struct {
		Lift  string  `json:"lift"`
		Value float64 `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if req.Value <= 0 {
		http.Error(w, "value must be positive", http.StatusBadRequest)
		return
	}

	data, err := h.svc.SetPR(r.Context(), month, req.Lift, req.Value)
	switch {
	case errors.Is(err, levelup.ErrUnknownLift):
		http.Error(w, "unknown lift; expected bench, squat or deadlift", http.StatusBadRequest)
		return
	case err != nil:
		h.log.Error("could not set PR", zap.Error(err))
		http.Error(w, "could not save", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (h *LevelUpHandler) LogActivity(w http.ResponseWriter, r *http.Request) {
	month, err := monthParam(r)
	if err != nil {
		http.Error(w, "unrecognized month label", http.StatusBadRequest)
		return
	}

	var req struct {
		Kind   string `json:"kind"`
		Amount int    `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if req.Amount <= 0 {
		http.Error(w, "amount must be positive", http.StatusBadRequest)
		return
	}

	data, err := h.svc.LogActivity(r.Context(), month, req.Kind, req.Amount)
	switch {
	case errors.Is(err, levelup.ErrUnknownActivity):
		http.Error(w, "unknown activity; expected steps or calories", http.StatusBadRequest)
		return
	case err != nil:
		h.log.Error("could not log activity", zap.Error(err))
		http.Error(w, "could not save", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (h *LevelUpHandler) AddProblem(w http.ResponseWriter, r *http.Request) {
	month, err := monthParam(r)
	if err != nil {
		http.Error(w, "unrecognized month label", http.StatusBadRequest)
		return
	}

	var req struct {
		Link  string `json:"link"`
		Notes string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if req.Link == "" {
		http.Error(w, "problem link is required", http.StatusBadRequest)
		return
	}

	data, err := h.svc.AddProblem(r.Context(), month, req.Link, req.Notes)
	if err != nil {
		h.log.Error("could not add problem", zap.Error(err))
		http.Error(w, "could not save", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (h *LevelUpHandler) AddSkill(w http.ResponseWriter, r *http.Request) {
	month, err := monthParam(r)
	if err != nil {
		http.Error(w, "unrecognized month label", http.StatusBadRequest)
		return
	}

	var req struct {
		Skill string `json:"skill"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if req.Skill == "" {
		http.Error(w, "skill is required", http.StatusBadRequest)
		return
	}

	data, err := h.svc.AddSkill(r.Context(), month, req.Skill)
	if err != nil {
		h.log.Error("could not add skill", zap.Error(err))
		http.Error(w, "could not save", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (h *LevelUpHandler) RemoveSkill(w http.ResponseWriter, r *http.Request) {
	month, err := monthParam(r)
	if err != nil {
		http.Error(w, "unrecognized month label", http.StatusBadRequest)
		return
	}

	skill, err := url.PathUnescape(chi.URLParam(r, "skill"))
	if err != nil || skill == "" {
		http.Error(w, "skill is required", http.StatusBadRequest)
		return
	}

	data, err := h.svc.RemoveSkill(r.Context(), month, skill)
	switch {
	case errors.Is(err, levelup.ErrSkillNotFound):
		http.Error(w, "not found", http.StatusNotFound)
		return
	case err != nil:
		h.log.Error("could not remove skill", zap.Error(err))
		http.Error(w, "could not delete", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, data)
}
