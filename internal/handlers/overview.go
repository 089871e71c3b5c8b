package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"lifeos/internal/journal"
	"lifeos/internal/planner"
	"lifeos/internal/store"
)

// OverviewHandler aggregates one month's state across all trackers into a
// single summary payload for the landing page.
type OverviewHandler struct {
	journal *journal.Service
	planner *planner.Service
	media   *store.MediaStore
	log     *zap.Logger
}

func NewOverviewHandler(j *journal.Service, p *planner.Service, media *store.MediaStore, log *zap.Logger) *OverviewHandler {
	return &OverviewHandler{journal: j, planner: p, media: media, log: log}
}

type overviewResponse struct {
	Month      string `json:"month"`
	EntryCount int    `json:"entryCount"`
	HasReview  bool   `json:"hasReview"`
	MediaCount int    `json:"mediaCount"`
	EventCount int    `json:"eventCount"`
	TasksDone  int    `json:"tasksDone"`
	TasksTotal int    `json:"tasksTotal"`
}

func (h *OverviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	month, err := monthParam(r)
	if err != nil {
		http.Error(w, "unrecognized month label", http.StatusBadRequest)
		return
	}
	ctx := r.Context()

	entries, err := h.journal.Entries(ctx, month, "")
	if err != nil {
		h.log.Error("could not load entries for overview", zap.Error(err))
		http.Error(w, "could not fetch", http.StatusInternalServerError)
		return
	}

	hasReview, err := h.journal.HasReview(ctx, month)
	if err != nil {
		h.log.Error("could not load review for overview", zap.Error(err))
		http.Error(w, "could not fetch", http.StatusInternalServerError)
		return
	}

	mediaCount, err := h.media.CountByMonth(ctx, month.Label())
	if err != nil {
		h.log.Error("could not count media for overview", zap.Error(err))
		http.Error(w, "could not fetch", http.StatusInternalServerError)
		return
	}

	events, err := h.planner.EventsForMonth(ctx, month)
	if err != nil {
		h.log.Error("could not load events for overview", zap.Error(err))
		http.Error(w, "could not fetch", http.StatusInternalServerError)
		return
	}
	eventCount := 0
	for _, list := range events {
		eventCount += len(list)
	}

	done, total, err := h.planner.TaskCounts(ctx)
	if err != nil {
		h.log.Error("could not count tasks for overview", zap.Error(err))
		http.Error(w, "could not fetch", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, overviewResponse{
		Month:      month.Label(),
		EntryCount: len(entries),
		HasReview:  hasReview,
		MediaCount: mediaCount,
		EventCount: eventCount,
		TasksDone:  done,
		TasksTotal: total,
	})
}
