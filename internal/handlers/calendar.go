package handlers

import (
	"net/http"
	"time"

	"lifeos/internal/calendar"
)

type CalendarHandler struct {
	year int
	now  func() time.Time
}

func NewCalendarHandler(year int) *CalendarHandler {
	return &CalendarHandler{year: year, now: time.Now}
}

// Months lists the twelve month labels of the diary's year, in order.
func (h *CalendarHandler) Months(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, calendar.MonthsOfYear(h.year))
}

// Grid returns the day grid for a month. The default is the compact widget
// grid; ?variant=planner pads to the fixed planner rectangle.
func (h *CalendarHandler) Grid(w http.ResponseWriter, r *http.Request) {
	month, err := monthParam(r)
	if err != nil {
		http.Error(w, "unrecognized month label", http.StatusBadRequest)
		return
	}

	switch r.URL.Query().Get("variant") {
	case "", "mini":
		writeJSON(w, http.StatusOK, calendar.Generate(month, h.now()))
	case "planner":
		writeJSON(w, http.StatusOK, calendar.PlannerGrid(month, h.now()))
	default:
		http.Error(w, "unknown grid variant", http.StatusBadRequest)
	}
}
