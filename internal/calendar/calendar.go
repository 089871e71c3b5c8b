// Package calendar holds the date math behind every month view: parsing the
// "January 2026" labels that arrive on the URL, generating the padded day
// grids, and formatting ordinal day labels.
package calendar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrBadMonthLabel is returned when a free-text month label cannot be parsed.
// Labels are parsed exactly once, at the HTTP boundary; everything below it
// works with MonthRef.
var ErrBadMonthLabel = errors.New("unrecognized month label")

// MonthRef is the canonical structured month value.
type MonthRef struct {
	Year  int
	Month time.Month
}

var monthsByName = func() map[string]time.Month {
	m := make(map[string]time.Month, 12)
	for mo := time.January; mo <= time.December; mo++ {
		m[strings.ToLower(mo.String())] = mo
	}
	return m
}()

// ParseMonthLabel parses a "<MonthName> <Year>" label such as "January 2026".
// Anything else, including out-of-range years, fails with ErrBadMonthLabel.
func ParseMonthLabel(label string) (MonthRef, error) {
	name, yearStr, ok := strings.Cut(strings.TrimSpace(label), " ")
	if !ok {
		return MonthRef{}, fmt.Errorf("%w: %q", ErrBadMonthLabel, label)
	}
	month, ok := monthsByName[strings.ToLower(name)]
	if !ok {
		return MonthRef{}, fmt.Errorf("%w: %q", ErrBadMonthLabel, label)
	}
	year, err := strconv.Atoi(strings.TrimSpace(yearStr))
	if err != nil || year < 1 || year > 9999 {
		return MonthRef{}, fmt.Errorf("%w: %q", ErrBadMonthLabel, label)
	}
	return MonthRef{Year: year, Month: month}, nil
}

// Label renders the display form, e.g. "January 2026". Persisted scope keys
// are derived from this string, so its format must not change.
func (r MonthRef) Label() string {
	return fmt.Sprintf("%s %d", r.Month.String(), r.Year)
}

// DaysIn returns the number of days in the month, leap years included.
// Day 0 of the following month normalizes to the last day of this one.
func DaysIn(r MonthRef) int {
	return time.Date(r.Year, r.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// StartWeekday returns the weekday of day 1, 0=Sunday .. 6=Saturday.
func StartWeekday(r MonthRef) int {
	return int(time.Date(r.Year, r.Month, 1, 0, 0, 0, 0, time.UTC).Weekday())
}

// Grid is one rendered month. Cells holds StartWeekday leading zeros (empty
// padding) followed by the day numbers 1..DaysInMonth; the planner variant
// also pads the tail to a full rectangle.
type Grid struct {
	MonthName      string `json:"monthName"`
	Year           int    `json:"year"`
	Cells          []int  `json:"cells"`
	IsCurrentMonth bool   `json:"isCurrentMonth"`
	CurrentDay     int    `json:"currentDay"`
}

// Generate computes the compact widget grid for the month, relative to the
// given reference date. Pure function; cheap enough to recompute per request.
func Generate(r MonthRef, today time.Time) Grid {
	days := DaysIn(r)
	start := StartWeekday(r)

	cells := make([]int, 0, start+days)
	for i := 0; i < start; i++ {
		cells = append(cells, 0)
	}
	for d := 1; d <= days; d++ {
		cells = append(cells, d)
	}

	return Grid{
		MonthName:      r.Month.String(),
		Year:           r.Year,
		Cells:          cells,
		IsCurrentMonth: today.Year() == r.Year && today.Month() == r.Month,
		CurrentDay:     today.Day(),
	}
}

// PlannerGrid is the fixed-rectangle variant: five 7-column rows, grown to
// six rows when the month actually needs them. Months are never truncated.
func PlannerGrid(r MonthRef, today time.Time) Grid {
	g := Generate(r, today)
	size := 35
	if len(g.Cells) > 35 {
		size = 42
	}
	for len(g.Cells) < size {
		g.Cells = append(g.Cells, 0)
	}
	return g
}

// Ordinal formats a day-of-month with its English suffix: 1st, 2nd, 3rd,
// 4th... with the 11-13 exception.
func Ordinal(n int) string {
	suffix := "th"
	if n%100 < 11 || n%100 > 13 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}

// DateKey formats the planner's YYYY-MM-DD key for a day of this month.
func (r MonthRef) DateKey(day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", r.Year, int(r.Month), day)
}

// MonthsOfYear lists the twelve labels of a year in order, for the timeline.
func MonthsOfYear(year int) []string {
	labels := make([]string, 0, 12)
	for m := time.January; m <= time.December; m++ {
		labels = append(labels, MonthRef{Year: year, Month: m}.Label())
	}
	return labels
}
