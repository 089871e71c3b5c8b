package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMonthLabel(t *testing.T) {
	ref, err := ParseMonthLabel("January 2026")
	require.NoError(t, err)
	assert.Equal(t, 2026, ref.Year)
	assert.Equal(t, time.January, ref.Month)
	assert.Equal(t, "January 2026", ref.Label())

	// Case-insensitive month names, stray whitespace tolerated.
	ref, err = ParseMonthLabel("  december 2026 ")
	require.NoError(t, err)
	assert.Equal(t, time.December, ref.Month)

	for _, label := range []string{"", "January", "Janury 2026", "January twenty", "13 2026", "January 0", "January 10000"} {
		_, err := ParseMonthLabel(label)
		assert.ErrorIs(t, err, ErrBadMonthLabel, "label %q", label)
	}
}

func TestDaysIn(t *testing.T) {
	assert.Equal(t, 31, DaysIn(MonthRef{2026, time.January}))
	assert.Equal(t, 28, DaysIn(MonthRef{2026, time.February}))
	assert.Equal(t, 29, DaysIn(MonthRef{2028, time.February}))
	assert.Equal(t, 30, DaysIn(MonthRef{2026, time.April}))
	assert.Equal(t, 31, DaysIn(MonthRef{2026, time.December}))
	// Century rule: 2000 leaps, 1900 does not.
	assert.Equal(t, 29, DaysIn(MonthRef{2000, time.February}))
	assert.Equal(t, 28, DaysIn(MonthRef{1900, time.February}))
}

func TestGenerateGridShape(t *testing.T) {
	today := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

	for m := time.January; m <= time.December; m++ {
		ref := MonthRef{Year: 2026, Month: m}
		g := Generate(ref, today)

		var leading, numbered int
		for i, c := range g.Cells {
			if c == 0 {
				leading++
				continue
			}
			// Padding only appears before day 1 in the compact grid.
			assert.Equal(t, i-StartWeekday(ref)+1, c)
			numbered++
		}
		assert.Equal(t, StartWeekday(ref), leading, "month %s", m)
		assert.Equal(t, DaysIn(ref), numbered, "month %s", m)
	}
}

func TestGenerateCurrentMonthFlag(t *testing.T) {
	today := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

	g := Generate(MonthRef{2026, time.March}, today)
	assert.True(t, g.IsCurrentMonth)
	assert.Equal(t, 10, g.CurrentDay)

	assert.False(t, Generate(MonthRef{2026, time.April}, today).IsCurrentMonth)
	// Same month of a different year is not "current".
	assert.False(t, Generate(MonthRef{2027, time.March}, today).IsCurrentMonth)
}

func TestPlannerGridPadding(t *testing.T) {
	today := time.Now()

	// February 2026 starts on a Sunday: 0+28 cells, padded up to 35.
	g := PlannerGrid(MonthRef{2026, time.February}, today)
	assert.Len(t, g.Cells, 35)

	// May 2026 starts on a Friday: 5+31 = 36 cells need a sixth row.
	require.Equal(t, 5, StartWeekday(MonthRef{2026, time.May}))
	g = PlannerGrid(MonthRef{2026, time.May}, today)
	assert.Len(t, g.Cells, 42)
	assert.Equal(t, 31, g.Cells[5+30], "day 31 must survive padding")
	assert.Equal(t, 0, g.Cells[41])
}

func TestOrdinal(t *testing.T) {
	cases := map[int]string{
		1: "1st", 2: "2nd", 3: "3rd", 4: "4th",
		11: "11th", 12: "12th", 13: "13th",
		21: "21st", 22: "22nd", 23: "23rd", 24: "24th", 31: "31st",
	}
	for n, want := range cases {
		assert.Equal(t, want, Ordinal(n))
	}
}

func TestDateKey(t *testing.T) {
	assert.Equal(t, "2026-01-15", MonthRef{2026, time.January}.DateKey(15))
	assert.Equal(t, "2026-11-05", MonthRef{2026, time.November}.DateKey(5))
}

func TestMonthsOfYear(t *testing.T) {
	labels := MonthsOfYear(2026)
	require.Len(t, labels, 12)
	assert.Equal(t, "January 2026", labels[0])
	assert.Equal(t, "December 2026", labels[11])
}
