package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDateRange_Overlaps(t *testing.T) {
	tests := []struct {
		name     string
		range1   DateRange
		range2   DateRange
		expected bool
	}{
		{
			name:     "overlapping ranges",
			range1:   DateRange{Start: date(2025, time.January, 15), End: date(2025, time.January, 17)},
			range2:   DateRange{Start: date(2025, time.January, 16), End: date(2025, time.January, 18)},
			expected: true,
		},
		{
			name:     "non-overlapping ranges",
			range1:   DateRange{Start: date(2025, time.January, 15), End: date(2025, time.January, 17)},
			range2:   DateRange{Start: date(2025, time.January, 20), End: date(2025, time.January, 22)},
			expected: false,
		},
		{
			name:     "touching boundaries overlap (inclusive days)",
			range1:   DateRange{Start: date(2025, time.January, 15), End: date(2025, time.January, 17)},
			range2:   DateRange{Start: date(2025, time.January, 17), End: date(2025, time.January, 19)},
			expected: true,
		},
		{
			name:     "one contains the other",
			range1:   DateRange{Start: date(2025, time.January, 10), End: date(2025, time.January, 20)},
			range2:   DateRange{Start: date(2025, time.January, 12), End: date(2025, time.January, 14)},
			expected: true,
		},
		{
			name:     "same range",
			range1:   DateRange{Start: date(2025, time.January, 15), End: date(2025, time.January, 17)},
			range2:   DateRange{Start: date(2025, time.January, 15), End: date(2025, time.January, 17)},
			expected: true,
		},
		{
			name:     "adjacent with one day gap",
			range1:   DateRange{Start: date(2025, time.January, 15), End: date(2025, time.January, 17)},
			range2:   DateRange{Start: date(2025, time.January, 18), End: date(2025, time.January, 19)},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.range1.Overlaps(tt.range2))
			assert.Equal(t, tt.expected, tt.range2.Overlaps(tt.range1), "overlap must be symmetric")
		})
	}
}

func TestDateRange_Days(t *testing.T) {
	tests := []struct {
		name     string
		r        DateRange
		expected int
	}{
		{"single day", DateRange{Start: date(2025, time.January, 15), End: date(2025, time.January, 15)}, 1},
		{"three days", DateRange{Start: date(2025, time.January, 15), End: date(2025, time.January, 17)}, 3},
		{"across month boundary", DateRange{Start: date(2025, time.January, 30), End: date(2025, time.February, 2)}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.r.Days())
		})
	}
}

func TestDay_NormalizesToMidnightUTC(t *testing.T) {
	ts := time.Date(2025, time.January, 15, 18, 42, 7, 123, time.UTC)
	assert.Equal(t, date(2025, time.January, 15), Day(ts))
}

func TestPriority_Score(t *testing.T) {
	assert.Equal(t, 100, PriorityHigh.Score())
	assert.Equal(t, 50, PriorityMedium.Score())
	assert.Equal(t, 25, PriorityLow.Score())
	assert.Equal(t, 50, Priority("unknown").Score(), "unknown priorities rank as medium")
}

func TestEvent_IsFilming(t *testing.T) {
	filming := Event{Phase: Phase{Type: PhaseFilming}}
	planning := Event{Phase: Phase{Type: PhasePlanning}}
	editing := Event{Phase: Phase{Type: PhaseEditing}}

	assert.True(t, filming.IsFilming())
	assert.False(t, planning.IsFilming())
	assert.False(t, editing.IsFilming())
}

func TestEvent_MovedTo_DoesNotMutateOriginal(t *testing.T) {
	original := Event{
		ID:    "ev-1",
		Title: "Shoot day",
		Start: date(2025, time.January, 15),
		End:   date(2025, time.January, 17),
	}

	moved := original.MovedTo(date(2025, time.January, 20), date(2025, time.January, 22))

	assert.Equal(t, date(2025, time.January, 15), original.Start)
	assert.Equal(t, date(2025, time.January, 17), original.End)
	assert.Equal(t, date(2025, time.January, 20), moved.Start)
	assert.Equal(t, date(2025, time.January, 22), moved.End)
	assert.Equal(t, original.ID, moved.ID)
}

func TestEvent_Days(t *testing.T) {
	e := Event{
		Start: time.Date(2025, time.January, 15, 9, 30, 0, 0, time.UTC),
		End:   time.Date(2025, time.January, 17, 16, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, 3, e.Days(), "day count ignores time of day")
}

func TestIsWeekend(t *testing.T) {
	assert.True(t, IsWeekend(date(2025, time.January, 18)), "Saturday")
	assert.True(t, IsWeekend(date(2025, time.January, 19)), "Sunday")
	assert.False(t, IsWeekend(date(2025, time.January, 20)), "Monday")
	assert.False(t, IsWeekend(date(2025, time.January, 17)), "Friday")
}
