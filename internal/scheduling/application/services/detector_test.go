package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slatehq/slate/internal/scheduling/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func filmingEvent(id, project string, start, end time.Time) domain.Event {
	return domain.Event{
		ID:       id,
		Title:    "Shoot " + project,
		Start:    start,
		End:      end,
		Priority: domain.PriorityMedium,
		Project:  domain.Project{ID: "proj-" + id, Name: project},
		Phase:    domain.Phase{ID: "phase-" + id, Type: domain.PhaseFilming, Start: start, End: end, Movable: true},
	}
}

func planningEvent(id, project string, start, end time.Time) domain.Event {
	e := filmingEvent(id, project, start, end)
	e.Phase.Type = domain.PhasePlanning
	return e
}

func newTestDetector() *ConflictDetector {
	return NewConflictDetector(fixedClock(date(2025, time.January, 10)), nil)
}

func TestConflictDetector_Detect_OverlappingFilming(t *testing.T) {
	// Scenario A: two filming events sharing days.
	detector := newTestDetector()
	event1 := filmingEvent("ev-1", "Brand Film", date(2025, time.January, 15), date(2025, time.January, 17))
	event2 := filmingEvent("ev-2", "Commercial", date(2025, time.January, 16), date(2025, time.January, 18))

	result := detector.Detect([]domain.Event{event1, event2})

	require.True(t, result.HasConflicts)
	require.Equal(t, 1, result.Count)
	require.Len(t, result.Conflicts, 1)

	conflict := result.Conflicts[0]
	assert.Equal(t, domain.ConflictFilmingOverlap, conflict.Type)
	assert.Equal(t, domain.SeverityWarning, conflict.Severity)
	assert.Equal(t, "ev-1", conflict.First.ID)
	assert.Equal(t, "ev-2", conflict.Second.ID)
	assert.Contains(t, conflict.Message, "Brand Film")
	assert.Contains(t, conflict.Message, "Commercial")
	assert.Equal(t, date(2025, time.January, 10), conflict.CreatedAt)

	require.Len(t, result.Events, 2)
	assert.Equal(t, "ev-1", result.Events[0].ID)
	assert.Equal(t, "ev-2", result.Events[1].ID)
}

func TestConflictDetector_Detect_IgnoresNonFilmingPhases(t *testing.T) {
	// Scenario B: a planning event overlapping a filming event is not a conflict.
	detector := newTestDetector()
	event1 := filmingEvent("ev-1", "Brand Film", date(2025, time.January, 15), date(2025, time.January, 17))
	event3 := planningEvent("ev-3", "Documentary", date(2025, time.January, 10), date(2025, time.January, 16))

	result := detector.Detect([]domain.Event{event1, event3})

	assert.False(t, result.HasConflicts)
	assert.Equal(t, 0, result.Count)
	assert.Empty(t, result.Conflicts)
	assert.Empty(t, result.Events)
}

func TestConflictDetector_Detect_TouchingBoundariesConflict(t *testing.T) {
	detector := newTestDetector()
	event1 := filmingEvent("ev-1", "A", date(2025, time.January, 15), date(2025, time.January, 17))
	event2 := filmingEvent("ev-2", "B", date(2025, time.January, 17), date(2025, time.January, 19))

	result := detector.Detect([]domain.Event{event1, event2})

	assert.Equal(t, 1, result.Count, "shared boundary day counts as overlap")
}

func TestConflictDetector_Detect_EmptyAndSingleInput(t *testing.T) {
	detector := newTestDetector()

	empty := detector.Detect(nil)
	assert.False(t, empty.HasConflicts)
	assert.Equal(t, 0, empty.Count)

	single := detector.Detect([]domain.Event{
		filmingEvent("ev-1", "A", date(2025, time.January, 15), date(2025, time.January, 17)),
	})
	assert.False(t, single.HasConflicts)
	assert.Equal(t, 0, single.Count)
}

func TestConflictDetector_Detect_OnePerOverlappingPair(t *testing.T) {
	detector := newTestDetector()
	// Three mutually overlapping filming events produce three pair conflicts.
	events := []domain.Event{
		filmingEvent("ev-1", "A", date(2025, time.January, 15), date(2025, time.January, 20)),
		filmingEvent("ev-2", "B", date(2025, time.January, 16), date(2025, time.January, 18)),
		filmingEvent("ev-3", "C", date(2025, time.January, 17), date(2025, time.January, 19)),
	}

	result := detector.Detect(events)

	require.Equal(t, 3, result.Count)
	ids := make(map[string]bool)
	for _, c := range result.Conflicts {
		ids[c.ID] = true
	}
	assert.Len(t, ids, 3, "conflict IDs are unique per pair")
	assert.Len(t, result.Events, 3, "involved events are deduplicated")
}

func TestConflictDetector_Detect_DeterministicConflictIDs(t *testing.T) {
	detector := newTestDetector()
	events := []domain.Event{
		filmingEvent("ev-1", "A", date(2025, time.January, 15), date(2025, time.January, 17)),
		filmingEvent("ev-2", "B", date(2025, time.January, 16), date(2025, time.January, 18)),
	}

	first := detector.Detect(events)
	second := detector.Detect(events)

	require.Equal(t, 1, first.Count)
	assert.Equal(t, first.Conflicts[0].ID, second.Conflicts[0].ID)
}

func TestConflictDetector_Predict(t *testing.T) {
	detector := newTestDetector()
	event1 := filmingEvent("ev-1", "A", date(2025, time.January, 15), date(2025, time.January, 17))
	event2 := filmingEvent("ev-2", "B", date(2025, time.January, 16), date(2025, time.January, 18))
	all := []domain.Event{event1, event2}

	t.Run("move keeps overlap", func(t *testing.T) {
		// Scenario C: ev-1 moved to Jan 16-19 still collides with ev-2.
		conflicts := detector.Predict(event1, date(2025, time.January, 16), date(2025, time.January, 19), all)

		require.Len(t, conflicts, 1)
		assert.True(t, conflicts[0].Involves("ev-1"))
		assert.True(t, conflicts[0].Involves("ev-2"))
	})

	t.Run("move clears overlap", func(t *testing.T) {
		// Scenario D: ev-1 moved to Jan 20-22 is clear.
		conflicts := detector.Predict(event1, date(2025, time.January, 20), date(2025, time.January, 22), all)
		assert.Empty(t, conflicts)
	})

	t.Run("only conflicts involving the moved event", func(t *testing.T) {
		event3 := filmingEvent("ev-3", "C", date(2025, time.January, 16), date(2025, time.January, 18))
		// ev-2 and ev-3 collide with each other, but a prediction for
		// ev-1 moving far away must not report their conflict.
		conflicts := detector.Predict(event1, date(2025, time.February, 10), date(2025, time.February, 12),
			[]domain.Event{event1, event2, event3})

		assert.Empty(t, conflicts)
	})

	t.Run("original position is not compared against", func(t *testing.T) {
		// Moving ev-1 onto its own original dates must not self-conflict.
		conflicts := detector.Predict(event1, event1.Start, event1.End, []domain.Event{event1})
		assert.Empty(t, conflicts)
	})
}

func TestConflictDetector_IsValidDropZone(t *testing.T) {
	detector := newTestDetector()
	event1 := filmingEvent("ev-1", "A", date(2025, time.January, 15), date(2025, time.January, 17))
	event2 := filmingEvent("ev-2", "B", date(2025, time.January, 16), date(2025, time.January, 18))
	all := []domain.Event{event1, event2}

	// The single implemented rule only emits warnings, so drops
	// validate even onto occupied days. The check guards against
	// future error-severity rules.
	assert.True(t, detector.IsValidDropZone(event1, date(2025, time.January, 16), all))
	assert.True(t, detector.IsValidDropZone(event1, date(2025, time.February, 3), all))
}

func TestConflictDetector_Detect_DoesNotMutateInput(t *testing.T) {
	detector := newTestDetector()
	event1 := filmingEvent("ev-1", "A", date(2025, time.January, 15), date(2025, time.January, 17))
	event2 := filmingEvent("ev-2", "B", date(2025, time.January, 16), date(2025, time.January, 18))
	events := []domain.Event{event1, event2}

	detector.Detect(events)
	detector.Predict(event1, date(2025, time.March, 1), date(2025, time.March, 3), events)

	assert.Equal(t, event1, events[0])
	assert.Equal(t, event2, events[1])
}
