package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConflictID_Deterministic(t *testing.T) {
	assert.Equal(t, "conflict-ev-1-ev-2", ConflictID("ev-1", "ev-2"))
	assert.Equal(t, ConflictID("ev-1", "ev-2"), ConflictID("ev-1", "ev-2"))
	assert.NotEqual(t, ConflictID("ev-1", "ev-2"), ConflictID("ev-2", "ev-1"))
}

func TestNewFilmingOverlap(t *testing.T) {
	now := date(2025, time.January, 10)
	first := Event{
		ID:      "ev-1",
		Project: Project{ID: "p-1", Name: "Brand Film A"},
		Phase:   Phase{Type: PhaseFilming},
	}
	second := Event{
		ID:      "ev-2",
		Project: Project{ID: "p-2", Name: "Commercial B"},
		Phase:   Phase{Type: PhaseFilming},
	}

	conflict := NewFilmingOverlap(first, second, now)

	assert.Equal(t, "conflict-ev-1-ev-2", conflict.ID)
	assert.Equal(t, ConflictFilmingOverlap, conflict.Type)
	assert.Equal(t, SeverityWarning, conflict.Severity)
	assert.Equal(t, first, conflict.First)
	assert.Equal(t, second, conflict.Second)
	assert.Contains(t, conflict.Message, "Brand Film A")
	assert.Contains(t, conflict.Message, "Commercial B")
	assert.NotEmpty(t, conflict.Suggestion)
	assert.Equal(t, now, conflict.CreatedAt)
}

func TestConflict_Involves(t *testing.T) {
	conflict := NewFilmingOverlap(Event{ID: "ev-1"}, Event{ID: "ev-2"}, time.Time{})

	assert.True(t, conflict.Involves("ev-1"))
	assert.True(t, conflict.Involves("ev-2"))
	assert.False(t, conflict.Involves("ev-3"))
}

func TestConflict_Events(t *testing.T) {
	conflict := NewFilmingOverlap(Event{ID: "ev-1"}, Event{ID: "ev-2"}, time.Time{})

	events := conflict.Events()
	require.Len(t, events, 2)
	assert.Equal(t, "ev-1", events[0].ID)
	assert.Equal(t, "ev-2", events[1].ID)
}

func TestSeverity_Constants(t *testing.T) {
	assert.Equal(t, Severity("warning"), SeverityWarning)
	assert.Equal(t, Severity("error"), SeverityError)
}
