package domain

import (
	"fmt"
	"time"
)

// ConflictType represents the kind of scheduling conflict.
type ConflictType string

const (
	// ConflictFilmingOverlap indicates two filming phases share at
	// least one calendar day. This is the only rule currently modeled;
	// planning and editing overlaps are deliberately ignored.
	ConflictFilmingOverlap ConflictType = "filming-overlap"
)

// Severity classifies how serious a conflict is. Only warning is
// produced today; the error level is reserved for future rules such
// as double-booked physical resources and must not be collapsed into
// a boolean.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Conflict is a detected overlap between exactly two filming events.
type Conflict struct {
	ID         string
	Type       ConflictType
	Severity   Severity
	First      Event
	Second     Event
	Message    string
	Suggestion string
	CreatedAt  time.Time
}

// ConflictID derives a deterministic conflict identifier from the two
// involved event IDs. Detecting the same pair twice yields the same ID.
func ConflictID(firstEventID, secondEventID string) string {
	return fmt.Sprintf("conflict-%s-%s", firstEventID, secondEventID)
}

// NewFilmingOverlap builds the conflict emitted when two filming
// events overlap. The timestamp comes from the caller's clock.
func NewFilmingOverlap(first, second Event, now time.Time) Conflict {
	return Conflict{
		ID:       ConflictID(first.ID, second.ID),
		Type:     ConflictFilmingOverlap,
		Severity: SeverityWarning,
		First:    first,
		Second:   second,
		Message: fmt.Sprintf("Filming schedules for %q and %q overlap",
			first.Project.Name, second.Project.Name),
		Suggestion: "Reschedule the lower-priority filming phase to an open slot",
		CreatedAt:  now,
	}
}

// Events returns the two involved events.
func (c Conflict) Events() []Event {
	return []Event{c.First, c.Second}
}

// Involves reports whether the conflict references the given event ID.
func (c Conflict) Involves(eventID string) bool {
	return c.First.ID == eventID || c.Second.ID == eventID
}

// DetectionResult summarizes a full detection pass.
type DetectionResult struct {
	HasConflicts bool
	Conflicts    []Conflict
	// Events is the deduplicated set of all events appearing in any
	// conflict, in first-seen order.
	Events []Event
	Count  int
}
