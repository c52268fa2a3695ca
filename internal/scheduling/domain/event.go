// Package domain contains the value objects of the production-schedule
// conflict engine: projects, phases, events, conflicts and resolutions.
// All values are immutable; the engine never mutates its inputs.
package domain

import "time"

// Priority represents the scheduling priority of an event.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// priorityScores ranks priorities for reschedule-target selection.
// The lowest-scored event of a conflicting pair is preferred as the
// one to move.
var priorityScores = map[Priority]int{
	PriorityHigh:   100,
	PriorityMedium: 50,
	PriorityLow:    25,
}

// Score returns the numeric weight of the priority. Unknown values
// rank as medium.
func (p Priority) Score() int {
	if s, ok := priorityScores[p]; ok {
		return s
	}
	return priorityScores[PriorityMedium]
}

// PhaseType categorizes the production phase an event belongs to.
type PhaseType string

const (
	PhasePlanning PhaseType = "planning"
	PhaseFilming  PhaseType = "filming"
	PhaseEditing  PhaseType = "editing"
)

// Project is the client deliverable an event belongs to. It is carried
// through for conflict messages only.
type Project struct {
	ID     string
	Name   string
	Status string
}

// Phase is a scheduling sub-interval of a project. Movable marks
// whether the phase is eligible as a reschedule target.
type Phase struct {
	ID      string
	Type    PhaseType
	Start   time.Time
	End     time.Time
	Movable bool
}

// Event is the schedulable unit tying a phase to concrete dates, a
// priority and a project. Start and End use inclusive calendar-day
// semantics: an event ending on a day still occupies that whole day.
type Event struct {
	ID       string
	Title    string
	Start    time.Time
	End      time.Time
	Priority Priority
	Project  Project
	Phase    Phase
}

// IsFilming reports whether the event belongs to a production/filming
// phase. Only filming events participate in conflict rules.
func (e Event) IsFilming() bool {
	return e.Phase.Type == PhaseFilming
}

// Range returns the event's day-normalized date range.
func (e Event) Range() DateRange {
	return DateRange{Start: Day(e.Start), End: Day(e.End)}
}

// Days returns the inclusive day count of the event.
func (e Event) Days() int {
	return e.Range().Days()
}

// MovedTo returns a copy of the event with new dates. The receiver is
// unchanged; "moving" an event always means constructing a new value
// and re-running detection.
func (e Event) MovedTo(start, end time.Time) Event {
	moved := e
	moved.Start = start
	moved.End = end
	return moved
}

// Day normalizes a timestamp to midnight UTC of its calendar day.
// All engine comparisons operate on day granularity.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DateRange is an inclusive calendar-day interval.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether two inclusive ranges share at least one
// day. Touching boundaries count as overlapping.
func (r DateRange) Overlaps(other DateRange) bool {
	return !r.Start.After(other.End) && !other.Start.After(r.End)
}

// Days returns the inclusive day count of the range.
func (r DateRange) Days() int {
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

// IsWeekend reports whether a day falls on Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
