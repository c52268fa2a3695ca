// Package services implements the conflict engine: pairwise detection,
// prediction under hypothetical moves, slot search and multi-strategy
// auto-resolution. Every operation is a pure function of its inputs
// and the injected clock; no service holds state between calls.
package services

import (
	"log/slog"
	"time"

	"github.com/slatehq/slate/internal/scheduling/domain"
)

// ConflictDetector performs pairwise overlap detection among filming
// events. It is safe for concurrent use; it holds no mutable state.
type ConflictDetector struct {
	now    func() time.Time
	logger *slog.Logger
}

// NewConflictDetector creates a detector. A nil clock falls back to
// time.Now; tests inject a fixed clock for reproducible timestamps.
func NewConflictDetector(now func() time.Time, logger *slog.Logger) *ConflictDetector {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ConflictDetector{now: now, logger: logger}
}

// Detect runs a full pairwise scan over the filming events in the
// input and reports every overlapping pair. Non-filming events never
// appear in a conflict regardless of their dates. Empty input or a
// single filming event yields an empty result.
//
// The scan is O(n²) in the filming-event count, which is fine at
// realistic volumes (tens to low hundreds per project).
func (d *ConflictDetector) Detect(events []domain.Event) domain.DetectionResult {
	filming := make([]domain.Event, 0, len(events))
	for _, e := range events {
		if e.IsFilming() {
			filming = append(filming, e)
		}
	}

	var conflicts []domain.Conflict
	for i := 0; i < len(filming); i++ {
		for j := i + 1; j < len(filming); j++ {
			if filming[i].Range().Overlaps(filming[j].Range()) {
				conflict := domain.NewFilmingOverlap(filming[i], filming[j], d.now())
				conflicts = append(conflicts, conflict)

				d.logger.Debug("conflict detected",
					"conflict_id", conflict.ID,
					"first_event", filming[i].ID,
					"second_event", filming[j].ID,
				)
			}
		}
	}

	return domain.DetectionResult{
		HasConflicts: len(conflicts) > 0,
		Conflicts:    conflicts,
		Events:       involvedEvents(conflicts),
		Count:        len(conflicts),
	}
}

// Predict re-runs detection as if the moving event already sat at the
// new dates and returns only the conflicts that involve it. This is a
// full re-detection rather than an incremental diff; correct, and
// cheap enough for interactive drag-and-drop.
func (d *ConflictDetector) Predict(moving domain.Event, newStart, newEnd time.Time, all []domain.Event) []domain.Conflict {
	hypothetical := make([]domain.Event, 0, len(all))
	for _, e := range all {
		if e.ID != moving.ID {
			hypothetical = append(hypothetical, e)
		}
	}
	hypothetical = append(hypothetical, moving.MovedTo(newStart, newEnd))

	result := d.Detect(hypothetical)

	var involving []domain.Conflict
	for _, c := range result.Conflicts {
		if c.Involves(moving.ID) {
			involving = append(involving, c)
		}
	}
	return involving
}

// IsValidDropZone reports whether dropping the dragged event on the
// given date is acceptable: the event keeps its inclusive-day duration
// and the drop is valid iff no predicted conflict exceeds warning
// severity. The only rule implemented today never emits an error, so
// every drop currently validates; the severity check stays in place
// for future higher-severity rules.
func (d *ConflictDetector) IsValidDropZone(dragged domain.Event, dropDate time.Time, all []domain.Event) bool {
	newStart := domain.Day(dropDate)
	newEnd := newStart.AddDate(0, 0, dragged.Days()-1)

	for _, c := range d.Predict(dragged, newStart, newEnd, all) {
		if c.Severity == domain.SeverityError {
			return false
		}
	}
	return true
}

// involvedEvents deduplicates the events appearing in any conflict,
// preserving first-seen order.
func involvedEvents(conflicts []domain.Conflict) []domain.Event {
	seen := make(map[string]bool)
	var events []domain.Event
	for _, c := range conflicts {
		for _, e := range c.Events() {
			if !seen[e.ID] {
				seen[e.ID] = true
				events = append(events, e)
			}
		}
	}
	return events
}
