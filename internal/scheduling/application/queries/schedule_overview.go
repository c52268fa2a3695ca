// Package queries holds the read side of the scheduling context:
// reporting views assembled from stored events and live conflict
// detection, returned as DTOs for presentation.
package queries

import (
	"context"
	"time"

	"github.com/slatehq/slate/internal/scheduling/application/services"
	"github.com/slatehq/slate/internal/scheduling/domain"
)

// EventDTO is a data transfer object for schedule events.
type EventDTO struct {
	ID        string
	Title     string
	Start     time.Time
	End       time.Time
	Days      int
	Phase     string
	Priority  string
	ProjectID string
	Movable   bool
	Conflicts int
}

// OverviewDTO summarizes a schedule window: the events inside it and
// the conflicts among them.
type OverviewDTO struct {
	From          time.Time
	To            time.Time
	Events        []EventDTO
	Conflicts     []domain.Conflict
	FilmingDays   int
	ConflictCount int
}

// ScheduleOverviewQuery contains the parameters for an overview.
// A zero From/To means an unbounded window; ProjectID narrows the
// event set to one project.
type ScheduleOverviewQuery struct {
	ProjectID string
	From      time.Time
	To        time.Time
}

// ScheduleOverviewHandler handles the ScheduleOverviewQuery.
type ScheduleOverviewHandler struct {
	events   domain.EventRepository
	detector *services.ConflictDetector
}

// NewScheduleOverviewHandler creates a new ScheduleOverviewHandler.
func NewScheduleOverviewHandler(events domain.EventRepository, detector *services.ConflictDetector) *ScheduleOverviewHandler {
	return &ScheduleOverviewHandler{events: events, detector: detector}
}

// Handle executes the ScheduleOverviewQuery. Conflicts are detected
// over the full event set of the window, so a partially overlapping
// event still reports its conflicts.
func (h *ScheduleOverviewHandler) Handle(ctx context.Context, query ScheduleOverviewQuery) (*OverviewDTO, error) {
	var (
		all []domain.Event
		err error
	)
	if query.ProjectID != "" {
		all, err = h.events.FindByProject(ctx, query.ProjectID)
	} else {
		all, err = h.events.FindAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	window := make([]domain.Event, 0, len(all))
	for _, event := range all {
		if inWindow(event, query.From, query.To) {
			window = append(window, event)
		}
	}

	result := h.detector.Detect(window)
	return toOverviewDTO(query, window, result), nil
}

func inWindow(event domain.Event, from, to time.Time) bool {
	if !from.IsZero() && event.End.Before(from) {
		return false
	}
	if !to.IsZero() && event.Start.After(to) {
		return false
	}
	return true
}

func toOverviewDTO(query ScheduleOverviewQuery, events []domain.Event, result domain.DetectionResult) *OverviewDTO {
	dtos := make([]EventDTO, len(events))
	filmingDays := 0

	for i, event := range events {
		conflicts := 0
		for _, conflict := range result.Conflicts {
			if conflict.Involves(event.ID) {
				conflicts++
			}
		}
		dtos[i] = EventDTO{
			ID:        event.ID,
			Title:     event.Title,
			Start:     event.Start,
			End:       event.End,
			Days:      event.Days(),
			Phase:     string(event.Phase.Type),
			Priority:  string(event.Priority),
			ProjectID: event.Project.ID,
			Movable:   event.Phase.Movable,
			Conflicts: conflicts,
		}
		if event.IsFilming() {
			filmingDays += event.Days()
		}
	}

	return &OverviewDTO{
		From:          query.From,
		To:            query.To,
		Events:        dtos,
		Conflicts:     result.Conflicts,
		FilmingDays:   filmingDays,
		ConflictCount: result.Count,
	}
}
