// Package importing loads production schedules from iCalendar files
// into the event store.
package importing

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"
	"github.com/teambition/rrule-go"

	"github.com/slatehq/slate/internal/scheduling/domain"
)

// Options configures one import run. Project and phase metadata are
// not part of the iCalendar format, so the caller supplies defaults;
// a CATEGORIES property on an event overrides the phase type.
type Options struct {
	ProjectID       string
	ProjectName     string
	ProjectStatus   string
	DefaultPhase    domain.PhaseType
	DefaultPriority domain.Priority
	Movable         bool
	// WindowStart and WindowEnd bound recurrence expansion. Zero
	// values default to one year from WindowStart, and WindowStart to
	// the current day.
	WindowStart time.Time
	WindowEnd   time.Time
}

// Importer parses iCalendar data into events and saves them through
// the repository.
type Importer struct {
	repo   domain.EventRepository
	logger *slog.Logger
}

// NewImporter creates an importer.
func NewImporter(repo domain.EventRepository, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{repo: repo, logger: logger}
}

// ImportFile imports all events from an .ics file. It returns the
// number of events saved.
func (i *Importer) ImportFile(ctx context.Context, path string, opts Options) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open calendar file: %w", err)
	}
	defer f.Close()

	return i.Import(ctx, f, opts)
}

// Import parses iCalendar data from the reader and saves the resulting
// events. Cancelled events and events without dates are skipped;
// recurring events are expanded within the configured window.
func (i *Importer) Import(ctx context.Context, r io.Reader, opts Options) (int, error) {
	opts = withDefaults(opts)

	events, err := i.Parse(r, opts)
	if err != nil {
		return 0, err
	}

	saved := 0
	for _, event := range events {
		if err := i.repo.Save(ctx, event); err != nil {
			return saved, fmt.Errorf("save imported event: %w", err)
		}
		saved++
	}

	i.logger.Info("calendar imported", "events", saved, "project", opts.ProjectID)
	return saved, nil
}

// Parse decodes iCalendar data into events without touching storage.
func (i *Importer) Parse(r io.Reader, opts Options) ([]domain.Event, error) {
	opts = withDefaults(opts)
	decoder := ical.NewDecoder(r)

	var events []domain.Event
	seen := make(map[string]bool)

	for {
		cal, err := decoder.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode calendar: %w", err)
		}

		for _, comp := range cal.Children {
			if comp.Name != ical.CompEvent {
				continue
			}

			event, ok := i.parseComponent(comp, opts)
			if !ok {
				continue
			}

			for _, instance := range i.expand(comp, event, opts) {
				if seen[instance.ID] {
					i.logger.Debug("duplicate event skipped", "event_id", instance.ID)
					continue
				}
				seen[instance.ID] = true
				events = append(events, instance)
			}
		}
	}

	return events, nil
}

// parseComponent maps one VEVENT to an event. Returns false for
// components the import skips.
func (i *Importer) parseComponent(comp *ical.Component, opts Options) (domain.Event, bool) {
	var event domain.Event

	if prop := comp.Props.Get(ical.PropStatus); prop != nil && strings.EqualFold(prop.Value, "CANCELLED") {
		return event, false
	}

	if prop := comp.Props.Get(ical.PropUID); prop != nil {
		event.ID = prop.Value
	} else {
		event.ID = uuid.NewString()
	}

	if prop := comp.Props.Get(ical.PropSummary); prop != nil {
		event.Title = prop.Value
	}

	start, okStart := propTime(comp.Props.Get(ical.PropDateTimeStart))
	end, okEnd := propTime(comp.Props.Get(ical.PropDateTimeEnd))
	if !okStart || !okEnd {
		i.logger.Debug("event without dates skipped", "event_id", event.ID)
		return event, false
	}
	// DTEND is exclusive for all-day events; the engine uses inclusive
	// calendar days.
	if end.Equal(domain.Day(end)) && domain.Day(end).After(domain.Day(start)) {
		end = end.AddDate(0, 0, -1)
	}
	event.Start = start
	event.End = end

	event.Priority = opts.DefaultPriority
	if prop := comp.Props.Get(ical.PropPriority); prop != nil {
		if n, err := strconv.Atoi(prop.Value); err == nil {
			event.Priority = priorityFromICal(n, opts.DefaultPriority)
		}
	}

	phaseType := opts.DefaultPhase
	if prop := comp.Props.Get(ical.PropCategories); prop != nil {
		if mapped, ok := phaseFromCategory(prop.Value); ok {
			phaseType = mapped
		}
	}

	event.Project = domain.Project{
		ID:     opts.ProjectID,
		Name:   opts.ProjectName,
		Status: opts.ProjectStatus,
	}
	event.Phase = domain.Phase{
		ID:      "phase-" + event.ID,
		Type:    phaseType,
		Start:   start,
		End:     end,
		Movable: opts.Movable,
	}

	return event, true
}

// expand returns the event itself, or its occurrences within the
// import window when the component carries an RRULE.
func (i *Importer) expand(comp *ical.Component, event domain.Event, opts Options) []domain.Event {
	prop := comp.Props.Get(ical.PropRecurrenceRule)
	if prop == nil {
		return []domain.Event{event}
	}

	rule, err := rrule.StrToRRule(prop.Value)
	if err != nil {
		i.logger.Warn("unparseable RRULE, keeping base event",
			"event_id", event.ID, "rrule", prop.Value, "error", err)
		return []domain.Event{event}
	}
	rule.DTStart(event.Start)

	duration := event.End.Sub(event.Start)
	occurrences := rule.Between(opts.WindowStart, opts.WindowEnd, true)

	instances := make([]domain.Event, 0, len(occurrences))
	for _, occ := range occurrences {
		instance := event.MovedTo(occ, occ.Add(duration))
		instance.ID = fmt.Sprintf("%s-%s", event.ID, occ.Format("20060102"))
		instance.Phase.ID = "phase-" + instance.ID
		instance.Phase.Start = instance.Start
		instance.Phase.End = instance.End
		instances = append(instances, instance)
	}

	i.logger.Debug("recurring event expanded",
		"event_id", event.ID, "occurrences", len(instances))
	return instances
}

func withDefaults(opts Options) Options {
	if opts.DefaultPhase == "" {
		opts.DefaultPhase = domain.PhaseFilming
	}
	if opts.DefaultPriority == "" {
		opts.DefaultPriority = domain.PriorityMedium
	}
	if opts.ProjectStatus == "" {
		opts.ProjectStatus = "active"
	}
	if opts.WindowStart.IsZero() {
		opts.WindowStart = domain.Day(time.Now())
	}
	if opts.WindowEnd.IsZero() {
		opts.WindowEnd = opts.WindowStart.AddDate(1, 0, 0)
	}
	return opts
}

func propTime(prop *ical.Prop) (time.Time, bool) {
	if prop == nil {
		return time.Time{}, false
	}
	if t, err := prop.DateTime(time.UTC); err == nil && !t.IsZero() {
		return t, true
	}
	return time.Time{}, false
}

// priorityFromICal maps the RFC 5545 1..9 priority scale onto the
// engine's three levels.
func priorityFromICal(n int, fallback domain.Priority) domain.Priority {
	switch {
	case n >= 1 && n <= 4:
		return domain.PriorityHigh
	case n == 5:
		return domain.PriorityMedium
	case n >= 6 && n <= 9:
		return domain.PriorityLow
	default:
		return fallback
	}
}

func phaseFromCategory(value string) (domain.PhaseType, bool) {
	for _, category := range strings.Split(value, ",") {
		switch strings.ToLower(strings.TrimSpace(category)) {
		case "filming", "production", "shoot":
			return domain.PhaseFilming, true
		case "planning", "pre-production":
			return domain.PhasePlanning, true
		case "editing", "post-production", "post":
			return domain.PhaseEditing, true
		}
	}
	return "", false
}
