package services

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/slatehq/slate/internal/scheduling/domain"
)

// Slot scoring factors. Candidates start at the base score and are
// scaled by the calendar and lead-time factors that apply.
const (
	slotBaseScore       = 1.0
	weekendFactor       = 0.7
	midweekFactor       = 1.2
	sweetSpotFactor     = 1.1
	shortNoticeFactor   = 0.8
	farOutFactor        = 0.9
	sweetSpotMinDays    = 7
	sweetSpotMaxDays    = 21
	farOutThresholdDays = 30
)

// ResolverConfig configures the conflict resolver.
type ResolverConfig struct {
	// SearchWindowDays bounds the forward search when generating
	// reschedule options.
	SearchWindowDays int
	// MaxSlots caps every slot list. This is a performance bound, not
	// a business rule; callers must not assume all open days come back.
	MaxSlots int
	// Now supplies the reference time for lead-time scoring. Nil falls
	// back to time.Now; tests pin a fixed clock.
	Now func() time.Time
}

// DefaultResolverConfig returns the default configuration: a 3-month
// search window and the top-10 slot cap.
func DefaultResolverConfig() ResolverConfig {
	return ResolverConfig{
		SearchWindowDays: 90,
		MaxSlots:         10,
	}
}

// ConflictResolver generates, ranks and validates reschedule options
// for detected conflicts. Stateless; safe for concurrent use.
type ConflictResolver struct {
	detector *ConflictDetector
	config   ResolverConfig
	logger   *slog.Logger
}

// NewConflictResolver creates a resolver backed by the given detector.
func NewConflictResolver(detector *ConflictDetector, config ResolverConfig, logger *slog.Logger) *ConflictResolver {
	if config.SearchWindowDays <= 0 {
		config.SearchWindowDays = DefaultResolverConfig().SearchWindowDays
	}
	if config.MaxSlots <= 0 {
		config.MaxSlots = DefaultResolverConfig().MaxSlots
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ConflictResolver{detector: detector, config: config, logger: logger}
}

// GenerateOptions proposes ways to eliminate a conflict, sorted by
// ascending estimated cost. The reschedule target is the lower-priority
// event of the pair whose phase is movable; when neither is movable the
// only option is to ignore the conflict.
func (r *ConflictResolver) GenerateOptions(conflict domain.Conflict, all []domain.Event) []domain.ResolutionOption {
	target, ok := r.pickTarget(conflict)
	if !ok {
		// Nothing can move. Surface a reduced option list, never an error.
		return []domain.ResolutionOption{ignoreOption(conflict.First)}
	}

	now := domain.Day(r.config.Now())
	searchEnd := now.AddDate(0, 0, r.config.SearchWindowDays)
	slots := r.FindAvailableSlots(target, now, searchEnd, all)

	options := make([]domain.ResolutionOption, 0, 4)

	if slot, ok := earliestSlotAfter(slots, domain.Day(target.End)); ok {
		options = append(options, moveOption(domain.StrategyPostpone, target, slot,
			fmt.Sprintf("Postpone %q to %s", target.Title, slot.Start.Format("Jan 2"))))
	}
	if slot, ok := latestSlotBefore(slots, domain.Day(target.Start)); ok {
		options = append(options, moveOption(domain.StrategyAdvance, target, slot,
			fmt.Sprintf("Bring %q forward to %s", target.Title, slot.Start.Format("Jan 2"))))
	}

	options = append(options, ignoreOption(target))
	options = append(options, domain.ResolutionOption{
		Strategy:      domain.StrategyCustom,
		TargetEventID: target.ID,
		Impact:        domain.ImpactHigh,
		Description:   fmt.Sprintf("Manually rearrange %q", target.Title),
		Cost:          float64(target.Priority.Score()) * domain.StrategyCustom.CostMultiplier(),
	})

	sort.SliceStable(options, func(i, j int) bool {
		return options[i].Cost < options[j].Cost
	})

	r.logger.Debug("resolution options generated",
		"conflict_id", conflict.ID,
		"target_event", target.ID,
		"options", len(options),
	)

	return options
}

// pickTarget selects the reschedule target: the event with the lower
// priority score, falling back to the other event when the preferred
// one is pinned by a non-movable phase.
func (r *ConflictResolver) pickTarget(conflict domain.Conflict) (domain.Event, bool) {
	first, second := conflict.First, conflict.Second
	if second.Priority.Score() < first.Priority.Score() {
		first, second = second, first
	}
	if first.Phase.Movable {
		return first, true
	}
	if second.Phase.Movable {
		return second, true
	}
	return domain.Event{}, false
}

// FindAvailableSlots scans candidate start dates day by day across the
// search range and returns the non-conflicting same-duration windows,
// scored for desirability and truncated to the configured cap. A slot
// may extend past searchEnd; only its start is bounded by the range.
func (r *ConflictResolver) FindAvailableSlots(event domain.Event, searchStart, searchEnd time.Time, all []domain.Event) []domain.AvailableSlot {
	others := make([]domain.Event, 0, len(all))
	for _, e := range all {
		if e.ID != event.ID && e.IsFilming() {
			others = append(others, e)
		}
	}

	days := event.Days()
	now := domain.Day(r.config.Now())
	first := domain.Day(searchStart)
	last := domain.Day(searchEnd)

	var slots []domain.AvailableSlot
	for cand := first; !cand.After(last); cand = cand.AddDate(0, 0, 1) {
		window := domain.DateRange{Start: cand, End: cand.AddDate(0, 0, days-1)}

		blocked := false
		for _, other := range others {
			if window.Overlaps(other.Range()) {
				blocked = true
				break
			}
		}
		if blocked {
			continue
		}

		score, reason := scoreSlot(cand, now)
		slots = append(slots, domain.AvailableSlot{
			Start:  window.Start,
			End:    window.End,
			Score:  score,
			Reason: reason,
		})
	}

	sort.SliceStable(slots, func(i, j int) bool {
		if slots[i].Score != slots[j].Score {
			return slots[i].Score > slots[j].Score
		}
		return slots[i].Start.Before(slots[j].Start)
	})

	if len(slots) > r.config.MaxSlots {
		slots = slots[:r.config.MaxSlots]
	}
	return slots
}

// scoreSlot applies the fixed desirability heuristic to a candidate
// start day relative to the reference time.
func scoreSlot(cand, now time.Time) (float64, string) {
	score := slotBaseScore
	var reasons []string

	if domain.IsWeekend(cand) {
		score *= weekendFactor
		reasons = append(reasons, "weekend")
	} else if wd := cand.Weekday(); wd >= time.Tuesday && wd <= time.Thursday {
		score *= midweekFactor
		reasons = append(reasons, "midweek")
	}

	lead := int(cand.Sub(now).Hours() / 24)
	switch {
	case lead < sweetSpotMinDays:
		score *= shortNoticeFactor
		reasons = append(reasons, "short notice")
	case lead <= sweetSpotMaxDays:
		score *= sweetSpotFactor
		reasons = append(reasons, "good lead time")
	case lead > farOutThresholdDays:
		score *= farOutFactor
		reasons = append(reasons, "far out")
	}

	if len(reasons) == 0 {
		reasons = append(reasons, "open")
	}
	return score, strings.Join(reasons, ", ")
}

// DefaultAutoResolveOptions returns the default batch configuration.
func DefaultAutoResolveOptions() domain.AutoResolveOptions {
	return domain.AutoResolveOptions{
		Strategy:      domain.StrategyMinimizeDisruption,
		AllowWeekends: true,
	}
}

// AutoResolve generates options for each conflict and picks a
// recommendation per the requested strategy. The whole computation is
// synchronous; the batch shape exists for callers that process many
// conflicts at once. Empty input yields an empty result.
func (r *ConflictResolver) AutoResolve(conflicts []domain.Conflict, all []domain.Event, opts domain.AutoResolveOptions) []domain.AutoResolution {
	if len(conflicts) == 0 {
		return nil
	}

	resolver := r
	if opts.MaxLookaheadDays > 0 && opts.MaxLookaheadDays != r.config.SearchWindowDays {
		cfg := r.config
		cfg.SearchWindowDays = opts.MaxLookaheadDays
		resolver = NewConflictResolver(r.detector, cfg, r.logger)
	}

	results := make([]domain.AutoResolution, 0, len(conflicts))
	for _, conflict := range conflicts {
		options := resolver.GenerateOptions(conflict, all)
		pick := pickRecommended(options, opts, all)

		confidence := domain.ConfidenceNormal
		if pick.Strategy == domain.StrategyIgnore || pick.Strategy == domain.StrategyCustom {
			confidence = domain.ConfidenceDegraded
		}

		results = append(results, domain.AutoResolution{
			ConflictID:   conflict.ID,
			Recommended:  &pick,
			Alternatives: alternativesTo(options, pick),
			Confidence:   confidence,
		})

		r.logger.Info("conflict auto-resolved",
			"conflict_id", conflict.ID,
			"strategy", opts.Strategy,
			"recommended", pick.Strategy,
			"confidence", confidence,
		)
	}
	return results
}

// pickRecommended applies the batch strategy to an option list that is
// already sorted by ascending cost.
func pickRecommended(options []domain.ResolutionOption, opts domain.AutoResolveOptions, all []domain.Event) domain.ResolutionOption {
	eligible := filterEligible(options, opts, all)
	if len(eligible) == 0 {
		eligible = options
	}

	switch opts.Strategy {
	case domain.StrategyMinimizeDisruption:
		for _, o := range eligible {
			if o.Strategy != domain.StrategyIgnore && o.Strategy != domain.StrategyCustom {
				return o
			}
		}
	case domain.StrategyPriorityBased:
		for _, o := range eligible {
			if target, ok := eventByID(all, o.TargetEventID); ok && target.Priority != domain.PriorityHigh {
				return o
			}
		}
	case domain.StrategyEarliestAvailable:
		var best *domain.ResolutionOption
		for i := range eligible {
			o := eligible[i]
			if !o.HasSuggestedDates() {
				continue
			}
			if best == nil || o.SuggestedStart.Before(*best.SuggestedStart) {
				best = &eligible[i]
			}
		}
		if best != nil {
			return *best
		}
	}

	return eligible[0]
}

// filterEligible drops options excluded by the weekend and priority
// flags. When the filter would leave nothing, the caller falls back to
// the full list rather than failing.
func filterEligible(options []domain.ResolutionOption, opts domain.AutoResolveOptions, all []domain.Event) []domain.ResolutionOption {
	eligible := make([]domain.ResolutionOption, 0, len(options))
	for _, o := range options {
		if !opts.AllowWeekends && o.SuggestedStart != nil && domain.IsWeekend(*o.SuggestedStart) {
			continue
		}
		if opts.RespectPriority {
			if target, ok := eventByID(all, o.TargetEventID); ok && target.Priority == domain.PriorityHigh && o.HasSuggestedDates() {
				continue
			}
		}
		eligible = append(eligible, o)
	}
	return eligible
}

// ValidateResolution checks a proposed move against the current event
// set. An unknown event ID yields a structured invalid result, never
// an error. Validity depends only on newly introduced conflicts;
// weekend starts and short turnaround produce warnings.
func (r *ConflictResolver) ValidateResolution(proposed domain.ProposedResolution, all []domain.Event) domain.ValidationResult {
	target, ok := eventByID(all, proposed.EventID)
	if !ok {
		return domain.ValidationResult{
			Valid:    false,
			Warnings: []string{fmt.Sprintf("event %s not found", proposed.EventID)},
		}
	}

	moved := target.MovedTo(proposed.NewStart, proposed.NewEnd)

	var newConflicts []domain.Conflict
	var warnings []string
	var suggestions []string

	for _, other := range all {
		if other.ID == moved.ID || !other.IsFilming() {
			continue
		}
		if moved.IsFilming() && moved.Range().Overlaps(other.Range()) {
			newConflicts = append(newConflicts, domain.NewFilmingOverlap(moved, other, r.config.Now()))
		}
	}

	start := domain.Day(proposed.NewStart)
	if domain.IsWeekend(start) {
		warnings = append(warnings, "proposed start falls on a weekend")
		suggestions = append(suggestions, "consider starting on a weekday")
	}

	for _, other := range all {
		if other.ID == moved.ID {
			continue
		}
		gap := domain.Day(other.Start).Sub(start).Hours() / 24
		if gap < 0 {
			gap = -gap
		}
		if gap <= 2 {
			warnings = append(warnings,
				fmt.Sprintf("event %q starts within 2 days of the proposed start", other.Title))
			break
		}
	}

	if len(newConflicts) > 0 {
		suggestions = append(suggestions, "search for an open slot with the slot finder")
	}

	return domain.ValidationResult{
		Valid:        len(newConflicts) == 0,
		NewConflicts: newConflicts,
		Warnings:     warnings,
		Suggestions:  suggestions,
	}
}

func moveOption(strategy domain.ResolutionStrategy, target domain.Event, slot domain.AvailableSlot, description string) domain.ResolutionOption {
	start := slot.Start
	end := slot.End
	return domain.ResolutionOption{
		Strategy:       strategy,
		TargetEventID:  target.ID,
		SuggestedStart: &start,
		SuggestedEnd:   &end,
		Impact:         domain.ImpactForPriority(target.Priority),
		Description:    description,
		Cost:           float64(target.Priority.Score()) * strategy.CostMultiplier(),
	}
}

func ignoreOption(target domain.Event) domain.ResolutionOption {
	return domain.ResolutionOption{
		Strategy:      domain.StrategyIgnore,
		TargetEventID: target.ID,
		Impact:        domain.ImpactLow,
		Description:   "Keep both schedules and accept the overlap",
		Cost:          float64(target.Priority.Score()) * domain.StrategyIgnore.CostMultiplier(),
	}
}

// earliestSlotAfter returns the earliest slot starting strictly after
// the given day. Slots arrive score-sorted, so the scan tracks the
// minimum start.
func earliestSlotAfter(slots []domain.AvailableSlot, after time.Time) (domain.AvailableSlot, bool) {
	var best domain.AvailableSlot
	found := false
	for _, s := range slots {
		if !s.Start.After(after) {
			continue
		}
		if !found || s.Start.Before(best.Start) {
			best = s
			found = true
		}
	}
	return best, found
}

// latestSlotBefore returns the latest slot ending strictly before the
// given day.
func latestSlotBefore(slots []domain.AvailableSlot, before time.Time) (domain.AvailableSlot, bool) {
	var best domain.AvailableSlot
	found := false
	for _, s := range slots {
		if !s.End.Before(before) {
			continue
		}
		if !found || s.Start.After(best.Start) {
			best = s
			found = true
		}
	}
	return best, found
}

func eventByID(all []domain.Event, id string) (domain.Event, bool) {
	for _, e := range all {
		if e.ID == id {
			return e, true
		}
	}
	return domain.Event{}, false
}

// alternativesTo returns every option other than the chosen one.
func alternativesTo(options []domain.ResolutionOption, chosen domain.ResolutionOption) []domain.ResolutionOption {
	alts := make([]domain.ResolutionOption, 0, len(options)-1)
	for _, o := range options {
		if o.Strategy == chosen.Strategy && o.TargetEventID == chosen.TargetEventID {
			continue
		}
		alts = append(alts, o)
	}
	return alts
}
