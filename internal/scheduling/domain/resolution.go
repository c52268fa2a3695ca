package domain

import "time"

// ResolutionStrategy identifies how a single conflict can be resolved.
type ResolutionStrategy string

const (
	// StrategyPostpone moves the target event to the earliest open
	// slot after its current end date.
	StrategyPostpone ResolutionStrategy = "postpone"
	// StrategyAdvance moves the target event to the latest open slot
	// before its current start date.
	StrategyAdvance ResolutionStrategy = "advance"
	// StrategyIgnore leaves the conflict in place.
	StrategyIgnore ResolutionStrategy = "ignore"
	// StrategyCustom signals that manual intervention is required.
	StrategyCustom ResolutionStrategy = "custom"
)

// costMultipliers scale the target's priority score into an estimated
// resolution cost. Lower cost is preferred.
var costMultipliers = map[ResolutionStrategy]float64{
	StrategyAdvance:  0.8,
	StrategyPostpone: 1.0,
	StrategyIgnore:   0.5,
	StrategyCustom:   2.0,
}

// CostMultiplier returns the cost scaling factor for the strategy.
func (s ResolutionStrategy) CostMultiplier() float64 {
	if m, ok := costMultipliers[s]; ok {
		return m
	}
	return 1.0
}

// Impact estimates the business disruption of applying an option.
type Impact string

const (
	ImpactLow    Impact = "low"
	ImpactMedium Impact = "medium"
	ImpactHigh   Impact = "high"
)

// ImpactForPriority maps a reschedule target's priority to the
// disruption of moving it.
func ImpactForPriority(p Priority) Impact {
	switch p {
	case PriorityHigh:
		return ImpactHigh
	case PriorityLow:
		return ImpactLow
	default:
		return ImpactMedium
	}
}

// ResolutionOption is one proposed way to eliminate a conflict.
// SuggestedStart and SuggestedEnd are nil for options that do not move
// the target (ignore, custom).
type ResolutionOption struct {
	Strategy       ResolutionStrategy
	TargetEventID  string
	SuggestedStart *time.Time
	SuggestedEnd   *time.Time
	Impact         Impact
	Description    string
	Cost           float64
}

// HasSuggestedDates reports whether the option carries a concrete
// reschedule window.
func (o ResolutionOption) HasSuggestedDates() bool {
	return o.SuggestedStart != nil && o.SuggestedEnd != nil
}

// AvailableSlot is a candidate date range of the same duration as the
// event being rescheduled, scored for desirability.
type AvailableSlot struct {
	Start  time.Time
	End    time.Time
	Score  float64
	Reason string
}

// ProposedResolution is a concrete move submitted for validation.
type ProposedResolution struct {
	EventID  string
	NewStart time.Time
	NewEnd   time.Time
}

// ValidationResult reports whether a proposed move introduces new
// conflicts. Warnings (weekend start, short turnaround) never affect
// validity; only new conflicts do.
type ValidationResult struct {
	Valid        bool
	NewConflicts []Conflict
	Warnings     []string
	Suggestions  []string
}

// AutoResolveStrategy selects among generated options during batch
// auto-resolution.
type AutoResolveStrategy string

const (
	// StrategyMinimizeDisruption picks the lowest-cost option that
	// actually moves something.
	StrategyMinimizeDisruption AutoResolveStrategy = "minimize-disruption"
	// StrategyPriorityBased picks the first option whose target is not
	// high priority.
	StrategyPriorityBased AutoResolveStrategy = "priority-based"
	// StrategyEarliestAvailable picks the option with the earliest
	// suggested start date.
	StrategyEarliestAvailable AutoResolveStrategy = "earliest-available"
)

// AutoResolveOptions configures a batch auto-resolution run.
type AutoResolveOptions struct {
	Strategy         AutoResolveStrategy
	MaxLookaheadDays int
	AllowWeekends    bool
	RespectPriority  bool
}

// Auto-resolution confidence levels. A pick that falls back to ignore
// or custom is a low-quality automated resolution.
const (
	ConfidenceNormal   = 0.8
	ConfidenceDegraded = 0.3
)

// AutoResolution is the outcome of auto-resolving one conflict.
// Alternatives carries the non-chosen options for presentation.
type AutoResolution struct {
	ConflictID   string
	Recommended  *ResolutionOption
	Alternatives []ResolutionOption
	Confidence   float64
}
