package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolutionStrategy_CostMultiplier(t *testing.T) {
	tests := []struct {
		strategy ResolutionStrategy
		expected float64
	}{
		{StrategyAdvance, 0.8},
		{StrategyPostpone, 1.0},
		{StrategyIgnore, 0.5},
		{StrategyCustom, 2.0},
		{ResolutionStrategy("unknown"), 1.0},
	}

	for _, tt := range tests {
		t.Run(string(tt.strategy), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.strategy.CostMultiplier())
		})
	}
}

func TestImpactForPriority(t *testing.T) {
	assert.Equal(t, ImpactHigh, ImpactForPriority(PriorityHigh))
	assert.Equal(t, ImpactMedium, ImpactForPriority(PriorityMedium))
	assert.Equal(t, ImpactLow, ImpactForPriority(PriorityLow))
	assert.Equal(t, ImpactMedium, ImpactForPriority(Priority("unknown")))
}

func TestResolutionOption_HasSuggestedDates(t *testing.T) {
	start := date(2025, time.February, 3)
	end := date(2025, time.February, 5)

	with := ResolutionOption{SuggestedStart: &start, SuggestedEnd: &end}
	without := ResolutionOption{Strategy: StrategyIgnore}

	assert.True(t, with.HasSuggestedDates())
	assert.False(t, without.HasSuggestedDates())
}
