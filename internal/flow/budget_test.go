package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeBudgetUrgencyTiers(t *testing.T) {
	tuning := DefaultTuning()
	tests := []struct {
		name      string
		remaining int
		want      Urgency
	}{
		{"plenty of time", 600, UrgencyNormal},
		{"just inside limited", 179, UrgencyLimited},
		{"limited lower edge", 120, UrgencyLimited},
		{"urgent", 119, UrgencyUrgent},
		{"critical", 59, UrgencyCritical},
		{"overrun", 0, UrgencyCritical},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := ComputeBudget(1000-tt.remaining, 1000, 3, tuning)
			assert.Equal(t, tt.want, b.Urgency)
			assert.Equal(t, tt.remaining, b.RemainingSeconds)
		})
	}
}

func TestComputeBudgetFollowUpCutoff(t *testing.T) {
	tuning := DefaultTuning()

	b := ComputeBudget(0, 600, 3, tuning)
	assert.Equal(t, 1, b.MaxFollowUpsPerPreset)

	// Below the cutoff no follow-ups are allowed at all.
	b = ComputeBudget(500, 600, 1, tuning)
	assert.Equal(t, 0, b.MaxFollowUpsPerPreset)
}

func TestComputeBudgetHasTimeForFollowUp(t *testing.T) {
	tuning := DefaultTuning()

	// 300s remaining, 2 presets left: 300 > 2*60+30.
	b := ComputeBudget(300, 600, 2, tuning)
	assert.True(t, b.HasTimeForFollowUp)

	// 45s remaining with one preset left: 45 <= 60+30.
	b = ComputeBudget(555, 600, 1, tuning)
	assert.False(t, b.HasTimeForFollowUp)
}

func TestComputeBudgetNeverNegative(t *testing.T) {
	b := ComputeBudget(700, 600, 0, DefaultTuning())
	assert.Equal(t, 0, b.RemainingSeconds)
	assert.Equal(t, UrgencyCritical, b.Urgency)
	assert.Zero(t, b.PerPresetAllotment)
}

func TestComputeBudgetAllotment(t *testing.T) {
	b := ComputeBudget(0, 600, 3, DefaultTuning())
	assert.InDelta(t, 0.7*600/3, b.PerPresetAllotment, 0.001)
}

func TestComputeBudgetIsDeterministic(t *testing.T) {
	a := ComputeBudget(123, 600, 2, DefaultTuning())
	b := ComputeBudget(123, 600, 2, DefaultTuning())
	assert.Equal(t, a, b)
}
