package flow

// Urgency classifies how close the interview is to its time limit.
type Urgency string

const (
	UrgencyNormal   Urgency = "NORMAL"
	UrgencyLimited  Urgency = "LIMITED"
	UrgencyUrgent   Urgency = "URGENT"
	UrgencyCritical Urgency = "CRITICAL"
)

// Tuning holds the adjustable constants of the decision policy. Values come
// from configuration; the defaults below are the ones the policy was
// calibrated with.
type Tuning struct {
	MinSuggestedSeconds   int     // lower clamp for generated question durations
	MaxSuggestedSeconds   int     // upper clamp for generated question durations
	MaxFollowUpsPerPreset int     // hard cap on follow-ups per preset slot
	FollowUpCutoffSeconds int     // below this remaining time, no follow-ups at all
	CriticalSeconds       int     // urgency tier thresholds
	UrgentSeconds         int
	LimitedSeconds        int
	PresetReserveSeconds  int     // reserved per remaining preset question
	FollowUpBufferSeconds int     // safety buffer beyond the preset reserve
	AllotmentRatio        float64 // share of remaining time spread over presets
}

func DefaultTuning() Tuning {
	return Tuning{
		MinSuggestedSeconds:   30,
		MaxSuggestedSeconds:   180,
		MaxFollowUpsPerPreset: 1,
		FollowUpCutoffSeconds: 120,
		CriticalSeconds:       60,
		UrgentSeconds:         120,
		LimitedSeconds:        180,
		PresetReserveSeconds:  60,
		FollowUpBufferSeconds: 30,
		AllotmentRatio:        0.7,
	}
}

// Budget is the time-derived envelope governing how aggressively a turn may
// adapt versus rush to completion.
type Budget struct {
	RemainingSeconds      int
	Urgency               Urgency
	MaxFollowUpsPerPreset int
	HasTimeForFollowUp    bool
	PerPresetAllotment    float64
}

// ComputeBudget derives the turn budget from elapsed wall-clock time. Pure:
// identical inputs always produce identical outputs.
func ComputeBudget(elapsedSeconds, totalSeconds, presetsRemaining int, t Tuning) Budget {
	remaining := totalSeconds - elapsedSeconds
	if remaining < 0 {
		remaining = 0
	}

	urgency := UrgencyNormal
	switch {
	case remaining < t.CriticalSeconds:
		urgency = UrgencyCritical
	case remaining < t.UrgentSeconds:
		urgency = UrgencyUrgent
	case remaining < t.LimitedSeconds:
		urgency = UrgencyLimited
	}

	maxFollowUps := t.MaxFollowUpsPerPreset
	if remaining < t.FollowUpCutoffSeconds {
		maxFollowUps = 0
	}

	var allotment float64
	if presetsRemaining > 0 {
		allotment = t.AllotmentRatio * float64(remaining) / float64(presetsRemaining)
	}

	return Budget{
		RemainingSeconds:      remaining,
		Urgency:               urgency,
		MaxFollowUpsPerPreset: maxFollowUps,
		HasTimeForFollowUp:    remaining > presetsRemaining*t.PresetReserveSeconds+t.FollowUpBufferSeconds,
		PerPresetAllotment:    allotment,
	}
}
