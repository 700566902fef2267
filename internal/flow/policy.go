package flow

import (
	"strings"

	"github.com/aibuddy434-arch/SmartInterview/internal/models"
)

// Policy turns a raw, untrusted backend payload into a validated Decision.
// It enforces the hard business rules no matter what the backend returned:
// presets are never skipped, the interview never ends early, follow-ups are
// capped, and generated question durations stay inside the budget.
//
// Decide is a pure function of (payload, state, presets, budget); the same
// inputs always produce the same decision.
type Policy struct {
	tuning Tuning
}

func NewPolicy(t Tuning) *Policy {
	return &Policy{tuning: t}
}

func (p *Policy) Decide(payload *models.DecisionPayload, st SessionState, presets []models.PresetQuestion, budget Budget) models.Decision {
	// Rule 1: no payload, or an action we don't recognise.
	if payload == nil {
		return p.fallback(st, presets)
	}
	action := strings.ToLower(strings.TrimSpace(payload.Action))

	hasRemaining := st.PresetCursor+1 < len(presets)

	switch action {
	case models.ActionComplete:
		// Rule 2: never complete while mandatory questions are outstanding.
		if hasRemaining {
			return p.fallback(st, presets)
		}
		return models.Decision{Kind: models.DecisionComplete}

	case models.ActionPreset:
		// Rule 5: advance through the preset list (or complete when done).
		return p.fallback(st, presets)

	case models.ActionFollowUp, models.ActionResume:
		// Rule 3: a generated question needs text.
		if strings.TrimSpace(payload.QuestionText) == "" {
			return p.fallback(st, presets)
		}
		// Budget override and per-slot cap. The cap is derived from history,
		// not in-memory state, so retried turns count correctly.
		if budget.MaxFollowUpsPerPreset == 0 || st.followUpsUsed() >= budget.MaxFollowUpsPerPreset {
			return p.fallback(st, presets)
		}
		kind := models.DecisionFollowUp
		if action == models.ActionResume && st.ResumeText != "" {
			kind = models.DecisionResumeProbe
		}
		return models.Decision{
			Kind:             kind,
			QuestionText:     strings.TrimSpace(payload.QuestionText),
			SuggestedSeconds: p.clampSeconds(payload.SuggestedTimeSeconds, budget),
		}

	default:
		// Rule 1 again: unknown action label.
		return p.fallback(st, presets)
	}
}

// fallback is rule 4: emit the next preset question, or complete when the
// preset list is exhausted. This is also the degraded path when every
// reasoning backend failed, so it must be fully deterministic.
func (p *Policy) fallback(st SessionState, presets []models.PresetQuestion) models.Decision {
	next := st.PresetCursor + 1
	if next < len(presets) {
		return models.Decision{
			Kind:             models.DecisionAdvance,
			QuestionText:     presets[next].Text,
			NextPresetIndex:  next + 1, // 1-based
			SuggestedSeconds: presets[next].SuggestedSeconds(),
		}
	}
	return models.Decision{Kind: models.DecisionComplete}
}

// clampSeconds bounds a backend-suggested duration to the configured range,
// then caps it so a question is never scheduled past the end of the
// interview.
func (p *Policy) clampSeconds(seconds int, budget Budget) int {
	if seconds <= 0 {
		seconds = models.DefaultSuggestedSeconds
	}
	if seconds < p.tuning.MinSuggestedSeconds {
		seconds = p.tuning.MinSuggestedSeconds
	}
	if seconds > p.tuning.MaxSuggestedSeconds {
		seconds = p.tuning.MaxSuggestedSeconds
	}
	if seconds > budget.RemainingSeconds {
		seconds = budget.RemainingSeconds
	}
	return seconds
}
