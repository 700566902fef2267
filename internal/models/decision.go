package models

// DecisionPayload is the unvalidated structure a reasoning backend returns
// for one turn. Nothing here is trusted: the decision policy re-checks every
// field before acting on it.
type DecisionPayload struct {
	Action               string `json:"action"`
	QuestionText         string `json:"question_text,omitempty"`
	SuggestedTimeSeconds int    `json:"suggested_time_seconds,omitempty"`
}

// DecisionKind discriminates the Decision union.
type DecisionKind string

const (
	DecisionAdvance     DecisionKind = "advance"
	DecisionFollowUp    DecisionKind = "follow_up"
	DecisionResumeProbe DecisionKind = "resume"
	DecisionComplete    DecisionKind = "complete"
)

// Decision is the flow engine's validated output for one turn. It is a
// transient value: the caller relays it to the candidate and persists the
// session changes it implies, but the decision itself is never stored.
//
// NextPresetIndex is the 1-based index of the preset question now pending;
// it is set only for DecisionAdvance. Follow-ups and resume probes keep the
// cursor where it is.
type Decision struct {
	Kind             DecisionKind `json:"action"`
	QuestionText     string       `json:"question_text,omitempty"`
	NextPresetIndex  int          `json:"next_index,omitempty"`
	SuggestedSeconds int          `json:"suggested_time_seconds,omitempty"`
}

// IsTerminal reports whether the decision ends the interview.
func (d Decision) IsTerminal() bool {
	return d.Kind == DecisionComplete
}
