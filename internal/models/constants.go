package models

// Session statuses
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
	StatusExpired    = "expired"
)

// Focus areas
const (
	FocusCommunication = "communication"
	FocusTechnical     = "technical"
	FocusOverall       = "overall"
)

// Difficulty levels
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Question provenance
const (
	SourceManual   = "manual"
	SourceAI       = "ai"
	SourceTemplate = "template"
	SourceFallback = "fallback"
)

// Question kinds recorded against a response
const (
	KindPreset   = "preset"
	KindFollowUp = "follow_up"
	KindResume   = "resume"
)

// Action labels the reasoning backend may return
const (
	ActionPreset   = "preset"
	ActionFollowUp = "follow_up"
	ActionResume   = "resume"
	ActionComplete = "complete"
)

// DefaultSuggestedSeconds is used when a preset question carries no duration.
const DefaultSuggestedSeconds = 120

// NoResponseTranscript is stored when neither the client transcript nor the
// transcription service produced usable text.
const NoResponseTranscript = "[No response recorded]"

// ValidFocusAreas reports whether every entry is a known focus area.
func ValidFocusAreas(areas []string) bool {
	if len(areas) == 0 {
		return false
	}
	for _, a := range areas {
		switch a {
		case FocusCommunication, FocusTechnical, FocusOverall:
		default:
			return false
		}
	}
	return true
}

// ValidDifficulty reports whether d is a known difficulty level.
func ValidDifficulty(d string) bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}
