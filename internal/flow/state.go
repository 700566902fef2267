package flow

// QA is one question/answer pair reconstructed from persisted responses.
type QA struct {
	Question       string
	Answer         string
	Kind           string // preset | follow_up | resume
	QuestionNumber int    // 1-based preset slot the utterance attaches to
}

// SessionState is everything the decision policy needs about one session at
// the moment a turn is evaluated. It is rebuilt from persisted state on every
// turn; nothing carries over in memory between turns, so a turn can be
// retried without corrupting progress.
type SessionState struct {
	PresetCursor int // 0-based index of the preset currently being asked
	History      []QA
	LastAnswer   string
	ResumeText   string
}

// followUpsUsed counts responses already attached to the current preset slot
// that were not answers to the preset itself. Derived from history because
// the policy keeps no state across turns.
func (s SessionState) followUpsUsed() int {
	n := 0
	for _, qa := range s.History {
		if qa.QuestionNumber == s.PresetCursor+1 && qa.Kind != "preset" {
			n++
		}
	}
	return n
}
