package models

import "time"

// Candidate is a person registered for one interview session. ResumeText is
// extracted once at registration; empty means no resume (the flow then never
// asks resume-linked questions).
type Candidate struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	Email      string    `gorm:"size:255;index;not null" json:"email"`
	Phone      string    `gorm:"size:50" json:"phone"`
	ResumePath string    `gorm:"size:500" json:"-"`
	ResumeText string    `gorm:"type:text" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

// InterviewSession tracks one candidate's run through an InterviewConfig.
//
// PresetCursor is the 0-based index of the preset question currently occupying
// the active slot (the one most recently asked). It only moves forward, and
// only when the flow engine advances to the next preset.
type InterviewSession struct {
	ID                string     `gorm:"primaryKey;size:36" json:"id"`
	SessionID         string     `gorm:"size:64;uniqueIndex;not null" json:"session_id"`
	InterviewConfigID string     `gorm:"size:36;index;not null" json:"interview_config_id"`
	CandidateID       string     `gorm:"size:36;index;not null" json:"candidate_id"`
	Status            string     `gorm:"size:50;not null;default:pending" json:"status"`
	PresetCursor      int        `gorm:"not null;default:0" json:"preset_cursor"`
	StartTime         *time.Time `json:"start_time,omitempty"`
	EndTime           *time.Time `json:"end_time,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// ResponseRecord is one candidate utterance. Append-only; never mutated after
// creation. QuestionNumber is the 1-based preset slot the utterance is
// attached to, QuestionText the literal question asked (which may be a
// generated follow-up rather than the preset text).
type ResponseRecord struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	SessionID      string    `gorm:"size:64;index;not null" json:"session_id"`
	QuestionNumber int       `gorm:"not null" json:"question_number"`
	QuestionText   string    `gorm:"type:text" json:"question_text"`
	QuestionKind   string    `gorm:"size:50;not null;default:preset" json:"question_kind"`
	Transcript     string    `gorm:"type:text" json:"transcript"`
	AudioPath      string    `gorm:"size:500" json:"-"`
	Confidence     float64   `json:"confidence,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Report is the persisted post-interview analysis for one session.
type Report struct {
	ID              string    `gorm:"primaryKey;size:36" json:"id"`
	SessionID       string    `gorm:"size:64;index;not null" json:"session_id"`
	CandidateID     string    `gorm:"size:36;not null" json:"candidate_id"`
	OverallScore    float64   `gorm:"not null" json:"overall_score"`
	Breakdown       string    `gorm:"type:text" json:"breakdown"`
	Summary         string    `gorm:"type:text" json:"summary"`
	Recommendations string    `gorm:"type:text" json:"recommendations"`
	CreatedAt       time.Time `json:"created_at"`
}
