package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// StringList stores a []string as a JSON column so the schema works on both
// Postgres and the SQLite test driver.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return errors.New("unsupported type for StringList")
}

// InterviewConfig is the interviewer-authored definition of one interview:
// job context, focus, difficulty, the ordered preset questions and the total
// time limit. Immutable once sessions run against it, except administratively.
type InterviewConfig struct {
	ID                string `gorm:"primaryKey;size:36" json:"id"`
	JobRole           string `gorm:"size:255;not null" json:"job_role"`
	JobDescription    string `gorm:"type:text;not null" json:"job_description"`
	Difficulty        string `gorm:"size:50;not null" json:"difficulty"`
	FocusAreas        StringList `gorm:"type:text;not null" json:"focus_areas"`
	TimeLimitSeconds  int    `gorm:"not null" json:"time_limit_seconds"`
	NumberOfQuestions int    `gorm:"not null" json:"number_of_questions"`
	CreatedBy         string `gorm:"size:36;index;not null" json:"created_by"`
	IsActive          bool   `gorm:"default:true" json:"is_active"`
	ShareToken        string `gorm:"size:64;uniqueIndex" json:"share_token"`

	Questions []PresetQuestion `gorm:"foreignKey:InterviewConfigID;constraint:OnDelete:CASCADE" json:"questions"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PresetQuestion is one stored question within an InterviewConfig. Position
// defines the default progression order.
type PresetQuestion struct {
	ID                   string     `gorm:"primaryKey;size:36" json:"id"`
	InterviewConfigID    string     `gorm:"size:36;index;not null" json:"-"`
	Position             int        `gorm:"not null" json:"position"`
	Text                 string     `gorm:"type:text;not null" json:"text"`
	Tags                 StringList `gorm:"type:text" json:"tags"`
	Source               string     `gorm:"size:50;not null;default:manual" json:"source"`
	SuggestedTimeSeconds int        `gorm:"default:120" json:"suggested_time_seconds"`
	CreatedAt            time.Time  `json:"created_at"`
}

// SuggestedSeconds returns the stored duration, defaulting when unset or out
// of the 60-180 authoring range.
func (q PresetQuestion) SuggestedSeconds() int {
	if q.SuggestedTimeSeconds < 60 || q.SuggestedTimeSeconds > 180 {
		return DefaultSuggestedSeconds
	}
	return q.SuggestedTimeSeconds
}
