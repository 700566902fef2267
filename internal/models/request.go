package models

import "strings"

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// implements the Validator interface used by the validation middleware
func (r *RegisterRequest) Validate() error {
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	if r.Email == "" || !strings.Contains(r.Email, "@") {
		return &ErrorResponse{Code: "invalid_email", Message: "A valid email is required"}
	}
	if len(r.Password) < 8 {
		return &ErrorResponse{Code: "weak_password", Message: "Password must be at least 8 characters"}
	}
	if strings.TrimSpace(r.FullName) == "" {
		return &ErrorResponse{Code: "missing_name", Message: "Full name is required"}
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	if r.Email == "" || r.Password == "" {
		return &ErrorResponse{Code: "missing_credentials", Message: "Email and password are required"}
	}
	return nil
}

// QuestionInput is a question supplied by the interviewer or requested from
// the question bank.
type QuestionInput struct {
	Text                 string   `json:"text"`
	Tags                 []string `json:"tags"`
	SuggestedTimeSeconds int      `json:"suggested_time_seconds"`
}

type CreateInterviewRequest struct {
	JobRole           string          `json:"job_role"`
	JobDescription    string          `json:"job_description"`
	Difficulty        string          `json:"difficulty"`
	FocusAreas        []string        `json:"focus_areas"`
	TimeLimitSeconds  int             `json:"time_limit_seconds"`
	NumberOfQuestions int             `json:"number_of_questions"`
	Questions         []QuestionInput `json:"questions"`
	GenerateQuestions bool            `json:"generate_questions"`
}

func (r *CreateInterviewRequest) Validate() error {
	if strings.TrimSpace(r.JobRole) == "" {
		return &ErrorResponse{Code: "missing_job_role", Message: "Job role is required"}
	}
	if strings.TrimSpace(r.JobDescription) == "" {
		return &ErrorResponse{Code: "missing_job_description", Message: "Job description is required"}
	}
	if !ValidDifficulty(r.Difficulty) {
		return &ErrorResponse{Code: "invalid_difficulty", Message: "Difficulty must be one of: easy, medium, hard"}
	}
	if !ValidFocusAreas(r.FocusAreas) {
		return &ErrorResponse{Code: "invalid_focus_areas", Message: "Focus areas must be one or more of: communication, technical, overall"}
	}
	if r.TimeLimitSeconds < 60 {
		return &ErrorResponse{Code: "invalid_time_limit", Message: "Time limit must be at least 60 seconds"}
	}
	if r.NumberOfQuestions < 1 {
		return &ErrorResponse{Code: "invalid_question_count", Message: "At least one question is required"}
	}
	if !r.GenerateQuestions && len(r.Questions) == 0 {
		return &ErrorResponse{Code: "missing_questions", Message: "Provide questions or set generate_questions"}
	}
	for _, q := range r.Questions {
		if strings.TrimSpace(q.Text) == "" {
			return &ErrorResponse{Code: "empty_question", Message: "Question text must not be empty"}
		}
	}
	return nil
}

type UpdateInterviewRequest struct {
	JobRole          *string  `json:"job_role"`
	JobDescription   *string  `json:"job_description"`
	Difficulty       *string  `json:"difficulty"`
	FocusAreas       []string `json:"focus_areas"`
	TimeLimitSeconds *int     `json:"time_limit_seconds"`
	IsActive         *bool    `json:"is_active"`
}

func (r *UpdateInterviewRequest) Validate() error {
	if r.Difficulty != nil && !ValidDifficulty(*r.Difficulty) {
		return &ErrorResponse{Code: "invalid_difficulty", Message: "Difficulty must be one of: easy, medium, hard"}
	}
	if r.FocusAreas != nil && !ValidFocusAreas(r.FocusAreas) {
		return &ErrorResponse{Code: "invalid_focus_areas", Message: "Unknown focus area"}
	}
	if r.TimeLimitSeconds != nil && *r.TimeLimitSeconds < 60 {
		return &ErrorResponse{Code: "invalid_time_limit", Message: "Time limit must be at least 60 seconds"}
	}
	return nil
}

type AddQuestionsRequest struct {
	Questions []QuestionInput `json:"questions"`
}

func (r *AddQuestionsRequest) Validate() error {
	if len(r.Questions) == 0 {
		return &ErrorResponse{Code: "missing_questions", Message: "At least one question is required"}
	}
	for _, q := range r.Questions {
		if strings.TrimSpace(q.Text) == "" {
			return &ErrorResponse{Code: "empty_question", Message: "Question text must not be empty"}
		}
	}
	return nil
}

type TTSRequest struct {
	Text  string `json:"text"`
	Voice string `json:"voice"`
}

func (r *TTSRequest) Validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return &ErrorResponse{Code: "missing_text", Message: "Text cannot be empty"}
	}
	return nil
}
