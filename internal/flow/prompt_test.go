package flow

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aibuddy434-arch/SmartInterview/internal/models"
)

func promptConfig() *models.InterviewConfig {
	return &models.InterviewConfig{
		JobRole:        "Backend Engineer",
		JobDescription: "Design and operate Go services.",
		FocusAreas:     models.StringList{"technical", "communication"},
		Questions: []models.PresetQuestion{
			{Position: 0, Text: "Tell me about yourself."},
			{Position: 1, Text: "Describe a hard bug you fixed."},
			{Position: 2, Text: "How do you design an API?"},
		},
	}
}

func TestBuildDecisionPromptIncludesContext(t *testing.T) {
	st := SessionState{
		PresetCursor: 0,
		History:      []QA{{Question: "Tell me about yourself.", Answer: "I build services.", Kind: "preset", QuestionNumber: 1}},
		LastAnswer:   "I build services.",
	}
	prompt := BuildDecisionPrompt(st, promptConfig(), roomyBudget())

	assert.Contains(t, prompt, "Backend Engineer")
	assert.Contains(t, prompt, "technical, communication")
	assert.Contains(t, prompt, "I build services.")
	assert.Contains(t, prompt, "Describe a hard bug you fixed.")
	assert.Contains(t, prompt, "600 seconds remain")
}

func TestBuildDecisionPromptOmitsResumeWhenAbsent(t *testing.T) {
	st := SessionState{PresetCursor: 0}
	prompt := BuildDecisionPrompt(st, promptConfig(), roomyBudget())

	assert.NotContains(t, prompt, "resume summary")
	assert.NotContains(t, prompt, `"resume"`)
}

func TestBuildDecisionPromptOffersResumeActionWhenPresent(t *testing.T) {
	st := SessionState{PresetCursor: 0, ResumeText: "10 years of Go"}
	prompt := BuildDecisionPrompt(st, promptConfig(), roomyBudget())

	assert.Contains(t, prompt, "10 years of Go")
	assert.Contains(t, prompt, `"resume"`)
}

func TestBuildDecisionPromptUrgencyGuidance(t *testing.T) {
	budget := roomyBudget()
	budget.MaxFollowUpsPerPreset = 0
	budget.Urgency = UrgencyCritical
	budget.RemainingSeconds = 40

	prompt := BuildDecisionPrompt(SessionState{PresetCursor: 0}, promptConfig(), budget)

	assert.Contains(t, prompt, "do NOT propose follow-up")
}

func TestBuildDecisionPromptNoRemainingPresets(t *testing.T) {
	prompt := BuildDecisionPrompt(SessionState{PresetCursor: 2}, promptConfig(), roomyBudget())
	assert.Contains(t, prompt, "None")
}

func TestBuildDecisionPromptIsPure(t *testing.T) {
	st := SessionState{
		PresetCursor: 1,
		History:      []QA{{Question: "q", Answer: strings.Repeat("a", 500)}},
		LastAnswer:   "answer",
		ResumeText:   strings.Repeat("r", 2000),
	}
	cfg := promptConfig()
	budget := roomyBudget()

	first := BuildDecisionPrompt(st, cfg, budget)
	assert.Equal(t, first, BuildDecisionPrompt(st, cfg, budget))
}
