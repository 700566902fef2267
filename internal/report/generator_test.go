package report

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aibuddy434-arch/SmartInterview/internal/models"
	"github.com/aibuddy434-arch/SmartInterview/internal/prompts"
	"github.com/aibuddy434-arch/SmartInterview/internal/repositories"
	"github.com/aibuddy434-arch/SmartInterview/internal/testhelpers"
)

type stubJSONClient struct {
	raw string
	err error
}

func (s stubJSONClient) CompleteJSON(ctx context.Context, prompt string, out interface{}) error {
	if s.err != nil {
		return s.err
	}
	return json.Unmarshal([]byte(s.raw), out)
}

type reportFixture struct {
	generator *Generator
	sessionID string
}

func setupReport(t *testing.T, client JSONClient, completed bool, transcripts []string) *reportFixture {
	t.Helper()
	db := testhelpers.SetupTestDB(t)

	interviews := &repositories.InterviewRepository{DB: db}
	candidates := &repositories.CandidateRepository{DB: db}
	sessions := &repositories.SessionRepository{DB: db}
	reports := &repositories.ReportRepository{DB: db}

	cfg := &models.InterviewConfig{
		ID:                uuid.NewString(),
		JobRole:           "Software Engineer",
		JobDescription:    "Write code.",
		Difficulty:        models.DifficultyMedium,
		FocusAreas:        models.StringList{models.FocusTechnical},
		TimeLimitSeconds:  600,
		NumberOfQuestions: len(transcripts),
		CreatedBy:         uuid.NewString(),
		ShareToken:        uuid.NewString(),
	}
	require.NoError(t, interviews.Create(cfg))

	candidate := &models.Candidate{ID: uuid.NewString(), Name: "Ada", Email: "ada@example.com"}
	require.NoError(t, candidates.Create(candidate))

	now := time.Now()
	sessionID := uuid.NewString()
	status := models.StatusInProgress
	if completed {
		status = models.StatusCompleted
	}
	require.NoError(t, sessions.Create(&models.InterviewSession{
		ID:                uuid.NewString(),
		SessionID:         sessionID,
		InterviewConfigID: cfg.ID,
		CandidateID:       candidate.ID,
		Status:            status,
		StartTime:         &now,
	}))

	for i, transcript := range transcripts {
		require.NoError(t, db.Create(&models.ResponseRecord{
			ID:             uuid.NewString(),
			SessionID:      sessionID,
			QuestionNumber: i + 1,
			QuestionText:   "question",
			QuestionKind:   models.KindPreset,
			Transcript:     transcript,
		}).Error)
	}

	pm, err := prompts.NewPromptManager()
	require.NoError(t, err)

	return &reportFixture{
		generator: NewGenerator(sessions, candidates, interviews, reports, client, pm, nil),
		sessionID: sessionID,
	}
}

func TestGenerateUsesAIAssessment(t *testing.T) {
	client := stubJSONClient{raw: `{
		"overall_score": 82.5,
		"breakdown": {"technical": 85, "communication": 80},
		"summary": "Strong candidate.",
		"recommendations": ["Hire."]
	}`}
	f := setupReport(t, client, true, []string{"I have built many distributed systems in Go."})

	report, err := f.generator.Generate(context.Background(), f.sessionID)
	require.NoError(t, err)
	assert.Equal(t, 82.5, report.OverallScore)
	assert.Equal(t, "Strong candidate.", report.Summary)
	assert.Contains(t, report.Breakdown, "technical")
}

func TestGenerateHeuristicFallback(t *testing.T) {
	client := stubJSONClient{err: errors.New("all backends down")}
	f := setupReport(t, client, true, []string{
		"I enjoy programming and testing, and I debugged a gnarly algorithm issue last quarter with careful code review.",
		models.NoResponseTranscript,
	})

	report, err := f.generator.Generate(context.Background(), f.sessionID)
	require.NoError(t, err)
	assert.Positive(t, report.OverallScore)
	assert.NotEmpty(t, report.Summary)

	var breakdown map[string]float64
	require.NoError(t, json.Unmarshal([]byte(report.Breakdown), &breakdown))
	assert.Equal(t, 50.0, breakdown["completeness"], "one of two answers was empty")
}

func TestGenerateIsIdempotent(t *testing.T) {
	client := stubJSONClient{err: errors.New("down")}
	f := setupReport(t, client, true, []string{"a substantial answer about projects"})

	first, err := f.generator.Generate(context.Background(), f.sessionID)
	require.NoError(t, err)
	second, err := f.generator.Generate(context.Background(), f.sessionID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestGenerateRequiresCompletedSession(t *testing.T) {
	f := setupReport(t, stubJSONClient{}, false, []string{"answer"})

	_, err := f.generator.Generate(context.Background(), f.sessionID)
	assert.ErrorIs(t, err, ErrSessionNotCompleted)
}

func TestGenerateUnknownSession(t *testing.T) {
	f := setupReport(t, stubJSONClient{}, true, nil)

	_, err := f.generator.Generate(context.Background(), "missing")
	assert.ErrorIs(t, err, repositories.ErrSessionNotFound)
}

func TestHeuristicNoResponses(t *testing.T) {
	a := heuristicAssessment(&models.InterviewConfig{JobRole: "Engineer"}, nil)
	assert.Zero(t, a.OverallScore)
	assert.NotEmpty(t, a.Recommendations)
}
