package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aibuddy434-arch/SmartInterview/internal/models"
	"github.com/aibuddy434-arch/SmartInterview/internal/prompts"
	"github.com/aibuddy434-arch/SmartInterview/internal/repositories"
)

// ErrSessionNotCompleted means a report was requested before the interview
// ended.
var ErrSessionNotCompleted = errors.New("session is not completed")

// JSONClient is the slice of the reasoning router the generator needs.
type JSONClient interface {
	CompleteJSON(ctx context.Context, prompt string, out interface{}) error
}

// Generator produces the post-interview assessment for a completed session.
// The reasoning backends write the assessment when available; a deterministic
// heuristic takes over when they are all down, so a report can always be
// produced.
type Generator struct {
	sessions   *repositories.SessionRepository
	candidates *repositories.CandidateRepository
	interviews *repositories.InterviewRepository
	reports    *repositories.ReportRepository
	client     JSONClient
	prompts    *prompts.PromptManager
	logger     *zap.Logger
}

func NewGenerator(
	sessions *repositories.SessionRepository,
	candidates *repositories.CandidateRepository,
	interviews *repositories.InterviewRepository,
	reports *repositories.ReportRepository,
	client JSONClient,
	pm *prompts.PromptManager,
	logger *zap.Logger,
) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		sessions:   sessions,
		candidates: candidates,
		interviews: interviews,
		reports:    reports,
		client:     client,
		prompts:    pm,
		logger:     logger,
	}
}

// Generate builds, persists and returns the report for a completed session.
// Idempotent: a second call returns the stored report.
func (g *Generator) Generate(ctx context.Context, sessionID string) (*models.Report, error) {
	if existing, err := g.reports.GetBySessionID(sessionID); err == nil {
		return existing, nil
	} else if !errors.Is(err, repositories.ErrReportNotFound) {
		return nil, err
	}

	session, err := g.sessions.GetBySessionID(sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != models.StatusCompleted {
		return nil, ErrSessionNotCompleted
	}

	cfg, err := g.interviews.GetByID(session.InterviewConfigID)
	if err != nil {
		return nil, err
	}
	responses, err := g.sessions.ListResponses(sessionID)
	if err != nil {
		return nil, err
	}

	assessment := g.assess(ctx, cfg, responses)

	breakdown, err := json.Marshal(assessment.Breakdown)
	if err != nil {
		return nil, err
	}
	recommendations, err := json.Marshal(assessment.Recommendations)
	if err != nil {
		return nil, err
	}

	report := &models.Report{
		ID:              uuid.NewString(),
		SessionID:       sessionID,
		CandidateID:     session.CandidateID,
		OverallScore:    assessment.OverallScore,
		Breakdown:       string(breakdown),
		Summary:         assessment.Summary,
		Recommendations: string(recommendations),
	}
	if err := g.reports.Save(report); err != nil {
		return nil, err
	}
	return report, nil
}

type assessment struct {
	OverallScore    float64            `json:"overall_score"`
	Breakdown       map[string]float64 `json:"breakdown"`
	Summary         string             `json:"summary"`
	Recommendations []string           `json:"recommendations"`
}

func (g *Generator) assess(ctx context.Context, cfg *models.InterviewConfig, responses []models.ResponseRecord) assessment {
	if g.client != nil && g.prompts != nil {
		prompt, err := g.prompts.BuildPrompt("report", "default", map[string]string{
			"JobRole":    cfg.JobRole,
			"FocusAreas": strings.Join(cfg.FocusAreas, ", "),
			"Transcript": buildTranscript(responses),
		})
		if err == nil {
			var a assessment
			if err := g.client.CompleteJSON(ctx, prompt, &a); err == nil && a.OverallScore > 0 {
				return a
			} else if err != nil {
				g.logger.Warn("AI assessment failed, using heuristic scoring", zap.Error(err))
			}
		}
	}
	return heuristicAssessment(cfg, responses)
}

func buildTranscript(responses []models.ResponseRecord) string {
	var b strings.Builder
	for i, rec := range responses {
		fmt.Fprintf(&b, "Q%d (%s): %s\nA%d: %s\n", i+1, rec.QuestionKind, rec.QuestionText, i+1, rec.Transcript)
	}
	return b.String()
}
