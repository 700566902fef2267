package flow

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aibuddy434-arch/SmartInterview/internal/llm"
	"github.com/aibuddy434-arch/SmartInterview/internal/metrics"
	"github.com/aibuddy434-arch/SmartInterview/internal/models"
	"github.com/aibuddy434-arch/SmartInterview/internal/repositories"
	"github.com/aibuddy434-arch/SmartInterview/internal/speech"
)

var (
	// ErrSessionNotActive is returned when a turn is submitted against a
	// session that is not in_progress.
	ErrSessionNotActive = errors.New("session is not in progress")
)

// A live transcript shorter than this is treated as noise and ignored.
const minUsableTranscriptLen = 5

// DecisionClient is the slice of the reasoning router the engine needs.
type DecisionClient interface {
	CompleteDecision(ctx context.Context, prompt string) (*models.DecisionPayload, error)
}

// Locker serialises turns per session. A nil Locker disables locking (single
// instance deployments and tests).
type Locker interface {
	Acquire(ctx context.Context, sessionID string) (func(), error)
}

// TurnInput carries one submitted answer.
type TurnInput struct {
	SessionID      string
	QuestionText   string // question the candidate was answering; defaults to the current preset
	QuestionKind   string // preset | follow_up | resume; defaults to preset
	LiveTranscript string // client-side transcript, preferred when usable
	Audio          io.Reader
	AudioFilename  string
	AudioPath      string
	Confidence     float64
}

// TurnResult is the committed outcome of one turn.
type TurnResult struct {
	Decision models.Decision
	Record   models.ResponseRecord
	Budget   Budget
}

// Engine runs one interview turn end to end: record the answer, rebuild the
// session state from persisted data, consult the reasoning backends, validate
// their suggestion against the policy and commit everything atomically.
type Engine struct {
	sessions    *repositories.SessionRepository
	interviews  *repositories.InterviewRepository
	candidates  *repositories.CandidateRepository
	router      DecisionClient
	policy      *Policy
	locker      Locker
	transcriber speech.Transcriber
	tuning      Tuning
	logger      *zap.Logger
	now         func() time.Time
}

func NewEngine(
	sessions *repositories.SessionRepository,
	interviews *repositories.InterviewRepository,
	candidates *repositories.CandidateRepository,
	router DecisionClient,
	locker Locker,
	transcriber speech.Transcriber,
	tuning Tuning,
	logger *zap.Logger,
) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if transcriber == nil {
		transcriber = speech.Noop{}
	}
	return &Engine{
		sessions:    sessions,
		interviews:  interviews,
		candidates:  candidates,
		router:      router,
		policy:      NewPolicy(tuning),
		locker:      locker,
		transcriber: transcriber,
		tuning:      tuning,
		logger:      logger,
		now:         time.Now,
	}
}

// SubmitAnswer processes one turn. On success the response record and any
// cursor advance or completion have been committed together; on error nothing
// was persisted.
func (e *Engine) SubmitAnswer(ctx context.Context, in TurnInput) (*TurnResult, error) {
	if e.locker != nil {
		release, err := e.locker.Acquire(ctx, in.SessionID)
		if err != nil {
			return nil, err
		}
		defer release()
	}

	session, err := e.sessions.GetBySessionID(in.SessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != models.StatusInProgress || session.StartTime == nil {
		return nil, ErrSessionNotActive
	}

	cfg, err := e.interviews.GetByID(session.InterviewConfigID)
	if err != nil {
		return nil, err
	}
	candidate, err := e.candidates.GetByID(session.CandidateID)
	if err != nil {
		return nil, err
	}

	cursor := session.PresetCursor
	record := e.buildRecord(ctx, in, cursor, cfg)

	prior, err := e.sessions.ListResponses(in.SessionID)
	if err != nil {
		return nil, err
	}

	st := SessionState{
		PresetCursor: cursor,
		History:      buildHistory(prior, record, cfg),
		LastAnswer:   record.Transcript,
		ResumeText:   candidate.ResumeText,
	}

	elapsed := int(e.now().Sub(*session.StartTime).Seconds())
	presetsRemaining := len(cfg.Questions) - (cursor + 1)
	if presetsRemaining < 0 {
		presetsRemaining = 0
	}
	budget := ComputeBudget(elapsed, cfg.TimeLimitSeconds, presetsRemaining, e.tuning)

	payload := e.requestDecision(ctx, st, cfg, budget)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	decision := e.policy.Decide(payload, st, cfg.Questions, budget)

	newCursor := cursor
	complete := false
	switch decision.Kind {
	case models.DecisionAdvance:
		newCursor = decision.NextPresetIndex - 1
	case models.DecisionComplete:
		complete = true
	}

	if err := e.sessions.CommitTurn(&record, cursor, newCursor, complete, e.now()); err != nil {
		return nil, err
	}
	metrics.RecordDecision(string(decision.Kind))

	e.logger.Info("turn committed",
		zap.String("session_id", in.SessionID),
		zap.String("decision", string(decision.Kind)),
		zap.Int("preset_cursor", newCursor),
		zap.String("urgency", string(budget.Urgency)),
		zap.Int("remaining_seconds", budget.RemainingSeconds))

	return &TurnResult{Decision: decision, Record: record, Budget: budget}, nil
}

// buildRecord assembles the response record for this turn. The preset slot
// comes from the session cursor, never from the client, so a stale client
// cannot attach an answer to the wrong question.
func (e *Engine) buildRecord(ctx context.Context, in TurnInput, cursor int, cfg *models.InterviewConfig) models.ResponseRecord {
	kind := in.QuestionKind
	switch kind {
	case models.KindPreset, models.KindFollowUp, models.KindResume:
	default:
		kind = models.KindPreset
	}

	text := strings.TrimSpace(in.QuestionText)
	if text == "" && cursor < len(cfg.Questions) {
		text = cfg.Questions[cursor].Text
	}

	return models.ResponseRecord{
		ID:             uuid.NewString(),
		SessionID:      in.SessionID,
		QuestionNumber: cursor + 1,
		QuestionText:   text,
		QuestionKind:   kind,
		Transcript:     e.resolveTranscript(ctx, in),
		AudioPath:      in.AudioPath,
		Confidence:     in.Confidence,
	}
}

// resolveTranscript prefers the client-side live transcript; server-side
// transcription is the backup when the client sent none. A turn never fails
// for lack of a transcript.
func (e *Engine) resolveTranscript(ctx context.Context, in TurnInput) string {
	live := strings.TrimSpace(in.LiveTranscript)
	if len(live) > minUsableTranscriptLen {
		return live
	}

	if in.Audio != nil {
		text, err := e.transcriber.Transcribe(ctx, in.Audio, in.AudioFilename)
		if err != nil {
			e.logger.Warn("server-side transcription failed",
				zap.String("session_id", in.SessionID),
				zap.Error(err))
		} else if usable(text) {
			return strings.TrimSpace(text)
		}
	}

	return models.NoResponseTranscript
}

// usable filters transcription artifacts like "[inaudible]" or "[music]".
func usable(text string) bool {
	text = strings.TrimSpace(text)
	return text != "" && !strings.HasPrefix(text, "[")
}

// requestDecision consults the reasoning backends. Total backend failure is an
// expected condition and yields a nil payload for the policy's deterministic
// fallback; only caller cancellation aborts the turn.
func (e *Engine) requestDecision(ctx context.Context, st SessionState, cfg *models.InterviewConfig, budget Budget) *models.DecisionPayload {
	prompt := BuildDecisionPrompt(st, cfg, budget)
	payload, err := e.router.CompleteDecision(ctx, prompt)
	if err != nil {
		if !errors.Is(err, llm.ErrAllBackendsFailed) && ctx.Err() == nil {
			e.logger.Warn("decision request failed", zap.Error(err))
		}
		return nil
	}
	return payload
}

// buildHistory reconstructs the conversation from persisted responses plus
// the answer just given. Records missing question text fall back to the
// preset text for their slot.
func buildHistory(prior []models.ResponseRecord, current models.ResponseRecord, cfg *models.InterviewConfig) []QA {
	history := make([]QA, 0, len(prior)+1)
	for _, rec := range prior {
		history = append(history, toQA(rec, cfg))
	}
	return append(history, toQA(current, cfg))
}

func toQA(rec models.ResponseRecord, cfg *models.InterviewConfig) QA {
	question := rec.QuestionText
	if question == "" {
		if i := rec.QuestionNumber - 1; i >= 0 && i < len(cfg.Questions) {
			question = cfg.Questions[i].Text
		}
	}
	return QA{
		Question:       question,
		Answer:         rec.Transcript,
		Kind:           rec.QuestionKind,
		QuestionNumber: rec.QuestionNumber,
	}
}
