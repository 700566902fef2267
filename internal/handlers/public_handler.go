package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aibuddy434-arch/SmartInterview/internal/flow"
	"github.com/aibuddy434-arch/SmartInterview/internal/locks"
	"github.com/aibuddy434-arch/SmartInterview/internal/middleware"
	"github.com/aibuddy434-arch/SmartInterview/internal/models"
	"github.com/aibuddy434-arch/SmartInterview/internal/report"
	"github.com/aibuddy434-arch/SmartInterview/internal/repositories"
	"github.com/aibuddy434-arch/SmartInterview/internal/resume"
	"github.com/aibuddy434-arch/SmartInterview/internal/speech"
	"github.com/aibuddy434-arch/SmartInterview/internal/utils"
)

const maxUploadBytes = 25 << 20

// PublicHandler serves the candidate-facing endpoints: registration, the
// interview turn loop and the final report. No authentication; possession of
// an interview ID or session ID is the credential.
type PublicHandler struct {
	interviews *repositories.InterviewRepository
	candidates *repositories.CandidateRepository
	sessions   *repositories.SessionRepository
	engine     *flow.Engine
	reports    *report.Generator
	synth      speech.Synthesizer
	uploadDir  string
	logger     *zap.Logger
}

func NewPublicHandler(
	interviews *repositories.InterviewRepository,
	candidates *repositories.CandidateRepository,
	sessions *repositories.SessionRepository,
	engine *flow.Engine,
	reports *report.Generator,
	synth speech.Synthesizer,
	uploadDir string,
	logger *zap.Logger,
) *PublicHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if synth == nil {
		synth = speech.Noop{}
	}
	return &PublicHandler{
		interviews: interviews,
		candidates: candidates,
		sessions:   sessions,
		engine:     engine,
		reports:    reports,
		synth:      synth,
		uploadDir:  uploadDir,
		logger:     logger,
	}
}

// GetInterviewHandler returns what a candidate may see about an interview
// before registering. Question texts are withheld.
func (h *PublicHandler) GetInterviewHandler(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.interviews.GetByID(chi.URLParam(r, "id"))
	if err != nil || !cfg.IsActive {
		utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
			Code:    "not_found",
			Message: "Interview not found",
		})
		return
	}
	utils.JSON(w, http.StatusOK, publicInterviewView(cfg))
}

// GetInterviewByTokenHandler resolves a shareable invite link. The response
// carries the canonical id, which the registration endpoint expects.
func (h *PublicHandler) GetInterviewByTokenHandler(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.interviews.GetByShareToken(chi.URLParam(r, "token"))
	if err != nil || !cfg.IsActive {
		utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
			Code:    "not_found",
			Message: "Interview not found",
		})
		return
	}
	utils.JSON(w, http.StatusOK, publicInterviewView(cfg))
}

func publicInterviewView(cfg *models.InterviewConfig) map[string]interface{} {
	return map[string]interface{}{
		"id":                  cfg.ID,
		"job_role":            cfg.JobRole,
		"difficulty":          cfg.Difficulty,
		"focus_areas":         cfg.FocusAreas,
		"time_limit_seconds":  cfg.TimeLimitSeconds,
		"number_of_questions": cfg.NumberOfQuestions,
	}
}

// RegisterCandidateHandler creates a candidate and a pending session from a
// multipart form (name, email, phone, optional resume file). Resume text is
// extracted once here.
func (h *PublicHandler) RegisterCandidateHandler(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.interviews.GetByID(chi.URLParam(r, "id"))
	if err != nil || !cfg.IsActive {
		utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
			Code:    "not_found",
			Message: "Interview not found",
		})
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
			Code:    "invalid_form",
			Message: "Expected multipart form data",
		})
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	email := strings.TrimSpace(strings.ToLower(r.FormValue("email")))
	if name == "" || email == "" || !strings.Contains(email, "@") {
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
			Code:    "missing_fields",
			Message: "Name and a valid email are required",
		})
		return
	}

	candidate := &models.Candidate{
		ID:    uuid.NewString(),
		Name:  name,
		Email: email,
		Phone: strings.TrimSpace(r.FormValue("phone")),
	}

	if file, header, err := r.FormFile("resume"); err == nil {
		defer file.Close()
		path, text, err := h.storeResume(file, header, candidate.ID)
		if err != nil {
			h.logger.Warn("resume extraction failed, continuing without resume",
				zap.String("candidate_id", candidate.ID),
				zap.Error(err))
		} else {
			candidate.ResumePath = path
			candidate.ResumeText = text
		}
	}

	if err := h.candidates.Create(candidate); err != nil {
		h.writeError(w, err)
		return
	}

	session := &models.InterviewSession{
		ID:                uuid.NewString(),
		SessionID:         uuid.NewString(),
		InterviewConfigID: cfg.ID,
		CandidateID:       candidate.ID,
		Status:            models.StatusPending,
	}
	if err := h.sessions.Create(session); err != nil {
		h.writeError(w, err)
		return
	}

	h.logger.Info("candidate registered",
		zap.String("session_id", session.SessionID),
		zap.String("interview_id", cfg.ID),
		zap.Bool("has_resume", candidate.ResumeText != ""))
	utils.JSON(w, http.StatusCreated, map[string]interface{}{
		"session_id":   session.SessionID,
		"candidate_id": candidate.ID,
		"status":       session.Status,
	})
}

// StartSessionHandler moves a pending session to in_progress and hands the
// candidate the first preset question.
func (h *PublicHandler) StartSessionHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	session, err := h.sessions.Start(sessionID, time.Now())
	if err != nil {
		h.writeError(w, err)
		return
	}

	cfg, err := h.interviews.GetByID(session.InterviewConfigID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if len(cfg.Questions) == 0 {
		h.writeError(w, fmt.Errorf("interview %s has no questions", cfg.ID))
		return
	}

	first := cfg.Questions[0]
	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"session_id":         session.SessionID,
		"status":             session.Status,
		"time_limit_seconds": cfg.TimeLimitSeconds,
		"question": map[string]interface{}{
			"number":            1,
			"text":              first.Text,
			"kind":              models.KindPreset,
			"suggested_seconds": first.SuggestedSeconds(),
		},
	})
}

// GetSessionHandler returns the current state of a session: status, progress
// through the preset list and timing. Used by the candidate UI to resume
// after a reload.
func (h *PublicHandler) GetSessionHandler(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.GetBySessionID(chi.URLParam(r, "sessionID"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	cfg, err := h.interviews.GetByID(session.InterviewConfigID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	resp := map[string]interface{}{
		"session_id":         session.SessionID,
		"status":             session.Status,
		"time_limit_seconds": cfg.TimeLimitSeconds,
		"total_questions":    cfg.NumberOfQuestions,
		"start_time":         session.StartTime,
		"end_time":           session.EndTime,
	}
	if session.Status == models.StatusInProgress && session.PresetCursor < len(cfg.Questions) {
		current := cfg.Questions[session.PresetCursor]
		resp["question"] = map[string]interface{}{
			"number":            session.PresetCursor + 1,
			"text":              current.Text,
			"kind":              models.KindPreset,
			"suggested_seconds": current.SuggestedSeconds(),
		}
	}
	utils.JSON(w, http.StatusOK, resp)
}

// SubmitResponseHandler runs one interview turn: the answer (multipart form
// with optional audio) goes in, the next step comes out.
func (h *PublicHandler) SubmitResponseHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
			Code:    "invalid_form",
			Message: "Expected multipart form data",
		})
		return
	}

	in := flow.TurnInput{
		SessionID:      sessionID,
		QuestionText:   r.FormValue("question_text"),
		QuestionKind:   r.FormValue("question_kind"),
		LiveTranscript: r.FormValue("live_transcript"),
	}

	if file, header, err := r.FormFile("audio"); err == nil {
		defer file.Close()
		path, saveErr := h.storeAudio(file, header, sessionID)
		if saveErr != nil {
			h.logger.Warn("audio upload not stored", zap.String("session_id", sessionID), zap.Error(saveErr))
		} else {
			in.AudioPath = path
			in.AudioFilename = header.Filename
			if f, openErr := os.Open(path); openErr == nil {
				defer f.Close()
				in.Audio = f
			}
		}
	}

	result, err := h.engine.SubmitAnswer(r.Context(), in)
	if err != nil {
		h.writeError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, turnResponse(result))
}

func turnResponse(result *flow.TurnResult) map[string]interface{} {
	d := result.Decision
	resp := map[string]interface{}{
		"action":            string(d.Kind),
		"remaining_seconds": result.Budget.RemainingSeconds,
		"urgency":           string(result.Budget.Urgency),
		"recorded": map[string]interface{}{
			"question_number": result.Record.QuestionNumber,
			"transcript":      result.Record.Transcript,
		},
	}
	if d.IsTerminal() {
		resp["completed"] = true
		return resp
	}

	question := map[string]interface{}{
		"text":              d.QuestionText,
		"suggested_seconds": d.SuggestedSeconds,
	}
	switch d.Kind {
	case models.DecisionAdvance:
		question["number"] = d.NextPresetIndex
		question["kind"] = models.KindPreset
	case models.DecisionResumeProbe:
		question["number"] = result.Record.QuestionNumber
		question["kind"] = models.KindResume
	default:
		question["number"] = result.Record.QuestionNumber
		question["kind"] = models.KindFollowUp
	}
	resp["question"] = question
	return resp
}

func (h *PublicHandler) CompleteSessionHandler(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.Complete(chi.URLParam(r, "sessionID"), time.Now())
	if err != nil {
		h.writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, models.OK("Interview completed", map[string]interface{}{
		"session_id": session.SessionID,
		"status":     session.Status,
	}))
}

func (h *PublicHandler) CancelSessionHandler(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.Cancel(chi.URLParam(r, "sessionID"), time.Now())
	if err != nil {
		h.writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, models.OK("Interview cancelled", map[string]interface{}{
		"session_id": session.SessionID,
		"status":     session.Status,
	}))
}

func (h *PublicHandler) ListResponsesHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if _, err := h.sessions.GetBySessionID(sessionID); err != nil {
		h.writeError(w, err)
		return
	}
	records, err := h.sessions.ListResponses(sessionID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, records)
}

func (h *PublicHandler) GetReportHandler(w http.ResponseWriter, r *http.Request) {
	rep, err := h.reports.Generate(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, rep)
}

// TTSHandler renders question text to audio for playback.
func (h *PublicHandler) TTSHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.TTSRequest](r)

	audio, contentType, err := h.synth.Synthesize(r.Context(), req.Text)
	if err != nil {
		if errors.Is(err, speech.ErrUnavailable) {
			utils.JSON(w, http.StatusServiceUnavailable, models.ErrorResponse{
				Code:    "tts_unavailable",
				Message: "Text-to-speech is not configured",
			})
			return
		}
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(audio)
}

func (h *PublicHandler) storeResume(file multipart.File, header *multipart.FileHeader, candidateID string) (string, string, error) {
	if !resume.Supported(header.Filename) {
		return "", "", resume.ErrUnsupportedFormat
	}
	path, err := h.storeUpload(file, "resumes", candidateID+strings.ToLower(filepath.Ext(header.Filename)))
	if err != nil {
		return "", "", err
	}
	text, err := resume.Extract(path)
	if err != nil {
		return path, "", err
	}
	return path, text, nil
}

func (h *PublicHandler) storeAudio(file multipart.File, header *multipart.FileHeader, sessionID string) (string, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext == "" {
		ext = ".webm"
	}
	return h.storeUpload(file, "audio", fmt.Sprintf("%s-%s%s", sessionID, uuid.NewString(), ext))
}

func (h *PublicHandler) storeUpload(file multipart.File, subdir, filename string) (string, error) {
	dir := filepath.Join(h.uploadDir, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, filename)
	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, file); err != nil {
		return "", err
	}
	return path, nil
}

func (h *PublicHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repositories.ErrSessionNotFound),
		errors.Is(err, repositories.ErrInterviewNotFound),
		errors.Is(err, repositories.ErrCandidateNotFound):
		utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
			Code:    "not_found",
			Message: "Not found",
		})
	case errors.Is(err, repositories.ErrInvalidTransition), errors.Is(err, flow.ErrSessionNotActive):
		utils.JSON(w, http.StatusConflict, models.ErrorResponse{
			Code:    "invalid_state",
			Message: "The session is not in a state that allows this operation",
		})
	case errors.Is(err, report.ErrSessionNotCompleted):
		utils.JSON(w, http.StatusConflict, models.ErrorResponse{
			Code:    "session_not_completed",
			Message: "The report is available once the interview is completed",
		})
	case errors.Is(err, locks.ErrTurnInFlight), errors.Is(err, repositories.ErrConcurrentAdvance):
		utils.JSON(w, http.StatusConflict, models.ErrorResponse{
			Code:    "turn_in_flight",
			Message: "A response for this session is already being processed",
		})
	default:
		h.logger.Error("public operation failed", zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "internal_error",
			Message: "Something went wrong",
		})
	}
}
