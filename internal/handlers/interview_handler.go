package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aibuddy434-arch/SmartInterview/internal/middleware"
	"github.com/aibuddy434-arch/SmartInterview/internal/models"
	"github.com/aibuddy434-arch/SmartInterview/internal/questionbank"
	"github.com/aibuddy434-arch/SmartInterview/internal/repositories"
	"github.com/aibuddy434-arch/SmartInterview/internal/utils"
)

// InterviewHandler manages the interviewer-facing configuration endpoints.
type InterviewHandler struct {
	interviews *repositories.InterviewRepository
	bank       *questionbank.Bank
	logger     *zap.Logger
}

func NewInterviewHandler(interviews *repositories.InterviewRepository, bank *questionbank.Bank, logger *zap.Logger) *InterviewHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InterviewHandler{interviews: interviews, bank: bank, logger: logger}
}

func (h *InterviewHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.CreateInterviewRequest](r)
	claims := middleware.GetAuthClaims(r)

	questions := make([]models.PresetQuestion, 0, req.NumberOfQuestions)
	for i, q := range req.Questions {
		questions = append(questions, models.PresetQuestion{
			ID:                   uuid.NewString(),
			Position:             i,
			Text:                 q.Text,
			Tags:                 q.Tags,
			Source:               models.SourceManual,
			SuggestedTimeSeconds: q.SuggestedTimeSeconds,
		})
	}

	// Top up with generated questions when asked for more than were supplied.
	if req.GenerateQuestions && len(questions) < req.NumberOfQuestions {
		generated := h.bank.Generate(r.Context(), questionbank.GenerateRequest{
			JobRole:        req.JobRole,
			JobDescription: req.JobDescription,
			FocusAreas:     req.FocusAreas,
			Difficulty:     req.Difficulty,
			Count:          req.NumberOfQuestions - len(questions),
		})
		for _, q := range generated {
			q.Position = len(questions)
			questions = append(questions, q)
		}
	}

	cfg := &models.InterviewConfig{
		ID:                uuid.NewString(),
		JobRole:           req.JobRole,
		JobDescription:    req.JobDescription,
		Difficulty:        req.Difficulty,
		FocusAreas:        req.FocusAreas,
		TimeLimitSeconds:  req.TimeLimitSeconds,
		NumberOfQuestions: len(questions),
		CreatedBy:         claims.UserID,
		IsActive:          true,
		ShareToken:        uuid.NewString(),
		Questions:         questions,
	}
	if err := h.interviews.Create(cfg); err != nil {
		h.writeError(w, err)
		return
	}

	h.logger.Info("interview config created",
		zap.String("interview_id", cfg.ID),
		zap.String("created_by", claims.UserID),
		zap.Int("questions", len(cfg.Questions)))
	utils.JSON(w, http.StatusCreated, cfg)
}

func (h *InterviewHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetAuthClaims(r)
	configs, err := h.interviews.ListByOwner(claims.UserID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, configs)
}

func (h *InterviewHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetAuthClaims(r)
	cfg, err := h.interviews.GetByID(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	if cfg.CreatedBy != claims.UserID {
		h.writeError(w, repositories.ErrInterviewNotFound)
		return
	}
	utils.JSON(w, http.StatusOK, cfg)
}

func (h *InterviewHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.UpdateInterviewRequest](r)
	claims := middleware.GetAuthClaims(r)

	updates := map[string]interface{}{}
	if req.JobRole != nil {
		updates["job_role"] = *req.JobRole
	}
	if req.JobDescription != nil {
		updates["job_description"] = *req.JobDescription
	}
	if req.Difficulty != nil {
		updates["difficulty"] = *req.Difficulty
	}
	if req.FocusAreas != nil {
		updates["focus_areas"] = models.StringList(req.FocusAreas)
	}
	if req.TimeLimitSeconds != nil {
		updates["time_limit_seconds"] = *req.TimeLimitSeconds
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
			Code:    "empty_update",
			Message: "No fields to update",
		})
		return
	}

	cfg, err := h.interviews.Update(chi.URLParam(r, "id"), claims.UserID, updates)
	if err != nil {
		h.writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, cfg)
}

func (h *InterviewHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetAuthClaims(r)
	if err := h.interviews.Deactivate(chi.URLParam(r, "id"), claims.UserID); err != nil {
		h.writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, models.OK("Interview deactivated", nil))
}

func (h *InterviewHandler) AddQuestionsHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.AddQuestionsRequest](r)
	claims := middleware.GetAuthClaims(r)

	questions := make([]models.PresetQuestion, 0, len(req.Questions))
	for _, q := range req.Questions {
		questions = append(questions, models.PresetQuestion{
			ID:                   uuid.NewString(),
			Text:                 q.Text,
			Tags:                 q.Tags,
			Source:               models.SourceManual,
			SuggestedTimeSeconds: q.SuggestedTimeSeconds,
		})
	}

	cfg, err := h.interviews.AddQuestions(chi.URLParam(r, "id"), claims.UserID, questions)
	if err != nil {
		h.writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, cfg)
}

func (h *InterviewHandler) StatsHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetAuthClaims(r)
	stats, err := h.interviews.Stats(chi.URLParam(r, "id"), claims.UserID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, stats)
}

func (h *InterviewHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repositories.ErrInterviewNotFound), errors.Is(err, repositories.ErrNotOwner):
		// Non-owners get the same answer as a missing config.
		utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
			Code:    "not_found",
			Message: "Interview configuration not found",
		})
	default:
		h.logger.Error("interview operation failed", zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "internal_error",
			Message: "Something went wrong",
		})
	}
}
