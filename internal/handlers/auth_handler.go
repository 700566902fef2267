package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/aibuddy434-arch/SmartInterview/internal/middleware"
	"github.com/aibuddy434-arch/SmartInterview/internal/models"
	"github.com/aibuddy434-arch/SmartInterview/internal/repositories"
	"github.com/aibuddy434-arch/SmartInterview/internal/utils"
)

const tokenTTL = 24 * time.Hour

// AuthHandler manages interviewer authentication endpoints.
type AuthHandler struct {
	users     *repositories.UserRepository
	jwtSecret string
	logger    *zap.Logger
}

func NewAuthHandler(users *repositories.UserRepository, jwtSecret string, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{users: users, jwtSecret: jwtSecret, logger: logger}
}

func (h *AuthHandler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.RegisterRequest](r)

	if _, err := h.users.GetUserByEmail(req.Email); err == nil {
		utils.JSON(w, http.StatusConflict, models.ErrorResponse{
			Code:    "email_taken",
			Message: "An account with this email already exists",
		})
		return
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		h.internalError(w, "register", err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.internalError(w, "register", err)
		return
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		IsActive:     true,
	}
	if err := h.users.CreateUser(user); err != nil {
		h.internalError(w, "register", err)
		return
	}

	h.logger.Info("user registered", zap.String("user_id", user.ID))
	utils.JSON(w, http.StatusCreated, models.OK("Account created", map[string]interface{}{
		"id":        user.ID,
		"email":     user.Email,
		"full_name": user.FullName,
	}))
}

func (h *AuthHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.LoginRequest](r)

	user, err := h.users.GetUserByEmail(req.Email)
	if err != nil || !user.IsActive ||
		bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		utils.JSON(w, http.StatusUnauthorized, models.ErrorResponse{
			Code:    "invalid_credentials",
			Message: "Invalid email or password",
		})
		return
	}

	token, err := utils.GenerateToken(h.jwtSecret, user.ID, user.Email, tokenTTL)
	if err != nil {
		h.internalError(w, "login", err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"token":      token,
		"expires_in": int(tokenTTL.Seconds()),
		"user": map[string]interface{}{
			"id":        user.ID,
			"email":     user.Email,
			"full_name": user.FullName,
		},
	})
}

// MeHandler returns the authenticated user's profile.
func (h *AuthHandler) MeHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetAuthClaims(r)
	user, err := h.users.GetUserByID(claims.UserID)
	if err != nil {
		utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
			Code:    "user_not_found",
			Message: "User no longer exists",
		})
		return
	}
	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"id":        user.ID,
		"email":     user.Email,
		"full_name": user.FullName,
	})
}

func (h *AuthHandler) internalError(w http.ResponseWriter, op string, err error) {
	h.logger.Error("auth operation failed", zap.String("op", op), zap.Error(err))
	utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
		Code:    "internal_error",
		Message: "Something went wrong",
	})
}
