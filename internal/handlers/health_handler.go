package handlers

import (
	"net/http"

	"github.com/aibuddy434-arch/SmartInterview/internal/utils"
)

// HealthHandler reports liveness plus the configured reasoning backends.
type HealthHandler struct {
	backends []string
}

func NewHealthHandler(backends []string) *HealthHandler {
	return &HealthHandler{backends: backends}
}

func (h *HealthHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"backends": h.backends,
	})
}
