package routers

import (
	"github.com/go-chi/chi/v5"

	"github.com/aibuddy434-arch/SmartInterview/internal/handlers"
	"github.com/aibuddy434-arch/SmartInterview/internal/middleware"
	"github.com/aibuddy434-arch/SmartInterview/internal/models"
)

// AuthRoutes mounts registration and login.
func AuthRoutes(router *chi.Mux, h *handlers.AuthHandler, jwtSecret string) {
	router.Route("/api/auth", func(r chi.Router) {
		r.With(middleware.ValidateRequest[*models.RegisterRequest]()).Post("/register", h.RegisterHandler)
		r.With(middleware.ValidateRequest[*models.LoginRequest]()).Post("/login", h.LoginHandler)
		r.With(middleware.RequireAuth(jwtSecret)).Get("/me", h.MeHandler)
	})
}

// InterviewRoutes mounts the interviewer-facing configuration API. Every
// route requires a valid token.
func InterviewRoutes(router *chi.Mux, h *handlers.InterviewHandler, jwtSecret string) {
	router.Route("/api/interviews", func(r chi.Router) {
		r.Use(middleware.RequireAuth(jwtSecret))

		r.With(middleware.ValidateRequest[*models.CreateInterviewRequest]()).Post("/", h.CreateHandler)
		r.Get("/", h.ListHandler)
		r.Get("/{id}", h.GetHandler)
		r.With(middleware.ValidateRequest[*models.UpdateInterviewRequest]()).Put("/{id}", h.UpdateHandler)
		r.Delete("/{id}", h.DeleteHandler)
		r.With(middleware.ValidateRequest[*models.AddQuestionsRequest]()).Post("/{id}/questions", h.AddQuestionsHandler)
		r.Get("/{id}/stats", h.StatsHandler)
	})
}

// PublicRoutes mounts the candidate-facing API. Possession of the interview
// or session ID is the credential; there is no login for candidates.
func PublicRoutes(router *chi.Mux, h *handlers.PublicHandler) {
	router.Route("/api/public", func(r chi.Router) {
		r.Get("/interviews/{id}", h.GetInterviewHandler)
		r.Get("/interviews/share/{token}", h.GetInterviewByTokenHandler)
		r.Post("/interviews/{id}/register", h.RegisterCandidateHandler)

		r.Route("/sessions/{sessionID}", func(r chi.Router) {
			r.Get("/", h.GetSessionHandler)
			r.Post("/start", h.StartSessionHandler)
			r.Post("/responses", h.SubmitResponseHandler)
			r.Get("/responses", h.ListResponsesHandler)
			r.Post("/complete", h.CompleteSessionHandler)
			r.Post("/cancel", h.CancelSessionHandler)
			r.Get("/report", h.GetReportHandler)
		})

		r.With(middleware.ValidateRequest[*models.TTSRequest]()).Post("/tts", h.TTSHandler)
	})
}
