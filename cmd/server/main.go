package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/aibuddy434-arch/SmartInterview/internal/config"
	"github.com/aibuddy434-arch/SmartInterview/internal/flow"
	"github.com/aibuddy434-arch/SmartInterview/internal/handlers"
	"github.com/aibuddy434-arch/SmartInterview/internal/jobs"
	"github.com/aibuddy434-arch/SmartInterview/internal/llm"
	_ "github.com/aibuddy434-arch/SmartInterview/internal/llm/anthropic"
	_ "github.com/aibuddy434-arch/SmartInterview/internal/llm/gemini"
	_ "github.com/aibuddy434-arch/SmartInterview/internal/llm/openai"
	"github.com/aibuddy434-arch/SmartInterview/internal/locks"
	"github.com/aibuddy434-arch/SmartInterview/internal/metrics"
	"github.com/aibuddy434-arch/SmartInterview/internal/models"
	"github.com/aibuddy434-arch/SmartInterview/internal/prompts"
	"github.com/aibuddy434-arch/SmartInterview/internal/questionbank"
	"github.com/aibuddy434-arch/SmartInterview/internal/report"
	"github.com/aibuddy434-arch/SmartInterview/internal/repositories"
	"github.com/aibuddy434-arch/SmartInterview/internal/routers"
	"github.com/aibuddy434-arch/SmartInterview/internal/speech"
)

func initDatabase(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.InterviewConfig{},
		&models.PresetQuestion{},
		&models.Candidate{},
		&models.InterviewSession{},
		&models.ResponseRecord{},
		&models.Report{},
	)
	if err != nil {
		return nil, err
	}
	return db, nil
}

// initBackends builds the ordered reasoning backend chain. Backends whose
// credentials are missing are skipped with a warning; the flow policy covers
// the all-backends-down case.
func initBackends(providers []string, logger *zap.Logger) []llm.Backend {
	var backends []llm.Backend
	for _, name := range providers {
		backend, err := llm.NewBackend(name)
		if err != nil {
			logger.Warn("reasoning backend unavailable", zap.String("provider", name), zap.Error(err))
			continue
		}
		backends = append(backends, backend)
	}
	return backends
}

func initLocker(redisAddr string, logger *zap.Logger) *locks.SessionLocker {
	client := redis.NewClient(&redis.Options{Addr: redisAddr})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable, per-session turn locking disabled",
			zap.String("addr", redisAddr), zap.Error(err))
		_ = client.Close()
		return nil
	}
	return locks.NewSessionLocker(client, 30*time.Second)
}

func main() {
	_ = godotenv.Load()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := initDatabase(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}

	users := &repositories.UserRepository{DB: db}
	interviews := &repositories.InterviewRepository{DB: db}
	candidates := &repositories.CandidateRepository{DB: db}
	sessions := &repositories.SessionRepository{DB: db}
	reports := &repositories.ReportRepository{DB: db}

	promptManager, err := prompts.NewPromptManager()
	if err != nil {
		logger.Fatal("Failed to initialize prompt manager", zap.Error(err))
	}

	backends := initBackends(cfg.Providers, logger)
	router := llm.NewRouter(backends, time.Duration(cfg.CallTimeoutSeconds)*time.Second, logger)
	logger.Info("reasoning backends configured", zap.Strings("providers", router.Backends()))

	var transcriber speech.Transcriber = speech.Noop{}
	var synthesizer speech.Synthesizer = speech.Noop{}
	if cfg.SpeechAPIKey != "" {
		s := speech.NewOpenAISpeech(cfg.SpeechAPIKey)
		transcriber, synthesizer = s, s
	}

	var locker flow.Locker
	if l := initLocker(cfg.RedisAddr, logger); l != nil {
		locker = l
	}

	engine := flow.NewEngine(sessions, interviews, candidates, router, locker, transcriber, cfg.Tuning, logger)
	bank := questionbank.NewBank(router, promptManager, logger)
	reportGen := report.NewGenerator(sessions, candidates, interviews, reports, router, promptManager, logger)

	authHandler := handlers.NewAuthHandler(users, cfg.JWTSecret, logger)
	interviewHandler := handlers.NewInterviewHandler(interviews, bank, logger)
	publicHandler := handlers.NewPublicHandler(interviews, candidates, sessions, engine, reportGen, synthesizer, cfg.UploadDir, logger)
	healthHandler := handlers.NewHealthHandler(router.Backends())

	reaper := jobs.NewSessionReaperJob(sessions, time.Duration(cfg.SessionMaxAgeHours)*time.Hour, os.Getenv("SESSION_REAPER_SCHEDULE"), logger)
	if err := reaper.Start(); err != nil {
		logger.Error("Failed to start session reaper", zap.Error(err))
	}
	defer reaper.Stop()

	mux := chi.NewRouter()
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	mux.Use(chimiddleware.RequestID, chimiddleware.RealIP, chimiddleware.Logger, chimiddleware.Recoverer, chimiddleware.Timeout(120*time.Second))

	mux.Get("/healthz", healthHandler.HealthHandler)
	mux.Handle("/metrics", metrics.Handler())
	routers.AuthRoutes(mux, authHandler, cfg.JWTSecret)
	routers.InterviewRoutes(mux, interviewHandler, cfg.JWTSecret)
	routers.PublicRoutes(mux, publicHandler)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("interview service starting", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	<-shutdownChan

	logger.Info("interview service shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
