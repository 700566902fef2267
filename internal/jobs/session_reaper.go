package jobs

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/aibuddy434-arch/SmartInterview/internal/repositories"
)

// SessionReaperJob expires in_progress sessions whose candidates walked away
// without completing or cancelling.
type SessionReaperJob struct {
	sessions *repositories.SessionRepository
	maxAge   time.Duration
	schedule string
	cron     *cron.Cron
	logger   *zap.Logger
}

func NewSessionReaperJob(sessions *repositories.SessionRepository, maxAge time.Duration, schedule string, logger *zap.Logger) *SessionReaperJob {
	if schedule == "" {
		schedule = "*/10 * * * *"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionReaperJob{
		sessions: sessions,
		maxAge:   maxAge,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger,
	}
}

// Start begins the scheduled reaper.
func (j *SessionReaperJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		if err := j.RunOnce(); err != nil {
			j.logger.Error("session reaper run failed", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}
	j.cron.Start()
	j.logger.Info("session reaper started", zap.String("schedule", j.schedule))
	return nil
}

// Stop stops the scheduled reaper.
func (j *SessionReaperJob) Stop() {
	if j.cron != nil {
		j.cron.Stop()
	}
}

// RunOnce performs a single reap pass.
func (j *SessionReaperJob) RunOnce() error {
	now := time.Now()
	reaped, err := j.sessions.ExpireStale(now.Add(-j.maxAge), now)
	if err != nil {
		return err
	}
	if reaped > 0 {
		j.logger.Info("expired stale sessions", zap.Int64("count", reaped))
	}
	return nil
}
