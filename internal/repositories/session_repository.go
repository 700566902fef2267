package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/aibuddy434-arch/SmartInterview/internal/models"
)

var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrInvalidTransition = errors.New("invalid session state transition")
	ErrConcurrentAdvance = errors.New("session cursor moved by a concurrent turn")
)

type SessionRepository struct {
	DB *gorm.DB
}

func (r *SessionRepository) Create(session *models.InterviewSession) error {
	return r.DB.Create(session).Error
}

func (r *SessionRepository) GetBySessionID(sessionID string) (*models.InterviewSession, error) {
	var session models.InterviewSession
	err := r.DB.First(&session, "session_id = ?", sessionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Start moves a pending session to in_progress and stamps the wall clock the
// time budget is measured against. Starting twice is an error.
func (r *SessionRepository) Start(sessionID string, now time.Time) (*models.InterviewSession, error) {
	res := r.DB.Model(&models.InterviewSession{}).
		Where("session_id = ? AND status = ?", sessionID, models.StatusPending).
		Updates(map[string]interface{}{
			"status":        models.StatusInProgress,
			"start_time":    now,
			"preset_cursor": 0,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := r.GetBySessionID(sessionID); err != nil {
			return nil, err
		}
		return nil, ErrInvalidTransition
	}
	return r.GetBySessionID(sessionID)
}

// CommitTurn persists the outcome of one interview turn atomically: the
// response record, any cursor advance and any completion land together or not
// at all. The cursor update is guarded on the cursor value the turn was
// evaluated against, so a concurrent duplicate turn rolls back instead of
// double-advancing.
func (r *SessionRepository) CommitTurn(record *models.ResponseRecord, prevCursor, newCursor int, complete bool, now time.Time) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(record).Error; err != nil {
			return err
		}
		updates := map[string]interface{}{}
		if newCursor != prevCursor {
			updates["preset_cursor"] = newCursor
		}
		if complete {
			updates["status"] = models.StatusCompleted
			updates["end_time"] = now
		}
		if len(updates) == 0 {
			return nil
		}
		res := tx.Model(&models.InterviewSession{}).
			Where("session_id = ? AND status = ? AND preset_cursor = ?",
				record.SessionID, models.StatusInProgress, prevCursor).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrConcurrentAdvance
		}
		return nil
	})
}

// Complete force-ends a session. Idempotent on already-completed sessions.
func (r *SessionRepository) Complete(sessionID string, now time.Time) (*models.InterviewSession, error) {
	session, err := r.GetBySessionID(sessionID)
	if err != nil {
		return nil, err
	}
	switch session.Status {
	case models.StatusCompleted:
		return session, nil
	case models.StatusInProgress:
		if err := r.DB.Model(session).Updates(map[string]interface{}{
			"status":   models.StatusCompleted,
			"end_time": now,
		}).Error; err != nil {
			return nil, err
		}
		return r.GetBySessionID(sessionID)
	default:
		return nil, ErrInvalidTransition
	}
}

// Cancel abandons a pending or in_progress session.
func (r *SessionRepository) Cancel(sessionID string, now time.Time) (*models.InterviewSession, error) {
	session, err := r.GetBySessionID(sessionID)
	if err != nil {
		return nil, err
	}
	switch session.Status {
	case models.StatusCancelled:
		return session, nil
	case models.StatusPending, models.StatusInProgress:
		if err := r.DB.Model(session).Updates(map[string]interface{}{
			"status":   models.StatusCancelled,
			"end_time": now,
		}).Error; err != nil {
			return nil, err
		}
		return r.GetBySessionID(sessionID)
	default:
		return nil, ErrInvalidTransition
	}
}

// ListResponses returns the session's utterances in the order they were
// recorded.
func (r *SessionRepository) ListResponses(sessionID string) ([]models.ResponseRecord, error) {
	var records []models.ResponseRecord
	err := r.DB.Where("session_id = ?", sessionID).
		Order("created_at ASC, question_number ASC").
		Find(&records).Error
	return records, err
}

// ExpireStale cancels in_progress sessions whose time limit ran out long ago
// without the candidate ever completing. Returns the number reaped.
func (r *SessionRepository) ExpireStale(cutoff time.Time, now time.Time) (int64, error) {
	res := r.DB.Model(&models.InterviewSession{}).
		Where("status = ? AND start_time < ?", models.StatusInProgress, cutoff).
		Updates(map[string]interface{}{
			"status":   models.StatusExpired,
			"end_time": now,
		})
	return res.RowsAffected, res.Error
}
