package repositories

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/aibuddy434-arch/SmartInterview/internal/models"
	"github.com/aibuddy434-arch/SmartInterview/internal/testhelpers"
)

func seedSession(t *testing.T, db *gorm.DB, status string) (*SessionRepository, string) {
	t.Helper()
	repo := &SessionRepository{DB: db}
	sessionID := uuid.NewString()
	require.NoError(t, repo.Create(&models.InterviewSession{
		ID:                uuid.NewString(),
		SessionID:         sessionID,
		InterviewConfigID: uuid.NewString(),
		CandidateID:       uuid.NewString(),
		Status:            status,
	}))
	return repo, sessionID
}

func TestSessionStart(t *testing.T) {
	repo, sessionID := seedSession(t, testhelpers.SetupTestDB(t), models.StatusPending)

	session, err := repo.Start(sessionID, time.Now())
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, session.Status)
	assert.Equal(t, 0, session.PresetCursor)
	require.NotNil(t, session.StartTime)

	_, err = repo.Start(sessionID, time.Now())
	assert.ErrorIs(t, err, ErrInvalidTransition, "starting twice must fail")
}

func TestSessionStartUnknown(t *testing.T) {
	repo := &SessionRepository{DB: testhelpers.SetupTestDB(t)}
	_, err := repo.Start("missing", time.Now())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestCommitTurnAdvancesCursor(t *testing.T) {
	repo, sessionID := seedSession(t, testhelpers.SetupTestDB(t), models.StatusPending)
	_, err := repo.Start(sessionID, time.Now())
	require.NoError(t, err)

	rec := &models.ResponseRecord{
		ID:             uuid.NewString(),
		SessionID:      sessionID,
		QuestionNumber: 1,
		QuestionKind:   models.KindPreset,
		Transcript:     "answer",
	}
	require.NoError(t, repo.CommitTurn(rec, 0, 1, false, time.Now()))

	session, err := repo.GetBySessionID(sessionID)
	require.NoError(t, err)
	assert.Equal(t, 1, session.PresetCursor)
	assert.Equal(t, models.StatusInProgress, session.Status)
}

func TestCommitTurnCompletes(t *testing.T) {
	repo, sessionID := seedSession(t, testhelpers.SetupTestDB(t), models.StatusPending)
	_, err := repo.Start(sessionID, time.Now())
	require.NoError(t, err)

	rec := &models.ResponseRecord{
		ID:             uuid.NewString(),
		SessionID:      sessionID,
		QuestionNumber: 1,
		QuestionKind:   models.KindPreset,
		Transcript:     "final answer",
	}
	require.NoError(t, repo.CommitTurn(rec, 0, 0, true, time.Now()))

	session, err := repo.GetBySessionID(sessionID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, session.Status)
	require.NotNil(t, session.EndTime)
}

func TestCommitTurnStaleCursorRollsBack(t *testing.T) {
	repo, sessionID := seedSession(t, testhelpers.SetupTestDB(t), models.StatusPending)
	_, err := repo.Start(sessionID, time.Now())
	require.NoError(t, err)

	first := &models.ResponseRecord{ID: uuid.NewString(), SessionID: sessionID, QuestionNumber: 1, QuestionKind: models.KindPreset}
	require.NoError(t, repo.CommitTurn(first, 0, 1, false, time.Now()))

	stale := &models.ResponseRecord{ID: uuid.NewString(), SessionID: sessionID, QuestionNumber: 1, QuestionKind: models.KindPreset}
	err = repo.CommitTurn(stale, 0, 1, false, time.Now())
	assert.ErrorIs(t, err, ErrConcurrentAdvance)

	records, err := repo.ListResponses(sessionID)
	require.NoError(t, err)
	assert.Len(t, records, 1, "rolled back record must not be persisted")
}

func TestCommitTurnRecordOnly(t *testing.T) {
	repo, sessionID := seedSession(t, testhelpers.SetupTestDB(t), models.StatusPending)
	_, err := repo.Start(sessionID, time.Now())
	require.NoError(t, err)

	// A follow-up turn records the answer without touching the cursor.
	rec := &models.ResponseRecord{ID: uuid.NewString(), SessionID: sessionID, QuestionNumber: 1, QuestionKind: models.KindFollowUp}
	require.NoError(t, repo.CommitTurn(rec, 0, 0, false, time.Now()))

	session, err := repo.GetBySessionID(sessionID)
	require.NoError(t, err)
	assert.Equal(t, 0, session.PresetCursor)
}

func TestCompleteIdempotent(t *testing.T) {
	repo, sessionID := seedSession(t, testhelpers.SetupTestDB(t), models.StatusPending)
	_, err := repo.Start(sessionID, time.Now())
	require.NoError(t, err)

	first, err := repo.Complete(sessionID, time.Now())
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, first.Status)

	second, err := repo.Complete(sessionID, time.Now())
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, second.Status)
}

func TestCompletePendingRejected(t *testing.T) {
	repo, sessionID := seedSession(t, testhelpers.SetupTestDB(t), models.StatusPending)
	_, err := repo.Complete(sessionID, time.Now())
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancel(t *testing.T) {
	repo, sessionID := seedSession(t, testhelpers.SetupTestDB(t), models.StatusPending)

	session, err := repo.Cancel(sessionID, time.Now())
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, session.Status)

	// Cancelling again is a no-op; cancelling a completed session is not.
	_, err = repo.Cancel(sessionID, time.Now())
	require.NoError(t, err)
}

func TestExpireStale(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	repo, sessionID := seedSession(t, db, models.StatusPending)
	_, err := repo.Start(sessionID, time.Now().Add(-2*time.Hour))
	require.NoError(t, err)

	reaped, err := repo.ExpireStale(time.Now().Add(-time.Hour), time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), reaped)

	session, err := repo.GetBySessionID(sessionID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusExpired, session.Status)
}
