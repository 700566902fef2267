package jobs

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aibuddy434-arch/SmartInterview/internal/models"
	"github.com/aibuddy434-arch/SmartInterview/internal/repositories"
	"github.com/aibuddy434-arch/SmartInterview/internal/testhelpers"
)

func TestRunOnceExpiresOnlyStaleSessions(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	sessions := &repositories.SessionRepository{DB: db}

	stale := uuid.NewString()
	fresh := uuid.NewString()
	for _, id := range []string{stale, fresh} {
		require.NoError(t, sessions.Create(&models.InterviewSession{
			ID:                uuid.NewString(),
			SessionID:         id,
			InterviewConfigID: uuid.NewString(),
			CandidateID:       uuid.NewString(),
			Status:            models.StatusPending,
		}))
	}
	_, err := sessions.Start(stale, time.Now().Add(-3*time.Hour))
	require.NoError(t, err)
	_, err = sessions.Start(fresh, time.Now())
	require.NoError(t, err)

	job := NewSessionReaperJob(sessions, time.Hour, "", nil)
	require.NoError(t, job.RunOnce())

	got, err := sessions.GetBySessionID(stale)
	require.NoError(t, err)
	assert.Equal(t, models.StatusExpired, got.Status)

	got, err = sessions.GetBySessionID(fresh)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, got.Status)
}
