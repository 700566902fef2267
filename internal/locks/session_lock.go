package locks

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrTurnInFlight means another request is already processing a turn for the
// same session.
var ErrTurnInFlight = errors.New("a turn for this session is already being processed")

// releaseScript deletes the lock key only if it still holds our token, so a
// slow turn that outlives its TTL cannot release a lock acquired by someone
// else.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// SessionLocker serialises turn processing per session: at most one
// submit-response for a given session is in flight at a time.
type SessionLocker struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionLocker(client *redis.Client, ttl time.Duration) *SessionLocker {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &SessionLocker{client: client, ttl: ttl}
}

// Acquire takes the per-session lock and returns a release function. Returns
// ErrTurnInFlight when the lock is already held.
func (l *SessionLocker) Acquire(ctx context.Context, sessionID string) (func(), error) {
	key := "turnlock:" + sessionID
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrTurnInFlight
	}
	release := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_, _ = releaseScript.Run(ctx, l.client, []string{key}, token).Result()
	}
	return release, nil
}
