package redis

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/devcamper/bootcamp-api/internal/core/domain"
)

const resetLockTTL = 30 * time.Second

// releaseScript deletes the key only while it still holds our token, so an
// expired lock that was re-acquired elsewhere is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// ResetLock serialises the password reset flow per user.
// Key format: reset:lock:<user_id>
type ResetLock struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResetLock creates a ResetLock wrapping the given Redis client.
func NewResetLock(client *redis.Client) *ResetLock {
	return &ResetLock{client: client, ttl: resetLockTTL}
}

// Acquire takes the lock for userID. It returns domain.ErrResetInProgress
// when another request holds it.
func (l *ResetLock) Acquire(ctx context.Context, userID string) (func(), error) {
	token, err := lockToken()
	if err != nil {
		return nil, err
	}

	key := l.key(userID)
	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("reset lock: %w", err)
	}
	if !ok {
		return nil, domain.ErrResetInProgress
	}

	release := func() {
		// The request context may already be done.
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), defaultTimeout)
		defer cancel()
		_ = releaseScript.Run(ctx, l.client, []string{key}, token).Err()
	}
	return release, nil
}

func (l *ResetLock) key(userID string) string {
	return fmt.Sprintf("reset:lock:%s", userID)
}

func lockToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("lock token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
