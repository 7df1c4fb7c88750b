package cache

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
)

// releaseScript deletes the lock only if it still holds our token, so an
// expired lease cannot release a newer holder.
var releaseScript = redisv9.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Guard is a per-session mutual exclusion lease backed by SET NX.
type Guard struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewGuard(client *redisv9.Client, ttl time.Duration) *Guard {
	if ttl <= 0 {
		ttl = 150 * time.Second
	}
	return &Guard{client: client, ttl: ttl}
}

// Acquire returns ok=false when another operation holds the session.
func (g *Guard) Acquire(ctx context.Context, sessionID string) (string, bool, error) {
	token, err := newToken()
	if err != nil {
		return "", false, err
	}
	ok, err := g.client.SetNX(ctx, lockKey(sessionID), token, g.ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("redis acquire session lock failed: %w", err)
	}
	return token, ok, nil
}

func (g *Guard) Release(ctx context.Context, sessionID, token string) error {
	if err := releaseScript.Run(ctx, g.client, []string{lockKey(sessionID)}, token).Err(); err != nil {
		return fmt.Errorf("redis release session lock failed: %w", err)
	}
	return nil
}

func lockKey(sessionID string) string {
	return fmt.Sprintf("portal:lock:%s", sessionID)
}

func newToken() (string, error) {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", fmt.Errorf("generate lock token failed: %w", err)
	}
	return hex.EncodeToString(b[:]), nil
}
