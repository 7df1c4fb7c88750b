package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
)

// RedisSink keeps one key per session channel and lets the key TTL expire
// the notification.
type RedisSink struct {
	client *redisv9.Client
}

func NewRedisSink(client *redisv9.Client) *RedisSink {
	return &RedisSink{client: client}
}

func (s *RedisSink) Put(ctx context.Context, sessionID string, n Notification, delay time.Duration) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification failed: %w", err)
	}
	if err := s.client.Set(ctx, key(sessionID, n.Channel), payload, delay).Err(); err != nil {
		return fmt.Errorf("redis set notification failed: %w", err)
	}
	return nil
}

func (s *RedisSink) Active(ctx context.Context, sessionID string) ([]Notification, error) {
	values, err := s.client.MGet(ctx, key(sessionID, ChannelPortal), key(sessionID, ChannelUpload)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis get notifications failed: %w", err)
	}

	items := make([]Notification, 0, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var n Notification
		if err := json.Unmarshal([]byte(raw), &n); err != nil {
			slog.WarnContext(ctx, "drop undecodable notification", "session_id", sessionID, "error", err)
			continue
		}
		items = append(items, n)
	}
	return LiveOnly(time.Now(), items), nil
}

func key(sessionID string, channel Channel) string {
	return fmt.Sprintf("portal:notify:%s:%s", sessionID, channel)
}
