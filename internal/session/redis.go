package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps one hash per session under a TTL, so abandoned sessions
// expire without a cleanup job.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

var _ Store = (*RedisStore)(nil)

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func sessionKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}

func (s *RedisStore) Create(ctx context.Context, userID string, roles []string) (string, error) {
	token := uuid.NewString()
	key := sessionKey(token)

	pipe := s.client.Pipeline()
	pipe.HSet(ctx, key, map[string]interface{}{
		"user_id":    userID,
		"roles":      strings.Join(roles, ","),
		"created_at": time.Now().Unix(),
	})
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}
	return token, nil
}

func (s *RedisStore) Lookup(ctx context.Context, token string) (*Session, error) {
	data, err := s.client.HGetAll(ctx, sessionKey(token)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch session: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrNoSession
	}

	var roles []string
	if data["roles"] != "" {
		roles = strings.Split(data["roles"], ",")
	}
	return &Session{UserID: data["user_id"], Roles: roles}, nil
}

func (s *RedisStore) Destroy(ctx context.Context, token string) error {
	deleted, err := s.client.Del(ctx, sessionKey(token)).Result()
	if err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	if deleted == 0 {
		return ErrNoSession
	}
	return nil
}
