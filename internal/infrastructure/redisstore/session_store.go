package redisstore

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

func keySession(userID string) string { return "user:session:" + userID }

// SessionStore records active sign-in sessions as Redis hashes so the
// auth middleware can reject tokens for signed-out users.
type SessionStore struct {
	RDB *redis.Client
	TTL time.Duration
}

func NewSessionStore(rdb *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{RDB: rdb, TTL: ttl}
}

func (s *SessionStore) Save(ctx context.Context, userID, email, name string) error {
	key := keySession(userID)
	pipe := s.RDB.Pipeline()
	pipe.HSet(ctx, key, map[string]any{
		"user_id":    userID,
		"email":      email,
		"name":       name,
		"created_at": time.Now().UTC().Format(time.RFC3339Nano),
	})
	pipe.Expire(ctx, key, s.TTL)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *SessionStore) Get(ctx context.Context, userID string) (map[string]string, error) {
	return s.RDB.HGetAll(ctx, keySession(userID)).Result()
}

func (s *SessionStore) Delete(ctx context.Context, userID string) error {
	return s.RDB.Del(ctx, keySession(userID)).Err()
}
