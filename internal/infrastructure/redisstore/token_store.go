package redisstore

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/clubware/server/pkg/helpers"
)

func keySignupToken(email string) string { return "signup:token:" + email }

// TokenStore keeps signup verification tokens in Redis, one per email,
// expiring after the configured TTL.
type TokenStore struct {
	RDB *redis.Client
	TTL time.Duration
}

func NewTokenStore(rdb *redis.Client, ttl time.Duration) *TokenStore {
	return &TokenStore{RDB: rdb, TTL: ttl}
}

// Issue creates a fresh random token bound to email, replacing any
// previously issued one.
func (s *TokenStore) Issue(ctx context.Context, email string) (string, error) {
	token, err := helpers.GenToken(32)
	if err != nil {
		return "", err
	}
	if err := s.RDB.Set(ctx, keySignupToken(email), token, s.TTL).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Validate reports whether token is the currently issued token for
// email. Expired or never-issued tokens are simply invalid.
func (s *TokenStore) Validate(ctx context.Context, email, token string) (bool, error) {
	stored, err := s.RDB.Get(ctx, keySignupToken(email)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(token)) == 1, nil
}

// Consume invalidates the token after a successful account creation.
func (s *TokenStore) Consume(ctx context.Context, email string) error {
	return s.RDB.Del(ctx, keySignupToken(email)).Err()
}
