package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"smartnotes/internal/common"

	"github.com/redis/go-redis/v9"
)

// SessionStore holds opaque web-session tokens for the cookie-based path.
// Access tokens are stateless; only browser sessions need server-side state.
type SessionStore interface {
	Put(ctx context.Context, token, userID string, ttl time.Duration) error
	Resolve(ctx context.Context, token string) (string, error)
	Revoke(ctx context.Context, token string) error
}

const sessionKeyPrefix = "session:"

type redisSessionStore struct {
	rdb *redis.Client
}

func NewRedisSessionStore(rdb *redis.Client) SessionStore {
	return &redisSessionStore{rdb: rdb}
}

func (s *redisSessionStore) Put(ctx context.Context, token, userID string, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, sessionKeyPrefix+token, userID, ttl).Err(); err != nil {
		return fmt.Errorf("redisSessionStore.Put: %w", err)
	}
	return nil
}

func (s *redisSessionStore) Resolve(ctx context.Context, token string) (string, error) {
	userID, err := s.rdb.Get(ctx, sessionKeyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", common.ErrUnauthenticated
		}
		return "", fmt.Errorf("redisSessionStore.Resolve: %w", err)
	}
	return userID, nil
}

func (s *redisSessionStore) Revoke(ctx context.Context, token string) error {
	if err := s.rdb.Del(ctx, sessionKeyPrefix+token).Err(); err != nil {
		return fmt.Errorf("redisSessionStore.Revoke: %w", err)
	}
	return nil
}
