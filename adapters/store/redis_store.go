package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/layer-3/inkgate/core"
	"github.com/layer-3/inkgate/ports"
	"github.com/redis/go-redis/v9"
)

// RedisStore is a Redis implementation of the TokenStore interface
type RedisStore struct {
	client redis.UniversalClient
	key    string
	logger *slog.Logger
}

// NewRedisStore creates a new Redis store holding the token under prefix+key
func NewRedisStore(client redis.UniversalClient, key string, logger *slog.Logger) ports.TokenStore {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisStore{
		client: client,
		key:    "inkgate:" + key,
		logger: logger,
	}
}

// Get reads the token from Redis; read failures count as absent
func (s *RedisStore) Get(ctx context.Context) (core.Token, bool) {
	val, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Debug("token store read failed", "backend", "redis", "error", err)
		}
		return "", false
	}

	token := core.Token(val)
	return token, token.Present()
}

// Set writes the token without expiry
func (s *RedisStore) Set(ctx context.Context, token core.Token) error {
	if !token.Present() {
		return core.ErrEmptyToken
	}

	if err := s.client.Set(ctx, s.key, string(token), 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", core.ErrStoreUnavailable, err)
	}

	return nil
}

// Clear deletes the token key
func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("%w: %v", core.ErrStoreUnavailable, err)
	}

	return nil
}
