package tokenstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/blessedav/FINALGO/pkg/logger"
)

type redisStore struct {
	client *redis.Client
	key    string
	logger logger.Logger
}

// NewRedis creates a redis-backed store and checks the connection.
func NewRedis(ctx context.Context, cfg Config, log logger.Logger) (Store, error) {
	if cfg.RedisAddr == "" {
		return nil, ErrMissingRedisAddr
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	s := &redisStore{
		client: client,
		key:    cfg.key(),
		logger: log.With("component", "tokenstore", "backend", BackendRedis),
	}

	if err := client.Ping(ctx).Err(); err != nil {
		if closeErr := client.Close(); closeErr != nil {
			s.logger.Error("failed to close redis client after ping error", "error", closeErr)
		}
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
	}

	s.logger.Debug("token store initialized", "addr", cfg.RedisAddr, "db", cfg.RedisDB)
	return s, nil
}

// Load implements Store.Load.
func (s *redisStore) Load(ctx context.Context) (string, error) {
	token, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	return token, nil
}

// Save implements Store.Save. The token never expires.
func (s *redisStore) Save(ctx context.Context, token string) error {
	if err := s.client.Set(ctx, s.key, token, 0).Err(); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	return nil
}

// Clear implements Store.Clear.
func (s *redisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}

// Close implements Store.Close.
func (s *redisStore) Close() error {
	return s.client.Close()
}
