package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"calckit/internal/config"
)

// RedisStore keeps state in Redis with a TTL, so abandoned sessions
// expire on their own.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(cfg *config.Config) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{
			Addr:         cfg.RedisAddr,
			Password:     cfg.RedisPassword,
			DB:           cfg.RedisDB,
			PoolSize:     100, // Increase connection pool size
			MinIdleConns: 10,  // Keep minimum connections ready
		}),
		ttl: cfg.StateTTL,
	}
}

// Ping verifies the connection, for startup checks.
func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context, key string) (json.RawMessage, bool, error) {
	data, err := s.client.Get(ctx, buildStateKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get state: %w", err)
	}
	return data, true, nil
}

func (s *RedisStore) Save(ctx context.Context, key string, state json.RawMessage) error {
	if err := s.client.Set(ctx, buildStateKey(key), []byte(state), s.ttl).Err(); err != nil {
		return fmt.Errorf("set state: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, buildStateKey(key)).Err(); err != nil {
		return fmt.Errorf("del state: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

// Client exposes the underlying connection for the rate limiter, which
// shares it rather than dialing its own.
func (s *RedisStore) Client() *redis.Client {
	return s.client
}

func buildStateKey(key string) string {
	return fmt.Sprintf("state:%s", key)
}
