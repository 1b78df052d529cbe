// Package kv implements ports.KeyValueStore on redis and in process memory.
package kv

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/platform/config"
)

const scanBatch = 200

// RedisStore is a KeyValueStore backed by a redis server. Every key is
// namespaced under the configured prefix.
type RedisStore struct {
	client    *redis.Client
	namespace string
	logger    *slog.Logger
}

// NewRedisClient opens a client for the redis section of the config.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})
}

// NewRedisStore wraps client. namespace may be empty.
func NewRedisStore(client *redis.Client, namespace string, logger *slog.Logger) *RedisStore {
	if client == nil {
		panic("kv: redis client is required")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &RedisStore{
		client:    client,
		namespace: namespace,
		logger:    logger.With(slog.String("component", "kv.redis")),
	}
}

func (s *RedisStore) key(k string) string {
	return s.namespace + k
}

// Get implements ports.KeyValueStore.
func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.NewNotFoundError("Key", key)
	}

	if err != nil {
		return "", unavailable("get", err)
	}

	return val, nil
}

// Set implements ports.KeyValueStore.
func (s *RedisStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(key), value, ttl).Err(); err != nil {
		return unavailable("set", err)
	}

	return nil
}

// Delete implements ports.KeyValueStore.
func (s *RedisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = s.key(k)
	}

	if err := s.client.Del(ctx, full...).Err(); err != nil {
		return unavailable("delete", err)
	}

	return nil
}

// Keys implements ports.KeyValueStore using SCAN so large keyspaces do not
// block the server.
func (s *RedisStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	pattern := escapeGlob(s.key(prefix)) + "*"

	var (
		keys   []string
		cursor uint64
	)

	for {
		batch, next, err := s.client.Scan(ctx, cursor, pattern, scanBatch).Result()
		if err != nil {
			return nil, unavailable("scan", err)
		}

		for _, k := range batch {
			keys = append(keys, strings.TrimPrefix(k, s.namespace))
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	return keys, nil
}

// Name implements ports.HealthChecker.
func (s *RedisStore) Name() string {
	return "kv"
}

// Check implements ports.HealthChecker.
func (s *RedisStore) Check(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close releases the connection pool.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func unavailable(op string, err error) error {
	return fmt.Errorf("redis %s: %w", op, domain.NewUnavailableError("redis", err.Error()))
}

// escapeGlob quotes the characters SCAN MATCH treats specially.
func escapeGlob(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}

		b.WriteRune(r)
	}

	return b.String()
}
