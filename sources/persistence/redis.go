package persistence

import (
	"context"
	"errors"
	"fmt"
	"reportassist/sources/tracing"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

func NewRedis(config *RedisConfig, log *tracing.Logger) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:                  config.Host + ":" + strconv.Itoa(config.Port),
		Password:              config.Password,
		DB:                    config.DB,
		MaxRetries:            config.MaxRetries,
		DialTimeout:           config.DialTimeout,
		ContextTimeoutEnabled: true,
	})

	log.I("Redis client initialized successfully")
	return rdb
}

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (x *RedisStore) Get(ctx context.Context, key string) (string, error) {
	value, err := x.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, nil
}

func (x *RedisStore) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	if err := x.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (x *RedisStore) Remove(ctx context.Context, key string) error {
	if err := x.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

// NewKeyValueStore picks Redis when it is enabled and the in-process store otherwise.
func NewKeyValueStore(config *RedisConfig, log *tracing.Logger) (KeyValueStore, *redis.Client) {
	if !config.Enabled {
		log.W("Redis disabled, limiter state lives in memory only")
		return NewMemoryStore(), nil
	}
	client := NewRedis(config, log)
	return NewRedisStore(client), client
}
