package persistence

import (
	"context"
	"reportassist/sources/tracing"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

type Stores struct {
	fx.Out

	KeyValue KeyValueStore
	Redis    *redis.Client
}

var Module = fx.Module("persistence",
	fx.Provide(
		NewRedisConfig,
		func(config *RedisConfig, log *tracing.Logger) Stores {
			store, client := NewKeyValueStore(config, log)
			return Stores{KeyValue: store, Redis: client}
		},
	),

	fx.Invoke(func(redis *redis.Client, lc fx.Lifecycle, log *tracing.Logger) {
		if redis == nil {
			return
		}
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				if err := redis.Ping(ctx).Err(); err != nil {
					log.W("Failed to ping Redis, limiter will fail open until it recovers", tracing.InnerError, err)
				} else {
					log.I("Redis connection verified")
				}
				return nil
			},
			OnStop: func(ctx context.Context) error {
				log.I("Closing Redis connection")
				return redis.Close()
			},
		})
	}),
)
