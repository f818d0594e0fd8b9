package kv

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/fx"
	"go.uber.org/zap"

	cfgpkg "github.com/fatflowers/bankgate/pkg/config"
)

// NewRedis builds the Redis client backing the idempotent store. Client-side
// retries are disabled: a failed write surfaces to the caller once.
func NewRedis(l *zap.SugaredLogger, cfg *cfgpkg.Config) (*redis.Client, error) {
	if cfg.Redis.Addr == "" {
		l.Error("redis addr is empty")
		return nil, fmt.Errorf("redis addr is empty")
	}
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MaxRetries:   -1,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
		IdleTimeout:  90 * time.Second,
	})
	return client, nil
}

var Module = fx.Options(
	fx.Provide(NewRedis),
	fx.Invoke(registerRedisLifecycle),
)

// registerRedisLifecycle pings on start so a bad address fails fast, and
// closes the pool on shutdown.
func registerRedisLifecycle(lc fx.Lifecycle, l *zap.SugaredLogger, client *redis.Client) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			defer cancel()
			if err := client.Ping(pingCtx).Err(); err != nil {
				l.Errorf("failed to connect to redis: %v", err)
				return fmt.Errorf("failed to connect to redis: %w", err)
			}
			l.Infow("connected to redis", "addr", client.Options().Addr)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			l.Infow("closing redis connection pool")
			return client.Close()
		},
	})
}
