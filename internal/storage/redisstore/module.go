package redisstore

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/polkiloo/areacheck/internal/config"
)

// Module provides the Redis client, or a nil client when REDIS_URL is unset.
var Module = fx.Options(
	fx.Provide(newClient),
	fx.Invoke(registerLifecycle),
)

type clientParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (*redis.Client, error) {
	if p.Config.RedisURL == "" {
		p.Logger.Info("redis disabled")
		return nil, nil
	}
	return NewClient(p.Ctx, p.Config.RedisURL)
}

func registerLifecycle(lc fx.Lifecycle, client *redis.Client) {
	if client == nil {
		return
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
}
