package di

import (
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/polkiloo/areacheck/internal/app"
	"github.com/polkiloo/areacheck/internal/config"
	"github.com/polkiloo/areacheck/internal/domain/repository"
	"github.com/polkiloo/areacheck/internal/logger"
	"github.com/polkiloo/areacheck/internal/monitor"
	"github.com/polkiloo/areacheck/internal/pkg/auth"
	"github.com/polkiloo/areacheck/internal/server/http/handlers"
	"github.com/polkiloo/areacheck/internal/server/http/middleware"
	"github.com/polkiloo/areacheck/internal/server/http/router"
	"github.com/polkiloo/areacheck/internal/storage/postgres"
	"github.com/polkiloo/areacheck/internal/storage/redisstore"
	"github.com/polkiloo/areacheck/internal/telemetry"
	"github.com/polkiloo/areacheck/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		telemetry.Module,
		auth.Module,
		postgres.Module,
		redisstore.Module,
		fx.Provide(
			newSessionRepository,
			newLoginLimiter,
			newIdempotencyStore,
			func(s *postgres.Storage) app.HealthChecker { return s },
		),
		usecase.Module,
		monitor.Module,
		fx.Provide(
			func(r *monitor.Recorder) app.StatsRecorder { return r },
			func(f *app.AreaFacade) handlers.AreaFacade { return f },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}

type sessionParams struct {
	fx.In

	Config  *config.Config
	Storage *postgres.Storage
	Client  *redis.Client
	Logger  *slog.Logger
}

func newSessionRepository(p sessionParams) repository.SessionRepository {
	if p.Config.SessionBackend == config.SessionBackendRedis && p.Client != nil {
		p.Logger.Info("sessions stored in redis")
		return redisstore.NewSessionStore(p.Client)
	}
	return p.Storage.Sessions()
}

func newLoginLimiter(cfg *config.Config, client *redis.Client) middleware.LoginLimiter {
	if client == nil {
		return nil
	}
	return redisstore.NewLoginLimiter(client, cfg.LoginRateLimit)
}

func newIdempotencyStore(cfg *config.Config, client *redis.Client) middleware.IdempotencyStore {
	if client == nil {
		return nil
	}
	return redisstore.NewIdempotencyStore(client, cfg.IdempotencyTTL)
}
