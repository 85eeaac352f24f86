package telemetry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/polkiloo/areacheck/internal/config"
	"go.uber.org/fx"
)

// Module sets up tracing and flushes it on stop.
var Module = fx.Invoke(register)

type params struct {
	fx.In

	Ctx       context.Context
	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

func register(p params) error {
	shutdown, err := Setup(p.Ctx, p.Config.OTelEndpoint, ServiceName)
	if err != nil {
		return fmt.Errorf("setup telemetry: %w", err)
	}
	if p.Config.OTelEndpoint != "" {
		p.Logger.Info("tracing enabled", slog.String("endpoint", p.Config.OTelEndpoint))
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return shutdown(ctx)
		},
	})
	return nil
}
