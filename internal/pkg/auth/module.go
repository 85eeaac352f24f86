package auth

import (
	"github.com/polkiloo/areacheck/internal/config"
	"go.uber.org/fx"
)

// Module provides authentication primitives via fx.
var Module = fx.Options(
	fx.Provide(newPasswordHasher),
	fx.Provide(newTokenStrategy),
	fx.Provide(newOptions),
)

func newPasswordHasher() PasswordHasher {
	return NewBcryptHasher(0)
}

type strategyParams struct {
	fx.In

	Config *config.Config
}

func newTokenStrategy(p strategyParams) Strategy {
	if p.Config.TokenStrategy == config.TokenStrategyJWT {
		return NewJWTStrategy(p.Config.SessionSecret)
	}
	return NewOpaqueStrategy()
}

func newOptions(cfg *config.Config) Options {
	return Options{TTL: cfg.SessionTTL}
}
