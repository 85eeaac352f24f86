package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	SessionBackendPostgres = "postgres"
	SessionBackendRedis    = "redis"

	TokenStrategyOpaque = "opaque"
	TokenStrategyJWT    = "jwt"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress        string        `env:"RUN_ADDRESS"`
	DatabaseURI       string        `env:"DATABASE_URI"`
	RedisURL          string        `env:"REDIS_URL"`
	SessionBackend    string        `env:"SESSION_BACKEND"`
	TokenStrategy     string        `env:"TOKEN_STRATEGY"`
	SessionSecret     string        `env:"SESSION_SECRET"`
	SessionSecretFile string        `env:"SESSION_SECRET_FILE,file"`
	SessionTTL        time.Duration `env:"SESSION_TTL"`
	ReaperInterval    time.Duration `env:"REAPER_INTERVAL"`
	ReaperBatch       int           `env:"REAPER_BATCH"`
	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT"`
	LoginRateLimit    int           `env:"LOGIN_RATE_LIMIT"`
	IdempotencyTTL    time.Duration `env:"IDEMPOTENCY_TTL"`
	LogLevel          string        `env:"LOG_LEVEL"`
	OTelEndpoint      string        `env:"OTEL_ENDPOINT"`
}

const (
	defaultRunAddress      = ":8080"
	defaultSessionSecret   = "change-me-in-production"
	defaultSessionTTL      = 24 * time.Hour
	defaultReaperInterval  = time.Minute
	defaultReaperBatch     = 500
	defaultShutdownTimeout = 10 * time.Second
	defaultLoginRateLimit  = 10
	defaultIdempotencyTTL  = 24 * time.Hour
	defaultLogLevel        = "info"

	minJWTSecretLength = 16
)

// Load parses configuration from environment variables, then flags.
func Load() (*Config, error) {
	return load(os.Args[1:], env.ToMap(os.Environ()))
}

func defaults() *Config {
	return &Config{
		RunAddress:      defaultRunAddress,
		SessionBackend:  SessionBackendPostgres,
		TokenStrategy:   TokenStrategyOpaque,
		SessionSecret:   defaultSessionSecret,
		SessionTTL:      defaultSessionTTL,
		ReaperInterval:  defaultReaperInterval,
		ReaperBatch:     defaultReaperBatch,
		ShutdownTimeout: defaultShutdownTimeout,
		LoginRateLimit:  defaultLoginRateLimit,
		IdempotencyTTL:  defaultIdempotencyTTL,
		LogLevel:        defaultLogLevel,
	}
}

func load(args []string, environ map[string]string) (*Config, error) {
	cfg := defaults()
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	fs := flag.NewFlagSet("areacheck", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.RedisURL, "redis", cfg.RedisURL, "Redis URL")
	fs.StringVar(&cfg.SessionBackend, "session-backend", cfg.SessionBackend, "Session store: postgres or redis")
	fs.StringVar(&cfg.TokenStrategy, "token-strategy", cfg.TokenStrategy, "Token format: opaque or jwt")
	fs.StringVar(&cfg.SessionSecret, "session-secret", cfg.SessionSecret, "Secret for signing jwt tokens")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", cfg.SessionTTL, "Session lifetime")
	fs.DurationVar(&cfg.ReaperInterval, "reaper-interval", cfg.ReaperInterval, "Interval between expired session sweeps")
	fs.IntVar(&cfg.ReaperBatch, "reaper-batch", cfg.ReaperBatch, "Maximum sessions deleted per sweep")
	fs.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", cfg.ShutdownTimeout, "Graceful shutdown timeout")
	fs.IntVar(&cfg.LoginRateLimit, "login-rate", cfg.LoginRateLimit, "Login attempts per minute per username")
	fs.DurationVar(&cfg.IdempotencyTTL, "idempotency-ttl", cfg.IdempotencyTTL, "Replay window for idempotency keys")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level")
	fs.StringVar(&cfg.OTelEndpoint, "otel-endpoint", cfg.OTelEndpoint, "OTLP/HTTP traces endpoint")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if secret := strings.TrimSpace(cfg.SessionSecretFile); secret != "" {
		cfg.SessionSecret = secret
	}

	cfg.normalize()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	if c.SessionTTL <= 0 {
		c.SessionTTL = defaultSessionTTL
	}
	if c.ReaperInterval <= 0 {
		c.ReaperInterval = defaultReaperInterval
	}
	if c.ReaperBatch <= 0 {
		c.ReaperBatch = defaultReaperBatch
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = defaultShutdownTimeout
	}
	if c.LoginRateLimit <= 0 {
		c.LoginRateLimit = defaultLoginRateLimit
	}
	if c.IdempotencyTTL <= 0 {
		c.IdempotencyTTL = defaultIdempotencyTTL
	}
	c.SessionBackend = strings.ToLower(strings.TrimSpace(c.SessionBackend))
	c.TokenStrategy = strings.ToLower(strings.TrimSpace(c.TokenStrategy))
}

func (c *Config) validate() error {
	if c.DatabaseURI == "" {
		return errors.New("database URI must be provided")
	}

	switch c.SessionBackend {
	case SessionBackendPostgres:
	case SessionBackendRedis:
		if c.RedisURL == "" {
			return errors.New("redis URL must be provided for the redis session backend")
		}
	default:
		return fmt.Errorf("unknown session backend %q", c.SessionBackend)
	}

	switch c.TokenStrategy {
	case TokenStrategyOpaque:
	case TokenStrategyJWT:
		if c.SessionSecret == defaultSessionSecret || len(c.SessionSecret) < minJWTSecretLength {
			return fmt.Errorf("jwt token strategy requires a session secret of at least %d characters", minJWTSecretLength)
		}
	default:
		return fmt.Errorf("unknown token strategy %q", c.TokenStrategy)
	}

	return nil
}
