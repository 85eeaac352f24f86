package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/areacheck/internal/server/http/handlers"
	"github.com/polkiloo/areacheck/internal/server/http/middleware"
)

// Params collects router dependencies. Limiter and Idempotency are absent
// when Redis is not configured.
type Params struct {
	fx.In

	Facade      handlers.AreaFacade
	Logger      *slog.Logger
	Limiter     middleware.LoginLimiter     `optional:"true"`
	Idempotency middleware.IdempotencyStore `optional:"true"`
}

// Setup configures gin router with handlers and middleware.
func Setup(p Params) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger(p.Logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(p.Facade)
	pointHandler := handlers.NewPointHandler(p.Facade)
	statsHandler := handlers.NewStatsHandler(p.Facade)

	engine.GET("/healthz", statsHandler.Health)

	api := engine.Group("/api")
	api.POST("/register", authHandler.Register)
	api.POST("/login", middleware.LoginRateLimit(p.Limiter, p.Logger), authHandler.Login)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(p.Facade))
	authed.POST("/logout", authHandler.Logout)
	authed.GET("/me", authHandler.Me)
	authed.POST("/points", middleware.Idempotency(p.Idempotency, p.Logger), pointHandler.Submit)
	authed.GET("/points", pointHandler.List)
	authed.GET("/stats", statsHandler.Stats)

	return engine
}
