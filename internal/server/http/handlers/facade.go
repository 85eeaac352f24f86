package handlers

import (
	"context"

	"github.com/polkiloo/areacheck/internal/domain/model"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) (string, error)
	Logout(ctx context.Context, token string) error
	CurrentUser(ctx context.Context, userID int64) (*model.User, error)
}

// PointFacade encapsulates point operations exposed via HTTP.
type PointFacade interface {
	SubmitPoint(ctx context.Context, userID int64, x, y, r float64) (*model.Point, error)
	Points(ctx context.Context, userID int64) ([]model.Point, error)
}

// StatsFacade provides point statistics and service health.
type StatsFacade interface {
	Stats() model.Stats
	Health(ctx context.Context) error
}

// AreaFacade aggregates the full set of operations used across handlers.
type AreaFacade interface {
	AuthFacade
	PointFacade
	StatsFacade
	Authenticate(ctx context.Context, token string) (int64, error)
}
