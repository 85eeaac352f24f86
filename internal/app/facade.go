package app

import (
	"context"

	"github.com/polkiloo/areacheck/internal/domain/model"
	"github.com/polkiloo/areacheck/internal/usecase"
)

// StatsRecorder accumulates statistics over stored points.
type StatsRecorder interface {
	Record(p model.Point)
	Snapshot() model.Stats
}

// HealthChecker reports whether the primary store is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

type AreaFacade struct {
	auth   *usecase.AuthUseCase
	points *usecase.PointUseCase
	stats  StatsRecorder
	health HealthChecker
}

func NewAreaFacade(auth *usecase.AuthUseCase, points *usecase.PointUseCase, stats StatsRecorder, health HealthChecker) *AreaFacade {
	return &AreaFacade{auth: auth, points: points, stats: stats, health: health}
}

func (f *AreaFacade) Register(ctx context.Context, username, password string) error {
	_, err := f.auth.Register(ctx, username, password)
	return err
}

func (f *AreaFacade) Login(ctx context.Context, username, password string) (string, error) {
	return f.auth.Login(ctx, username, password)
}

func (f *AreaFacade) Logout(ctx context.Context, token string) error {
	return f.auth.Logout(ctx, token)
}

func (f *AreaFacade) Authenticate(ctx context.Context, token string) (int64, error) {
	return f.auth.Authenticate(ctx, token)
}

func (f *AreaFacade) CurrentUser(ctx context.Context, userID int64) (*model.User, error) {
	return f.auth.GetByID(ctx, userID)
}

// SubmitPoint records the point and feeds it to the statistics.
func (f *AreaFacade) SubmitPoint(ctx context.Context, userID int64, x, y, r float64) (*model.Point, error) {
	point, err := f.points.Append(ctx, userID, x, y, r)
	if err != nil {
		return nil, err
	}
	f.stats.Record(*point)
	return point, nil
}

func (f *AreaFacade) Points(ctx context.Context, userID int64) ([]model.Point, error) {
	return f.points.List(ctx, userID)
}

func (f *AreaFacade) Stats() model.Stats {
	return f.stats.Snapshot()
}

func (f *AreaFacade) Health(ctx context.Context) error {
	if f.health == nil {
		return nil
	}
	return f.health.HealthCheck(ctx)
}

func (f *AreaFacade) PurgeExpiredSessions(ctx context.Context, limit int) (int64, error) {
	return f.auth.PurgeExpiredSessions(ctx, limit)
}
