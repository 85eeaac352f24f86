package test

import (
	"context"
	"sync"

	"github.com/polkiloo/areacheck/internal/domain/model"
)

// PointFacadeStub provides controllable behaviour for point endpoints.
type PointFacadeStub struct {
	SubmitFn func(context.Context, int64, float64, float64, float64) (*model.Point, error)
	PointsFn func(context.Context, int64) ([]model.Point, error)
}

// SubmitPoint delegates to provided function or echoes a hit.
func (s PointFacadeStub) SubmitPoint(ctx context.Context, userID int64, x, y, r float64) (*model.Point, error) {
	if s.SubmitFn != nil {
		return s.SubmitFn(ctx, userID, x, y, r)
	}
	return &model.Point{UserID: userID, X: x, Y: y, R: r, Hit: true}, nil
}

func (s PointFacadeStub) Points(ctx context.Context, userID int64) ([]model.Point, error) {
	if s.PointsFn != nil {
		return s.PointsFn(ctx, userID)
	}
	return []model.Point{{UserID: userID, X: 1, Y: 1, R: 2, Hit: true}}, nil
}

// StatsFacadeStub returns canned statistics and health.
type StatsFacadeStub struct {
	Snapshot model.Stats
	HealthFn func(context.Context) error
}

func (s StatsFacadeStub) Stats() model.Stats {
	return s.Snapshot
}

func (s StatsFacadeStub) Health(ctx context.Context) error {
	if s.HealthFn != nil {
		return s.HealthFn(ctx)
	}
	return nil
}

// AreaFacadeStub aggregates facade dependencies for HTTP layer tests.
type AreaFacadeStub struct {
	AuthFacadeStub
	PointFacadeStub
	StatsFacadeStub
}

// PurgerStub counts expired session sweeps. Batches are returned in order,
// zero afterwards.
type PurgerStub struct {
	mu      sync.Mutex
	Batches []int64
	Err     error
	Limits  []int
	Calls   chan struct{}
}

func (s *PurgerStub) PurgeExpiredSessions(ctx context.Context, limit int) (int64, error) {
	s.mu.Lock()
	s.Limits = append(s.Limits, limit)
	var n int64
	if len(s.Batches) > 0 {
		n = s.Batches[0]
		s.Batches = s.Batches[1:]
	}
	err := s.Err
	s.mu.Unlock()

	if s.Calls != nil {
		select {
		case s.Calls <- struct{}{}:
		default:
		}
	}
	return n, err
}

// CallCount returns the number of sweeps so far.
func (s *PurgerStub) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Limits)
}
