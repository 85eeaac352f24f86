package usecase

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/polkiloo/areacheck/internal/domain/model"
	"github.com/polkiloo/areacheck/internal/domain/region"
	"github.com/polkiloo/areacheck/internal/domain/repository"
)

// PointUseCase evaluates submissions and keeps each user's ledger.
type PointUseCase struct {
	points repository.PointRepository
}

// NewPointUseCase constructs PointUseCase.
func NewPointUseCase(points repository.PointRepository) *PointUseCase {
	return &PointUseCase{points: points}
}

// Append evaluates (x, y) against r and records the outcome for userID.
// Rejected input never reaches the store.
func (u *PointUseCase) Append(ctx context.Context, userID int64, x, y, r float64) (_ *model.Point, err error) {
	ctx, span := tracer.Start(ctx, "points.Append")
	defer func() { endSpan(span, err) }()

	hit, err := region.Evaluate(x, y, r)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int64("user.id", userID), attribute.Bool("point.hit", hit))

	stored, err := u.points.Append(ctx, model.Point{UserID: userID, X: x, Y: y, R: r, Hit: hit})
	if err != nil {
		return nil, storeFailure("append point", err)
	}
	return stored, nil
}

// List returns the user's points in submission order, never nil.
func (u *PointUseCase) List(ctx context.Context, userID int64) (_ []model.Point, err error) {
	ctx, span := tracer.Start(ctx, "points.List")
	defer func() { endSpan(span, err) }()

	points, err := u.points.ListByUser(ctx, userID)
	if err != nil {
		return nil, storeFailure("list points", err)
	}
	if points == nil {
		points = []model.Point{}
	}
	span.SetAttributes(attribute.Int("points.count", len(points)))
	return points, nil
}
