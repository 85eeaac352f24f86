package repository

import (
	"context"

	"github.com/polkiloo/areacheck/internal/domain/model"
)

// PointRepository is the append-only ledger of evaluated points.
type PointRepository interface {
	Append(ctx context.Context, point model.Point) (*model.Point, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Point, error)
}
