package repository

import (
	"context"
	"time"

	"github.com/polkiloo/areacheck/internal/domain/model"
)

// SessionRepository stores live sessions keyed by their hashed id.
type SessionRepository interface {
	Create(ctx context.Context, session model.Session) error
	Get(ctx context.Context, id string) (*model.Session, error)
	// Delete removes the session and reports whether a record existed.
	Delete(ctx context.Context, id string) (bool, error)
}

// ExpiredSessionPurger is implemented by stores that keep expired sessions
// until they are swept.
type ExpiredSessionPurger interface {
	DeleteExpired(ctx context.Context, now time.Time, limit int) (int64, error)
}
