package auth

import (
	"errors"
	"time"
)

var ErrInvalidToken = errors.New("invalid auth token")

// Strategy encodes a session id into a bearer token and back. It never
// decides whether the session is live; the session store does.
type Strategy interface {
	IssueToken(sessionID string, userID int64, expiresAt time.Time) (string, error)
	ParseToken(token string) (string, error)
	Name() string
}

type Options struct {
	TTL time.Duration
}

const defaultTTL = 24 * time.Hour

// SessionTTL returns the configured lifetime or the 24h default.
func (o Options) SessionTTL() time.Duration {
	if o.TTL <= 0 {
		return defaultTTL
	}
	return o.TTL
}
