package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	domainErrors "github.com/polkiloo/areacheck/internal/domain/errors"
	"github.com/polkiloo/areacheck/internal/domain/model"
)

const sessionPrefix = "session:v1:"

// SessionStore keeps sessions as JSON values expiring with the session.
type SessionStore struct {
	client *redis.Client
	now    func() time.Time
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client, now: time.Now}
}

// Create stores the session unless one with the same id exists. Already
// expired sessions are rejected.
func (s *SessionStore) Create(ctx context.Context, session model.Session) error {
	ttl := session.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return fmt.Errorf("%w: session already expired", domainErrors.ErrInvalidArgument)
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	ok, err := s.client.SetNX(ctx, sessionPrefix+session.ID, payload, ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return domainErrors.ErrAlreadyExists
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, id string) (*model.Session, error) {
	raw, err := s.client.Get(ctx, sessionPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	var session model.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &session, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) (bool, error) {
	n, err := s.client.Del(ctx, sessionPrefix+id).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
