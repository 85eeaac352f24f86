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

const (
	idempotencyPrefix = "idempotency:v1:"
	inProgressMarker  = "__in_progress__"
)

// IdempotencyStore reserves keys and keeps the first response for replay.
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewIdempotencyStore(client *redis.Client, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &IdempotencyStore{client: client, ttl: ttl}
}

// Reserve claims key. It returns the stored response when the key was
// already completed and ErrRequestInProgress while another request holds it.
func (s *IdempotencyStore) Reserve(ctx context.Context, key string) (*model.CachedResponse, error) {
	cacheKey := idempotencyPrefix + key

	cached, err := s.client.Get(ctx, cacheKey).Result()
	switch {
	case err == nil:
		if cached == inProgressMarker {
			return nil, domainErrors.ErrRequestInProgress
		}
		var stored model.CachedResponse
		if err := json.Unmarshal([]byte(cached), &stored); err != nil {
			return nil, fmt.Errorf("decode stored response: %w", err)
		}
		return &stored, nil
	case !errors.Is(err, redis.Nil):
		return nil, err
	}

	ok, err := s.client.SetNX(ctx, cacheKey, inProgressMarker, s.ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domainErrors.ErrRequestInProgress
	}
	return nil, nil
}

// Save replaces the reservation with the final response.
func (s *IdempotencyStore) Save(ctx context.Context, key string, resp model.CachedResponse) error {
	payload, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	return s.client.Set(ctx, idempotencyPrefix+key, payload, s.ttl).Err()
}

// Release drops the reservation so the request may be retried.
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	return s.client.Del(ctx, idempotencyPrefix+key).Err()
}
