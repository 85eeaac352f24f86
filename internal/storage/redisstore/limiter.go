package redisstore

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const loginLimitPrefix = "rl:login:"

// LoginLimiter counts attempts per key in fixed one-minute windows.
type LoginLimiter struct {
	client    *redis.Client
	maxPerMin int64
	window    time.Duration
}

func NewLoginLimiter(client *redis.Client, maxPerMin int) *LoginLimiter {
	if maxPerMin <= 0 {
		maxPerMin = 5
	}
	return &LoginLimiter{client: client, maxPerMin: int64(maxPerMin), window: time.Minute}
}

// Allow records an attempt for key and reports whether it is within the limit.
func (l *LoginLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := loginLimitPrefix + key
	cnt, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return true, err
	}
	if cnt == 1 {
		if err := l.client.Expire(ctx, redisKey, l.window).Err(); err != nil {
			return true, err
		}
	}
	return cnt <= l.maxPerMin, nil
}
