package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/areacheck/internal/server/http/dto"
)

const maxLoginBody = 1 << 16

// LoginLimiter counts login attempts per key.
type LoginLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// LoginRateLimit throttles login attempts per username, or per client IP
// when the body carries none. A nil limiter disables the check and limiter
// errors let the request through.
func LoginRateLimit(limiter LoginLimiter, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxLoginBody))
		if err != nil {
			abortWithError(c, http.StatusBadRequest, dto.KindInvalidArgument, "unreadable body")
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		var req dto.AuthRequest
		_ = json.Unmarshal(body, &req)
		key := strings.TrimSpace(req.Username)
		if key == "" {
			key = "ip:" + c.ClientIP()
		}

		allowed, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			logger.Warn("login rate limit unavailable", slog.Any("error", err))
			c.Next()
			return
		}
		if !allowed {
			abortWithError(c, http.StatusTooManyRequests, dto.KindRateLimited, "too many login attempts, try again later")
			return
		}
		c.Next()
	}
}
