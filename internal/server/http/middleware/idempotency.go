package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/areacheck/internal/domain/errors"
	"github.com/polkiloo/areacheck/internal/domain/model"
	"github.com/polkiloo/areacheck/internal/server/http/dto"
)

const (
	idempotencyKeyHeader = "Idempotency-Key"
	replayedHeader       = "Idempotent-Replayed"
	maxIdempotencyKey    = 255
	persistTimeout       = 2 * time.Second
)

// IdempotencyStore reserves keys and keeps responses for replay.
type IdempotencyStore interface {
	Reserve(ctx context.Context, key string) (*model.CachedResponse, error)
	Save(ctx context.Context, key string, resp model.CachedResponse) error
	Release(ctx context.Context, key string) error
}

type recordingWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *recordingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *recordingWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Idempotency replays the first response for a repeated Idempotency-Key
// header. Requests without the header, or a nil store, pass through. Keys
// are scoped to the authenticated user, so it must run after AuthRequired.
func Idempotency(store IdempotencyStore, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(idempotencyKeyHeader)
		if store == nil || key == "" {
			c.Next()
			return
		}
		if len(key) > maxIdempotencyKey {
			abortWithError(c, http.StatusBadRequest, dto.KindInvalidArgument, "idempotency key too long")
			return
		}

		scoped := strconv.FormatInt(c.GetInt64(UserIDContextKey), 10) + ":" + key

		cached, err := store.Reserve(c.Request.Context(), scoped)
		switch {
		case errors.Is(err, domainErrors.ErrRequestInProgress):
			abortWithError(c, http.StatusConflict, dto.KindRequestInProgress, "a request with this idempotency key is in progress")
			return
		case err != nil:
			logger.Error("idempotency lookup failed", slog.String("key", key), slog.Any("error", err))
			abortWithError(c, http.StatusServiceUnavailable, dto.KindStoreUnavailable, "idempotency store unavailable")
			return
		case cached != nil:
			c.Header(replayedHeader, "true")
			c.Data(cached.Status, cached.ContentType, cached.Body)
			c.Abort()
			return
		}

		writer := &recordingWriter{ResponseWriter: c.Writer}
		c.Writer = writer
		c.Next()

		ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request.Context()), persistTimeout)
		defer cancel()

		status := writer.Status()
		if status >= http.StatusInternalServerError {
			if err := store.Release(ctx, scoped); err != nil {
				logger.Warn("idempotency release failed", slog.String("key", key), slog.Any("error", err))
			}
			return
		}

		resp := model.CachedResponse{
			Status:      status,
			ContentType: writer.Header().Get("Content-Type"),
			Body:        writer.body.Bytes(),
		}
		if err := store.Save(ctx, scoped, resp); err != nil {
			logger.Error("failed to persist idempotent response", slog.String("key", key), slog.Any("error", err))
			_ = store.Release(ctx, scoped)
		}
	}
}
