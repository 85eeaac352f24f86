package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/areacheck/internal/domain/errors"
	"github.com/polkiloo/areacheck/internal/server/http/dto"
	"github.com/polkiloo/areacheck/internal/server/http/middleware"
)

// CurrentUserID extracts authenticated user identifier from context.
func CurrentUserID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

// writeError maps a domain error onto the HTTP error envelope.
func writeError(c *gin.Context, err error) {
	var (
		status int
		kind   string
	)
	switch {
	case errors.Is(err, domainErrors.ErrInvalidArgument):
		status, kind = http.StatusBadRequest, dto.KindInvalidArgument
	case errors.Is(err, domainErrors.ErrUsernameTaken):
		status, kind = http.StatusConflict, dto.KindUsernameTaken
	case errors.Is(err, domainErrors.ErrInvalidCredentials):
		status, kind = http.StatusUnauthorized, dto.KindInvalidCredentials
	case errors.Is(err, domainErrors.ErrUnauthenticated):
		status, kind = http.StatusUnauthorized, dto.KindUnauthenticated
	case errors.Is(err, domainErrors.ErrStoreUnavailable):
		status, kind = http.StatusServiceUnavailable, dto.KindStoreUnavailable
	default:
		c.JSON(http.StatusInternalServerError, dto.NewError(dto.KindInternal, "internal error"))
		return
	}
	c.JSON(status, dto.NewError(kind, err.Error()))
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.NewError(dto.KindInvalidArgument, message))
}
