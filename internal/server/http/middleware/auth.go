package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/areacheck/internal/domain/errors"
	"github.com/polkiloo/areacheck/internal/server/http/dto"
)

const (
	// UserIDContextKey is a gin context key for authenticated user identifier.
	UserIDContextKey = "userID"
	// TokenContextKey holds the bearer token the request was authenticated with.
	TokenContextKey = "authToken"
)

// unauthenticatedMessage is returned for every authentication failure.
const unauthenticatedMessage = "authentication required"

// Authenticator resolves a bearer token to its user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (int64, error)
}

// AuthRequired ensures user is authenticated before accessing handler.
func AuthRequired(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			abortWithError(c, http.StatusUnauthorized, dto.KindUnauthenticated, unauthenticatedMessage)
			return
		}

		userID, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, domainErrors.ErrUnauthenticated):
				abortWithError(c, http.StatusUnauthorized, dto.KindUnauthenticated, unauthenticatedMessage)
			case errors.Is(err, domainErrors.ErrStoreUnavailable):
				abortWithError(c, http.StatusServiceUnavailable, dto.KindStoreUnavailable, "session store unavailable")
			default:
				abortWithError(c, http.StatusInternalServerError, dto.KindInternal, "internal error")
			}
			return
		}

		c.Set(UserIDContextKey, userID)
		c.Set(TokenContextKey, token)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}

// SetAuthHeader exposes a freshly issued token in the response headers.
func SetAuthHeader(c *gin.Context, token string) {
	c.Header("Authorization", "Bearer "+token)
}
