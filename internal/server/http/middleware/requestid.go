package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-ID"
	// RequestIDContextKey holds the request identifier.
	RequestIDContextKey = "requestID"

	maxRequestIDLength = 128
)

// RequestID ensures each request has a stable identifier for logging.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader(requestIDHeader)
		if reqID == "" || len(reqID) > maxRequestIDLength {
			reqID = uuid.NewString()
		}
		c.Header(requestIDHeader, reqID)
		c.Set(RequestIDContextKey, reqID)
		c.Next()
	}
}
