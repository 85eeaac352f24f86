package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/areacheck/internal/server/http/dto"
)

func abortWithError(c *gin.Context, status int, kind, message string) {
	c.AbortWithStatusJSON(status, dto.NewError(kind, message))
}
