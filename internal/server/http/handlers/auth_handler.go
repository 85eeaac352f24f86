package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/areacheck/internal/server/http/dto"
	"github.com/polkiloo/areacheck/internal/server/http/middleware"
)

// AuthHandler processes registration, login and logout.
type AuthHandler struct {
	facade AuthFacade
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade) *AuthHandler {
	return &AuthHandler{facade: facade}
}

// Register handles POST /api/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "malformed request body")
		return
	}

	if err := h.facade.Register(c.Request.Context(), req.Username, req.Password); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "User registered successfully"})
}

// Login handles POST /api/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "malformed request body")
		return
	}

	token, err := h.facade.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	middleware.SetAuthHeader(c, token)
	c.JSON(http.StatusOK, dto.TokenResponse{Token: token})
}

// Logout handles POST /api/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.facade.Logout(c.Request.Context(), c.GetString(middleware.TokenContextKey)); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Logged out successfully"})
}

// Me handles GET /api/me.
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.facade.CurrentUser(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ProfileResponse{
		Username: user.Username,
		Message:  "Welcome, " + user.Username,
	})
}
