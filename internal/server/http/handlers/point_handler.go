package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/areacheck/internal/server/http/dto"
	"github.com/polkiloo/areacheck/internal/usecase"
)

// PointHandler manages point submissions.
type PointHandler struct {
	facade PointFacade
}

// NewPointHandler constructs PointHandler.
func NewPointHandler(facade PointFacade) *PointHandler {
	return &PointHandler{facade: facade}
}

// Submit handles POST /api/points.
func (h *PointHandler) Submit(c *gin.Context) {
	var req dto.PointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "malformed request body")
		return
	}
	if err := usecase.ValidateSubmission(req.X, req.Y, req.R); err != nil {
		writeError(c, err)
		return
	}

	point, err := h.facade.SubmitPoint(c.Request.Context(), CurrentUserID(c), *req.X, *req.Y, *req.R)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPointResponse(*point))
}

// List handles GET /api/points.
func (h *PointHandler) List(c *gin.Context) {
	points, err := h.facade.Points(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]dto.PointResponse, 0, len(points))
	for _, p := range points {
		resp = append(resp, dto.NewPointResponse(p))
	}
	c.JSON(http.StatusOK, resp)
}
