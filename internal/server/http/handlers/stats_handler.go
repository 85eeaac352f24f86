package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/areacheck/internal/server/http/dto"
)

// StatsHandler exposes point statistics and the health probe.
type StatsHandler struct {
	facade StatsFacade
}

func NewStatsHandler(facade StatsFacade) *StatsHandler {
	return &StatsHandler{facade: facade}
}

// Stats handles GET /api/stats.
func (h *StatsHandler) Stats(c *gin.Context) {
	s := h.facade.Stats()
	c.JSON(http.StatusOK, dto.StatsResponse{
		Total:        s.Total,
		OutOfDisplay: s.OutOfDisplay,
		Misses:       s.Misses,
		Area:         s.Area,
	})
}

// Health handles GET /healthz.
func (h *StatsHandler) Health(c *gin.Context) {
	if err := h.facade.Health(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, dto.NewError(dto.KindStoreUnavailable, "database unreachable"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
