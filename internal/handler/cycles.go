package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"frontoffice/internal/service"
)

// CycleHandler exposes manual triggers for the scheduled franchise cycles.
type CycleHandler struct {
	Cycles *service.CycleService
}

func (h *CycleHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/cycles")
	group.POST("/daily", h.runDaily)
	group.POST("/weekly", h.runWeekly)
	group.POST("/season-boundary", h.runSeasonBoundary)
}

func (h *CycleHandler) runDaily(c *gin.Context) {
	h.run(c, "daily", func() error { return h.Cycles.RunDaily(c.Request.Context()) })
}

func (h *CycleHandler) runWeekly(c *gin.Context) {
	h.run(c, "weekly", func() error { return h.Cycles.RunWeekly(c.Request.Context()) })
}

func (h *CycleHandler) runSeasonBoundary(c *gin.Context) {
	h.run(c, "season_boundary", func() error { return h.Cycles.RunSeasonBoundary(c.Request.Context()) })
}

func (h *CycleHandler) run(c *gin.Context, name string, fn func() error) {
	if h.Cycles == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	if err := fn(); err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, gin.H{"cycle": name, "status": "completed"}, nil)
}
