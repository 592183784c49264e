package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"frontoffice/internal/models"
	"frontoffice/internal/service"
)

type TeamHandler struct {
	Insights *service.InsightService
}

func (h *TeamHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/teams")
	group.GET("/:abbr", h.getTeam)
	group.GET("/:abbr/direction", h.getDirection)
	group.GET("/:abbr/lineup", h.getLineup)
	group.GET("/:abbr/retention", h.getRetention)
	group.POST("/:abbr/evaluate-trade", h.evaluateTrade)
}

func (h *TeamHandler) getTeam(c *gin.Context) {
	if h.Insights == nil || h.Insights.Repo == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	abbr := strings.ToUpper(strings.TrimSpace(c.Param("abbr")))
	team, err := h.Insights.Repo.GetTeamByAbbr(c.Request.Context(), abbr)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if team == nil {
		Error(c, http.StatusNotFound, "team not found", nil)
		return
	}
	Ok(c, team, nil)
}

func (h *TeamHandler) getDirection(c *gin.Context) {
	if h.Insights == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	abbr := strings.ToUpper(strings.TrimSpace(c.Param("abbr")))
	dir, err := h.Insights.TeamDirection(c.Request.Context(), abbr)
	if errors.Is(err, service.ErrTeamNotFound) {
		Error(c, http.StatusNotFound, "team not found", nil)
		return
	}
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, gin.H{"team": abbr, "direction": dir}, nil)
}

func (h *TeamHandler) getLineup(c *gin.Context) {
	if h.Insights == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	abbr := strings.ToUpper(strings.TrimSpace(c.Param("abbr")))
	result, err := h.Insights.Lineup(c.Request.Context(), abbr)
	if errors.Is(err, service.ErrTeamNotFound) {
		Error(c, http.StatusNotFound, "team not found", nil)
		return
	}
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, result, nil)
}

func (h *TeamHandler) getRetention(c *gin.Context) {
	if h.Insights == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	abbr := strings.ToUpper(strings.TrimSpace(c.Param("abbr")))
	scores, err := h.Insights.Retention(c.Request.Context(), abbr)
	if errors.Is(err, service.ErrTeamNotFound) {
		Error(c, http.StatusNotFound, "team not found", nil)
		return
	}
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, scores, nil)
}

type evaluateTradeRequest struct {
	Gives    []models.Asset `json:"gives" binding:"required"`
	Receives []models.Asset `json:"receives" binding:"required"`
}

func (h *TeamHandler) evaluateTrade(c *gin.Context) {
	if h.Insights == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	abbr := strings.ToUpper(strings.TrimSpace(c.Param("abbr")))
	var req evaluateTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body: "+err.Error(), nil)
		return
	}
	ev, err := h.Insights.EvaluateTrade(c.Request.Context(), abbr, req.Gives, req.Receives)
	if errors.Is(err, service.ErrTeamNotFound) {
		Error(c, http.StatusNotFound, "team not found", nil)
		return
	}
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, ev, nil)
}
