package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"frontoffice/internal/models"
	"frontoffice/internal/repository"
	"frontoffice/internal/service"
)

type ProposalHandler struct {
	Proposals *service.ProposalService
}

func (h *ProposalHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/proposals")
	group.GET("", h.listProposals)
	group.GET("/:id", h.getProposal)
	group.POST("/:id/accept", h.acceptProposal)
	group.POST("/:id/reject", h.rejectProposal)
}

func (h *ProposalHandler) listProposals(c *gin.Context) {
	if h.Proposals == nil || h.Proposals.Repo == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	params := repository.ListProposalsParams{
		Limit:  intQuery(c, "limit", 50),
		Offset: intQuery(c, "offset", 0),
	}
	if team := strings.TrimSpace(c.Query("team")); team != "" {
		params.TeamAbbr = &team
	}
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		status := models.ProposalStatus(raw)
		params.Status = &status
	}
	items, err := h.Proposals.List(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, map[string]any{
		"limit":  params.Limit,
		"offset": params.Offset,
		"count":  len(items),
	})
}

func (h *ProposalHandler) getProposal(c *gin.Context) {
	if h.Proposals == nil || h.Proposals.Repo == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	item, err := h.Proposals.Repo.GetProposalByID(c.Request.Context(), id)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if item == nil {
		Error(c, http.StatusNotFound, "proposal not found", nil)
		return
	}
	Ok(c, item, nil)
}

func (h *ProposalHandler) acceptProposal(c *gin.Context) {
	h.respond(c, true)
}

func (h *ProposalHandler) rejectProposal(c *gin.Context) {
	h.respond(c, false)
}

func (h *ProposalHandler) respond(c *gin.Context, accept bool) {
	if h.Proposals == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	item, err := h.Proposals.Respond(c.Request.Context(), id, accept)
	switch {
	case errors.Is(err, service.ErrProposalNotFound):
		Error(c, http.StatusNotFound, "proposal not found", nil)
		return
	case errors.Is(err, service.ErrProposalResolved):
		Error(c, http.StatusConflict, "proposal already resolved", map[string]any{"status": item.Status})
		return
	case errors.Is(err, service.ErrProposalExpired):
		Error(c, http.StatusConflict, "proposal expired", nil)
		return
	case err != nil:
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, item, nil)
}
