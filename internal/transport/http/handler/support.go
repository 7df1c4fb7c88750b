package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"disputedesk/internal/app"
	"disputedesk/internal/transport/http/response"
)

type DecisionRequest struct {
	Decision string `json:"decision" binding:"required"`
}

type SupportHandler struct {
	portalService *app.PortalService
}

func NewSupportHandler(portalService *app.PortalService) *SupportHandler {
	return &SupportHandler{portalService: portalService}
}

func (h *SupportHandler) ListCases(c *gin.Context) {
	cases, err := h.portalService.ListCases(c.Request.Context())
	if err != nil {
		writeError(c, nil, err, "list cases failed")
		return
	}
	response.OK(c, cases)
}

func (h *SupportHandler) Select(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	view, err := h.portalService.SelectCase(c.Request.Context(), id, c.Param("id"))
	respondView(c, view, err, "select case failed")
}

func (h *SupportHandler) Decide(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}
	view, err := h.portalService.Decide(c.Request.Context(), id, c.Param("id"), app.Decision(req.Decision))
	respondView(c, view, err, "record decision failed")
}

func (h *SupportHandler) Knowledge(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	view, err := h.portalService.CaseKnowledge(c.Request.Context(), id, c.Param("id"))
	respondView(c, view, err, "knowledge lookup failed")
}
