package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"disputedesk/internal/app"
	"disputedesk/internal/portal"
	"disputedesk/internal/transport/http/response"
)

type PortalHandler struct {
	portalService *app.PortalService
}

func NewPortalHandler(portalService *app.PortalService) *PortalHandler {
	return &PortalHandler{portalService: portalService}
}

// Catalog lists the portals shown on the landing page.
func (h *PortalHandler) Catalog(c *gin.Context) {
	response.OK(c, portal.Catalog())
}

func (h *PortalHandler) Open(c *gin.Context) {
	kind, ok := portal.ParseKind(c.Param("portal"))
	if !ok {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "unknown portal")
		return
	}

	result, err := h.portalService.Open(c.Request.Context(), kind)
	if err != nil {
		writeError(c, nil, err, "open portal failed")
		return
	}
	response.OK(c, result)
}

func (h *PortalHandler) View(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	view, err := h.portalService.View(c.Request.Context(), id)
	respondView(c, view, err, "load session failed")
}

// Leave returns to the landing page by dropping the session.
func (h *PortalHandler) Leave(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	if err := h.portalService.Leave(c.Request.Context(), id); err != nil {
		writeError(c, nil, err, "leave portal failed")
		return
	}
	response.OK(c, gin.H{"session_id": id})
}

func (h *PortalHandler) Notifications(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	notes, err := h.portalService.Notifications(c.Request.Context(), id)
	if err != nil {
		writeError(c, nil, err, "load notifications failed")
		return
	}
	response.OK(c, notes)
}
