package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"disputedesk/internal/app"
	"disputedesk/internal/transport/http/response"
)

type SendMessageRequest struct {
	Message string `json:"message" binding:"required,max=4000"`
}

type CustomerHandler struct {
	portalService *app.PortalService
}

func NewCustomerHandler(portalService *app.PortalService) *CustomerHandler {
	return &CustomerHandler{portalService: portalService}
}

func (h *CustomerHandler) Start(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	view, err := h.portalService.StartDispute(c.Request.Context(), id)
	respondView(c, view, err, "start dispute failed")
}

func (h *CustomerHandler) SendMessage(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}
	view, err := h.portalService.SendDisputeMessage(c.Request.Context(), id, req.Message)
	respondView(c, view, err, "send message failed")
}

func (h *CustomerHandler) Submit(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	view, err := h.portalService.SubmitDispute(c.Request.Context(), id)
	respondView(c, view, err, "submit dispute failed")
}

func (h *CustomerHandler) Close(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	view, err := h.portalService.CloseDispute(c.Request.Context(), id)
	respondView(c, view, err, "close dispute failed")
}
