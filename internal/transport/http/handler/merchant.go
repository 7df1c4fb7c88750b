package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"disputedesk/internal/app"
	"disputedesk/internal/transport/http/response"
)

type MerchantHandler struct {
	portalService *app.PortalService
}

func NewMerchantHandler(portalService *app.PortalService) *MerchantHandler {
	return &MerchantHandler{portalService: portalService}
}

func (h *MerchantHandler) ListTransactions(c *gin.Context) {
	txs, err := h.portalService.ListTransactions(c.Request.Context())
	if err != nil {
		writeError(c, nil, err, "list transactions failed")
		return
	}
	response.OK(c, txs)
}

func (h *MerchantHandler) StartValidation(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	view, err := h.portalService.StartValidation(c.Request.Context(), id, c.Param("id"))
	respondView(c, view, err, "start validation failed")
}

func (h *MerchantHandler) SendMessage(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}
	view, err := h.portalService.SendValidationMessage(c.Request.Context(), id, req.Message)
	respondView(c, view, err, "send validation message failed")
}

func (h *MerchantHandler) Submit(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	view, err := h.portalService.SubmitValidation(c.Request.Context(), id)
	respondView(c, view, err, "submit validation failed")
}

func (h *MerchantHandler) Cancel(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	view, err := h.portalService.CancelValidation(c.Request.Context(), id)
	respondView(c, view, err, "cancel validation failed")
}
