package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"disputedesk/internal/app"
	"disputedesk/internal/transport/http/response"
)

// filesField is the repeated multipart field carrying documents.
const filesField = "files"

type EvidenceHandler struct {
	portalService *app.PortalService
}

func NewEvidenceHandler(portalService *app.PortalService) *EvidenceHandler {
	return &EvidenceHandler{portalService: portalService}
}

// Stage adds picked or dropped files to the pending list.
func (h *EvidenceHandler) Stage(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	files, ok := formFiles(c)
	if !ok {
		return
	}
	view, err := h.portalService.StageEvidence(c.Request.Context(), id, files)
	respondView(c, view, err, "stage files failed")
}

func (h *EvidenceHandler) Remove(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid file index")
		return
	}
	view, err := h.portalService.RemoveEvidence(c.Request.Context(), id, index)
	respondView(c, view, err, "remove file failed")
}

func (h *EvidenceHandler) Upload(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	view, err := h.portalService.UploadEvidence(c.Request.Context(), id)
	respondView(c, view, err, "upload files failed")
}

func formFiles(c *gin.Context) ([]app.IncomingFile, bool) {
	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid multipart form")
		return nil, false
	}
	headers := form.File[filesField]
	if len(headers) == 0 {
		response.Error(c, http.StatusBadRequest, response.CodeNoFiles, "no files provided")
		return nil, false
	}
	files := make([]app.IncomingFile, 0, len(headers))
	for _, fh := range headers {
		files = append(files, app.FromMultipart(fh))
	}
	return files, true
}
