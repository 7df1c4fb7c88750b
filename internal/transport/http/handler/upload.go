package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"disputedesk/internal/app"
	"disputedesk/internal/upload"
)

// UploadHandler serves the upload endpoint. It answers with the upload
// component's own body instead of the response envelope.
type UploadHandler struct {
	uploadService *app.UploadService
}

func NewUploadHandler(uploadService *app.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

func (h *UploadHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil || len(form.File[filesField]) == 0 {
		c.JSON(http.StatusBadRequest, rejected("No files provided"))
		return
	}

	files := make([]app.IncomingFile, 0, len(form.File[filesField]))
	for _, fh := range form.File[filesField] {
		files = append(files, app.FromMultipart(fh))
	}

	sessionID := strings.TrimSpace(c.PostForm("session_id"))
	resp, err := h.uploadService.Store(c.Request.Context(), sessionID, files)
	if err != nil {
		c.JSON(http.StatusInternalServerError, rejected("Upload failed"))
		return
	}
	if !resp.Success {
		c.JSON(http.StatusUnprocessableEntity, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func rejected(message string) upload.Response {
	return upload.Response{
		Success:  false,
		Files:    []upload.UploadedFile{},
		AssetIDs: []string{},
		Message:  message,
	}
}
