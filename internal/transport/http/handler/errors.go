package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"disputedesk/internal/app"
	"disputedesk/internal/transport/http/middleware"
	"disputedesk/internal/transport/http/response"
	"disputedesk/internal/upload"
)

// writeError maps service errors to the response envelope. view, when not
// nil, is returned as data so the page can render what changed.
func writeError(c *gin.Context, view *app.View, err error, fallback string) {
	var failure *app.AgentFailure
	switch {
	case errors.As(err, &failure):
		response.ErrorWithData(c, http.StatusBadGateway, response.CodeAgentFailed, failure.Notice, view)
	case errors.Is(err, app.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
	case errors.Is(err, app.ErrMessageEmpty):
		response.Error(c, http.StatusBadRequest, response.CodeMessageEmpty, err.Error())
	case errors.Is(err, app.ErrNoFiles):
		response.Error(c, http.StatusBadRequest, response.CodeNoFiles, err.Error())
	case errors.Is(err, app.ErrInvalidDecision):
		response.Error(c, http.StatusBadRequest, response.CodeInvalidDecision, err.Error())
	case errors.Is(err, upload.ErrNothingToUpload):
		response.ErrorWithData(c, http.StatusBadRequest, response.CodeNoFiles, err.Error(), view)
	case errors.Is(err, app.ErrWrongPortal):
		response.Error(c, http.StatusForbidden, response.CodeWrongPortal, err.Error())
	case errors.Is(err, app.ErrSessionNotFound):
		response.Error(c, http.StatusNotFound, response.CodeSessionNotFound, err.Error())
	case errors.Is(err, app.ErrCaseNotFound):
		response.Error(c, http.StatusNotFound, response.CodeCaseNotFound, err.Error())
	case errors.Is(err, app.ErrTransactionNotFound):
		response.Error(c, http.StatusNotFound, response.CodeTxNotFound, err.Error())
	case errors.Is(err, upload.ErrIndexOutOfRange):
		response.Error(c, http.StatusNotFound, response.CodeIndexNotFound, err.Error())
	case errors.Is(err, app.ErrInvalidState):
		response.Error(c, http.StatusConflict, response.CodeInvalidState, err.Error())
	case errors.Is(err, app.ErrBusy):
		response.Error(c, http.StatusConflict, response.CodeBusy, err.Error())
	case errors.Is(err, app.ErrSubmitNotReady):
		response.Error(c, http.StatusConflict, response.CodeSubmitNotReady, err.Error())
	case errors.Is(err, upload.ErrUploadRejected):
		response.ErrorWithData(c, http.StatusUnprocessableEntity, response.CodeUploadRejected, err.Error(), view)
	default:
		slog.ErrorContext(c.Request.Context(), fallback, "error", err)
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, fallback)
	}
}

func sessionID(c *gin.Context) (string, bool) {
	id, ok := middleware.SessionIDFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
	}
	return id, ok
}

// respondView writes a view or the mapped error.
func respondView(c *gin.Context, view *app.View, err error, fallback string) {
	if err != nil {
		writeError(c, view, err, fallback)
		return
	}
	response.OK(c, view)
}
