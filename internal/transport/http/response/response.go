package response

import "github.com/gin-gonic/gin"

const (
	CodeOK              = 0
	CodeBadRequest      = 40000
	CodeMessageEmpty    = 40001
	CodeNoFiles         = 40002
	CodeInvalidDecision = 40003
	CodeUnauthorized    = 40100
	CodeWrongPortal     = 40300
	CodeSessionNotFound = 40401
	CodeCaseNotFound    = 40402
	CodeTxNotFound      = 40403
	CodeIndexNotFound   = 40404
	CodeInvalidState    = 40900
	CodeBusy            = 40901
	CodeSubmitNotReady  = 40902
	CodeUploadRejected  = 42200
	CodeInternalServer  = 50000
	CodeAgentFailed     = 50200
)

type APIResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(200, APIResponse{
		Code:    CodeOK,
		Message: "ok",
		Data:    data,
	})
}

func Error(c *gin.Context, httpStatus, code int, message string) {
	c.JSON(httpStatus, APIResponse{
		Code:    code,
		Message: message,
	})
}

// ErrorWithData is used when a failed call still changed what the page
// shows, such as a user turn kept after an agent failure.
func ErrorWithData(c *gin.Context, httpStatus, code int, message string, data interface{}) {
	c.JSON(httpStatus, APIResponse{
		Code:    code,
		Message: message,
		Data:    data,
	})
}
