// Package responses centralizes the HTTP error envelope so every route
// reports failures the same way.
package responses

import (
	"errors"

	"github.com/gin-gonic/gin"

	"converse-server/internal/utils/apperrors"
)

// ErrorResponse is the envelope sent for every failed request.
type ErrorResponse struct {
	Error ErrorInfo `json:"error"`
}

// ErrorInfo holds error information
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// HandleError maps err onto the taxonomy status code and aborts the request.
// For 5xx responses the underlying cause travels in detail for diagnostics.
func HandleError(c *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)

	info := ErrorInfo{
		Code:    string(apperrors.TypeOf(err)),
		Message: err.Error(),
	}
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		info.Message = appErr.Message
		if status >= 500 && appErr.Cause != nil {
			info.Detail = appErr.Cause.Error()
		}
	}

	c.AbortWithStatusJSON(status, ErrorResponse{Error: info})
}

// HandleErrorWithStatus aborts with an explicit status, bypassing taxonomy mapping.
func HandleErrorWithStatus(c *gin.Context, status int, err error, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: ErrorInfo{
		Code:    string(apperrors.TypeOf(err)),
		Message: message,
	}})
}
