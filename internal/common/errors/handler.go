// internal/common/errors/handler.go
package errors

import (
	"time"

	"github.com/gin-gonic/gin"
)

// ErrorHandler writes standardized error responses for HTTP handlers.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Respond normalizes err to a StandardError, logs the full detail server-side
// and writes the client-facing response. Server errors never leak Details to
// the client; they get a generic message only.
func (h *ErrorHandler) Respond(c *gin.Context, err error) {
	stdErr := h.normalizeError(err)
	status := HTTPStatus(stdErr.Code)

	h.logError(c, stdErr, status)

	if IsClientError(stdErr.Code) {
		c.JSON(status, gin.H{
			"success": false,
			"error":   stdErr.Message,
		})
		return
	}

	c.JSON(status, gin.H{
		"success": false,
		"error":   "Internal server error",
	})
}

// normalizeError ensures we always have a StandardError
func (h *ErrorHandler) normalizeError(err error) *StandardError {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func (h *ErrorHandler) logError(c *gin.Context, stdErr *StandardError, status int) {
	fields := map[string]interface{}{
		"errorCode": string(stdErr.Code),
		"details":   stdErr.Details,
		"status":    status,
		"path":      c.FullPath(),
		"method":    c.Request.Method,
	}
	if requestID, exists := c.Get("request_id"); exists {
		fields["requestId"] = requestID
	}

	if IsClientError(stdErr.Code) {
		h.logger.Warn(stdErr.Message, fields)
		return
	}
	h.logger.Error(stdErr.Message, fields)
}
