// Package response defines the JSON envelope shared by every API endpoint.
// Code is 0 on success and mirrors the HTTP status on failure, so the
// dashboard can branch on the body without re-reading the status line.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the wire shape of every API response.
type Envelope struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success wraps data in a zero-code envelope.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error sends an error envelope with the given HTTP status.
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{
		Code:    status,
		Message: message,
	})
}

// BadRequest rejects malformed input (bad timestamps, invalid coordinates).
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// NotFound reports a missing technician, configuration, or task.
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// Conflict reports a request valid in form but impossible in the current
// state, like confirming a home with no suggestion on file.
func Conflict(c *gin.Context, message string) {
	Error(c, http.StatusConflict, message)
}

// InternalError reports a storage or engine failure.
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}
