package apierrors

import (
	"net/http"

	"anxonews-server/internal/observability"

	"github.com/gin-gonic/gin"
)

var logger = observability.NewLogger()

// Debug carries upstream correlation details alongside a sanitized
// client message. It never contains credentials or internal addresses.
type Debug struct {
	Status  int    `json:"status"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse is the JSON structure returned to API clients
type ErrorResponse struct {
	Error string `json:"error"`
	Debug *Debug `json:"debug,omitempty"`
}

// respond writes the error response and logs correlation info
func respond(c *gin.Context, statusCode int, message string, debug *Debug) {
	ctx := c.Request.Context()
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "status_code", Value: statusCode},
		observability.Field{Key: "error_message", Value: message},
	)
	logger.Info(ctx, "API error response")

	c.JSON(statusCode, ErrorResponse{
		Error: message,
		Debug: debug,
	})
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	respond(c, http.StatusBadRequest, message, nil)
}

// Conflict sends a 409 response with optional upstream debug details
func Conflict(c *gin.Context, message string, debug *Debug) {
	respond(c, http.StatusConflict, message, debug)
}

// TooManyRequests sends a 429 response
func TooManyRequests(c *gin.Context, message string) {
	respond(c, http.StatusTooManyRequests, message, nil)
}

// ServiceUnavailable sends a 503 response and logs the internal error
func ServiceUnavailable(c *gin.Context, message string, internalErr error) {
	ctx := c.Request.Context()
	logger.Error(ctx, "service unavailable", internalErr)
	respond(c, http.StatusServiceUnavailable, message, nil)
}

// InternalError sends a sanitized 500 response with optional upstream
// debug details - never exposes internal errors to the client
func InternalError(c *gin.Context, message string, debug *Debug, internalErr error) {
	ctx := c.Request.Context()
	logger.Error(ctx, "internal error", internalErr)
	respond(c, http.StatusInternalServerError, message, debug)
}
