package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HTTPError is the error contract the handler layer responds with. Declared
// here rather than importing the errors package to avoid an import cycle.
type HTTPError interface {
	error
	StatusCode() int
	UserMessage() string
	GetContext() string
	Unwrap() error
}

// ErrorResponse is the JSON body every failed request returns.
type ErrorResponse struct {
	Error     string `json:"error"`
	Timestamp string `json:"timestamp"`
	RequestID string `json:"request_id,omitempty"`
}

// HandleGinError responds to a failed request. Errors implementing HTTPError
// keep their status and user message; anything else becomes an opaque 500.
func HandleGinError(c *gin.Context, err error) {
	reqID := GetRequestIDFromGin(c)

	statusCode := http.StatusInternalServerError
	message := "internal server error"

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		statusCode = httpErr.StatusCode()
		message = httpErr.UserMessage()
		slog.Error("HTTP error",
			"error", httpErr.Unwrap(),
			"user_message", message,
			"context", httpErr.GetContext(),
			"status_code", statusCode,
			"request_id", reqID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)
	} else {
		slog.Error("Unhandled error",
			"error", err,
			"request_id", reqID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)
	}

	c.AbortWithStatusJSON(statusCode, ErrorResponse{
		Error:     message,
		Timestamp: time.Now().Format(time.RFC3339),
		RequestID: reqID,
	})
}
