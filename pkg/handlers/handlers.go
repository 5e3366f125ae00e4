// Package handlers provides HTTP response utilities for JSON APIs.
// These stateless functions standardize response formatting across handlers.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorResponse is the JSON body of every error response.
// Message carries the underlying cause and is omitted when empty.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// RespondJSON writes a JSON response with the given status code and data.
// It sets the Content-Type header to application/json.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondError logs the error and writes a JSON error response.
// The response body contains {"error": "<error message>"}.
// Client errors are logged at debug level, server errors at error level.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	logStatus(logger, status, "handler error", "error", err)
	RespondJSON(w, status, ErrorResponse{Error: err.Error()})
}

// RespondFailure logs and writes a JSON error response carrying both a summary
// and the underlying cause: {"error": summary, "message": cause}.
func RespondFailure(w http.ResponseWriter, logger *slog.Logger, status int, summary string, cause string) {
	logStatus(logger, status, "handler failure", "error", summary, "cause", cause)
	RespondJSON(w, status, ErrorResponse{Error: summary, Message: cause})
}

func logStatus(logger *slog.Logger, status int, msg string, args ...any) {
	args = append(args, "status", status)
	if status >= http.StatusInternalServerError {
		logger.Error(msg, args...)
		return
	}
	logger.Debug(msg, args...)
}
