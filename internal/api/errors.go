package api

import (
	"net/http"

	"github.com/JaimeStill/counter-api/pkg/handlers"
)

// Fixed texts of the fallback error responses.
const (
	NotFoundError   = "Route not found"
	NotFoundMessage = "The requested endpoint does not exist."
	FailureError    = "Something went wrong!"
)

// NotFound answers any request no route matched.
func NotFound(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusNotFound, handlers.ErrorResponse{
		Error:   NotFoundError,
		Message: NotFoundMessage,
	})
}

// Failure is the recover fallback for failures no handler dealt with.
// The recover middleware has already logged err with its stack.
func Failure(w http.ResponseWriter, r *http.Request, err error) {
	handlers.RespondJSON(w, http.StatusInternalServerError, handlers.ErrorResponse{
		Error:   FailureError,
		Message: err.Error(),
	})
}
