package sums

import (
	"errors"
	"net/http"
)

// Domain errors for sum operations. The validation messages are returned to
// clients verbatim.
var (
	ErrInvalidInput  = errors.New(`Invalid input. Please send a JSON object with a "numbers" array.`)
	ErrInvalidNumber = errors.New("All elements in the numbers array must be valid numbers.")
	ErrMalformedBody = errors.New("malformed request body")
)

// MapHTTPStatus maps domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrInvalidNumber) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// rejectionReason labels a validation error for observers.
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrInvalidNumber):
		return "invalid_number"
	default:
		return ""
	}
}
