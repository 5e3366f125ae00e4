package sums

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/counter-api/pkg/handlers"
	"github.com/JaimeStill/counter-api/pkg/routes"
)

// FailureSummary is the error text of a sum that failed unexpectedly.
const FailureSummary = "Internal server error"

type Handler struct {
	sys         System
	logger      *slog.Logger
	maxBodySize int64
}

func NewHandler(sys System, logger *slog.Logger, maxBodySize int64) *Handler {
	return &Handler{
		sys:         sys,
		logger:      logger,
		maxBodySize: maxBodySize,
	}
}

func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Tags:        []string{"Sum"},
		Description: "Sum arrays of numbers",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/sum", Handler: h.Sum, OpenAPI: Spec.Sum},
		},
		Schemas:   Spec.Schemas(),
		Responses: Spec.Responses(),
	}
}

// Sum answers validation failures with 400 and every other failure,
// including a panic, with a 500 carrying the cause.
func (h *Handler) Sum(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			h.fail(w, fmt.Errorf("%v", rec))
		}
	}()

	body, err := ReadBody(w, r, h.maxBodySize)
	if err != nil {
		h.fail(w, err)
		return
	}

	result, err := h.sys.Sum(r.Context(), body)
	if err != nil {
		if status := MapHTTPStatus(err); status < http.StatusInternalServerError {
			handlers.RespondError(w, h.logger, status, err)
			return
		}
		h.fail(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	handlers.RespondFailure(w, h.logger, http.StatusInternalServerError, FailureSummary, err.Error())
}
