package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
)

// Fallback writes the response for a failure that escaped every handler.
type Fallback func(w http.ResponseWriter, r *http.Request, err error)

// Recover returns middleware that converts a panic anywhere below it into a
// response written by fallback. The panic value and stack are logged. Only
// http.ErrAbortHandler is re-panicked; if the handler already started the
// response, the failure is only logged.
func Recover(logger *slog.Logger, fallback Fallback) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sw := NewStatusWriter(w)

			defer func() {
				v := recover()
				if v == nil {
					return
				}

				err := panicError(v)
				if errors.Is(err, http.ErrAbortHandler) {
					panic(v)
				}

				logger.Error(
					"unhandled failure",
					"error", err,
					"method", r.Method,
					"uri", r.URL.RequestURI(),
					"request_id", RequestIDFrom(r.Context()),
					"stack", string(debug.Stack()),
				)

				if sw.Written() {
					return
				}
				fallback(sw, r, err)
			}()

			next.ServeHTTP(sw, r)
		})
	}
}

func panicError(v any) error {
	if err, ok := v.(error); ok {
		return err
	}
	return fmt.Errorf("%v", v)
}
