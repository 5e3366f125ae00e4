package middleware

import "net/http"

// StatusWriter wraps an http.ResponseWriter and records the status code and
// whether the response header has been written.
type StatusWriter struct {
	http.ResponseWriter
	status  int
	written bool
}

// NewStatusWriter wraps w. Status defaults to 200 until WriteHeader is called.
func NewStatusWriter(w http.ResponseWriter) *StatusWriter {
	if sw, ok := w.(*StatusWriter); ok {
		return sw
	}
	return &StatusWriter{ResponseWriter: w, status: http.StatusOK}
}

func (w *StatusWriter) WriteHeader(status int) {
	if !w.written {
		w.status = status
		w.written = true
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *StatusWriter) Write(b []byte) (int, error) {
	w.written = true
	return w.ResponseWriter.Write(b)
}

// Status returns the recorded status code.
func (w *StatusWriter) Status() int {
	return w.status
}

// Written reports whether the header or any body bytes have been sent.
func (w *StatusWriter) Written() bool {
	return w.written
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (w *StatusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
