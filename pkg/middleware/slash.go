package middleware

import (
	"net/http"
	"strings"
)

// TrimSlash returns middleware that removes a single trailing slash from the
// request path before routing, so "/sum/" is served by the "/sum" route.
// The root path "/" is preserved. The request is rewritten rather than
// redirected so POST bodies reach the handler.
func TrimSlash() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(r.URL.Path) > 1 && strings.HasSuffix(r.URL.Path, "/") {
				r2 := r.Clone(r.Context())
				r2.URL.Path = strings.TrimSuffix(r.URL.Path, "/")
				if r2.URL.RawPath != "" {
					r2.URL.RawPath = strings.TrimSuffix(r2.URL.RawPath, "/")
				}
				next.ServeHTTP(w, r2)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
