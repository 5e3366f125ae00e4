package middleware

import (
	"context"
	"net/http"
	"strings"
)

type routeKey struct{}

type routeSlot struct {
	route string
}

// TrackRoute returns a request whose context carries an empty route slot,
// and a function reading what the router recorded into it.
func TrackRoute(r *http.Request) (*http.Request, func() string) {
	slot := &routeSlot{}
	ctx := context.WithValue(r.Context(), routeKey{}, slot)
	return r.WithContext(ctx), func() string { return slot.route }
}

// SetRoute records the matched route on a tracked request. ServeMux patterns
// such as "POST /sum" or "GET /{$}" are reduced to their path.
func SetRoute(r *http.Request, pattern string) {
	slot, ok := r.Context().Value(routeKey{}).(*routeSlot)
	if !ok {
		return
	}
	slot.route = RoutePath(pattern)
}

// RoutePath strips the method and the exact-match marker from a pattern.
func RoutePath(pattern string) string {
	if _, path, ok := strings.Cut(pattern, " "); ok {
		pattern = path
	}
	pattern = strings.TrimSuffix(pattern, "{$}")
	if pattern == "" {
		return "/"
	}
	return pattern
}
