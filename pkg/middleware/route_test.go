package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/counter-api/pkg/middleware"
)

func TestRoutePath(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
	}{
		{"POST /sum", "/sum"},
		{"GET /{$}", "/"},
		{"/metrics", "/metrics"},
		{"GET /docs", "/docs"},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			if got := middleware.RoutePath(tt.pattern); got != tt.want {
				t.Errorf("RoutePath(%q) = %q, want %q", tt.pattern, got, tt.want)
			}
		})
	}
}

func TestSetRoute(t *testing.T) {
	req, matched := middleware.TrackRoute(httptest.NewRequest(http.MethodPost, "/sum", nil))
	if matched() != "" {
		t.Errorf("route = %q before SetRoute, want empty", matched())
	}

	middleware.SetRoute(req.WithContext(req.Context()), "POST /sum")
	if got := matched(); got != "/sum" {
		t.Errorf("route = %q, want /sum", got)
	}
}

func TestSetRoute_Untracked(t *testing.T) {
	middleware.SetRoute(httptest.NewRequest(http.MethodGet, "/", nil), "GET /{$}")
}
