package module

import (
	"net/http"
	"path"
	"strings"

	"github.com/JaimeStill/counter-api/pkg/middleware"
)

// Router dispatches to mounted modules by first path segment, then to
// natively registered routes, and finally to the not-found handler.
// A path registered only for other methods is treated as not found, and so
// is a path that is not in canonical form, such as "/./sum" or "//sum".
// The matched route is recorded for middleware.TrackRoute.
type Router struct {
	native   *http.ServeMux
	modules  map[string]*Module
	notFound http.Handler
}

// NewRouter creates a router whose fallback is http.NotFoundHandler.
func NewRouter() *Router {
	return &Router{
		native:   http.NewServeMux(),
		modules:  make(map[string]*Module),
		notFound: http.NotFoundHandler(),
	}
}

// HandleNative registers a ServeMux pattern such as "GET /healthz".
func (r *Router) HandleNative(pattern string, handler http.HandlerFunc) {
	r.native.HandleFunc(pattern, handler)
}

// HandleFunc registers a ServeMux pattern, letting the router act as a routes.Mux.
func (r *Router) HandleFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	r.native.HandleFunc(pattern, handler)
}

// Mount attaches a module under its prefix.
func (r *Router) Mount(m *Module) {
	r.modules[m.Prefix()] = m
}

// NotFound replaces the fallback handler for unmatched requests.
func (r *Router) NotFound(handler http.Handler) {
	r.notFound = handler
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if !canonical(req.URL.Path) {
		r.notFound.ServeHTTP(w, req)
		return
	}

	if m, ok := r.modules[firstSegment(req.URL.Path)]; ok {
		middleware.SetRoute(req, m.Prefix())
		m.Serve(w, req)
		return
	}

	_, pattern := r.native.Handler(req)
	if pattern == "" {
		r.notFound.ServeHTTP(w, req)
		return
	}

	middleware.SetRoute(req, pattern)
	r.native.ServeHTTP(w, req)
}

// canonical reports whether path is already clean. ServeMux would answer
// anything else with a redirect.
func canonical(p string) bool {
	if p == "" {
		return false
	}
	clean := path.Clean(p)
	return p == clean || (strings.HasSuffix(p, "/") && p == clean+"/")
}

func firstSegment(path string) string {
	if len(path) < 2 {
		return ""
	}
	if i := strings.IndexByte(path[1:], '/'); i >= 0 {
		return path[:i+1]
	}
	return path
}
