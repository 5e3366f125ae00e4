// Package docs serves the interactive API reference, rendered by Scalar from
// the service's OpenAPI document.
package docs

import (
	_ "embed"
	"net/http"

	"github.com/JaimeStill/counter-api/pkg/routes"
)

//go:embed index.html
var indexHTML []byte

// Routes returns the route group for the documentation page. The page is
// left out of the OpenAPI document it renders.
func Routes() routes.Group {
	return routes.Group{
		Prefix:      "/docs",
		Description: "Interactive API documentation powered by Scalar",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: serveIndex},
		},
	}
}

func serveIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(indexHTML)
}
