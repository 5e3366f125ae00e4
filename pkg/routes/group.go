package routes

import (
	"net/http"
	"strings"

	"github.com/JaimeStill/counter-api/pkg/openapi"
)

// Route represents an HTTP route with method, pattern, handler and its
// OpenAPI operation. Routes without an operation are served but undocumented.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
	OpenAPI *openapi.Operation
}

// Group represents a collection of routes under a common URL prefix.
// Groups can contain child groups for hierarchical route organization.
type Group struct {
	Prefix      string
	Tags        []string
	Description string
	Routes      []Route
	Children    []Group
	Schemas     map[string]*openapi.Schema
	Responses   map[string]*openapi.Response
}

// AddToSpec adds the group's schemas, shared responses and documented
// operations to spec. Operations without tags inherit the group's tags.
func (g *Group) AddToSpec(basePath string, spec *openapi.Spec) {
	if len(g.Schemas) > 0 {
		spec.Components.AddSchemas(g.Schemas)
	}
	if len(g.Responses) > 0 {
		spec.Components.AddResponses(g.Responses)
	}

	prefix := basePath + g.Prefix
	for _, route := range g.Routes {
		if route.OpenAPI == nil {
			continue
		}

		op := route.OpenAPI
		if len(op.Tags) == 0 {
			op.Tags = g.Tags
		}

		spec.AddOperation(specPath(prefix+route.Pattern), route.Method, op)
	}

	for _, child := range g.Children {
		child.AddToSpec(prefix, spec)
	}
}

// specPath converts a ServeMux pattern into an OpenAPI path.
// The exact-match marker "{$}" is dropped.
func specPath(pattern string) string {
	path := strings.TrimSuffix(pattern, "{$}")
	if path == "" {
		return "/"
	}
	return path
}
