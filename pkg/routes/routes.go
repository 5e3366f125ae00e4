// Package routes declares HTTP routes with their OpenAPI operations and
// registers them on a multiplexer.
package routes

import (
	"net/http"

	"github.com/JaimeStill/counter-api/pkg/openapi"
)

// Mux is the registration surface routes are added to.
// *http.ServeMux satisfies it.
type Mux interface {
	HandleFunc(pattern string, handler func(http.ResponseWriter, *http.Request))
}

// Register adds every route of groups to mux under basePath and documents
// them in spec. A nil spec registers routes without documenting them.
func Register(mux Mux, basePath string, spec *openapi.Spec, groups ...Group) {
	for _, group := range groups {
		if spec != nil {
			group.AddToSpec(basePath, spec)
		}
		registerGroup(mux, basePath, group)
	}
}

func registerGroup(mux Mux, parentPrefix string, group Group) {
	prefix := parentPrefix + group.Prefix
	for _, route := range group.Routes {
		mux.HandleFunc(route.Method+" "+prefix+route.Pattern, route.Handler)
	}
	for _, child := range group.Children {
		registerGroup(mux, prefix, child)
	}
}
