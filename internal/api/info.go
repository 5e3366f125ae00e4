package api

import (
	"net/http"

	"github.com/JaimeStill/counter-api/pkg/handlers"
	"github.com/JaimeStill/counter-api/pkg/openapi"
	"github.com/JaimeStill/counter-api/pkg/routes"
)

// Info is the body of GET /.
type Info struct {
	Message   string            `json:"message"`
	Endpoints map[string]string `json:"endpoints"`
}

var info = Info{
	Message: "Counter API is running!",
	Endpoints: map[string]string{
		"POST /sum": "Send a JSON array of numbers to get their sum",
	},
}

func infoRoutes() routes.Group {
	return routes.Group{
		Tags:        []string{"Info"},
		Description: "Service information",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{$}", Handler: handleInfo, OpenAPI: infoOperation},
		},
		Schemas: map[string]*openapi.Schema{
			"Info": {
				Type:     "object",
				Required: []string{"message", "endpoints"},
				Properties: map[string]*openapi.Schema{
					"message":   {Type: "string"},
					"endpoints": {Type: "object", AdditionalProperties: &openapi.Schema{Type: "string"}},
				},
				Example: info,
			},
		},
	}
}

var infoOperation = &openapi.Operation{
	Summary:     "API information",
	Description: "Describes the service and its endpoints",
	Responses: map[int]*openapi.Response{
		200: openapi.ResponseJSON("Service information", "Info"),
	},
}

func handleInfo(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, info)
}
