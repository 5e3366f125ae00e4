package api

import (
	"github.com/JaimeStill/counter-api/internal/sums"
	"github.com/JaimeStill/counter-api/pkg/openapi"
	"github.com/JaimeStill/counter-api/pkg/routes"
)

func registerRoutes(
	mux routes.Mux,
	spec *openapi.Spec,
	runtime *Runtime,
	domain *Domain,
) {
	sumsHandler := sums.NewHandler(domain.Sums, runtime.Logger, runtime.MaxBodySize)

	routes.Register(
		mux,
		"",
		spec,
		infoRoutes(),
		sumsHandler.Routes(),
	)
}
