package api

import "github.com/JaimeStill/counter-api/internal/sums"

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Sums sums.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	var sumsSys sums.System = sums.New(runtime.Metrics)
	sumsSys = sums.LoggingMiddleware(runtime.Logger)(sumsSys)

	return &Domain{
		Sums: sumsSys,
	}
}
