package sums

import "github.com/JaimeStill/counter-api/pkg/openapi"

type spec struct {
	Sum *openapi.Operation
}

var Spec = spec{
	Sum: &openapi.Operation{
		Summary:     "Sum numbers",
		Description: "Returns the sum and count of a JSON array of numbers, echoing the array",
		RequestBody: openapi.RequestBodyJSON("SumRequest", true, MediaTypeJSON, MediaTypeForm),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Sum of the numbers", "SumResult"),
			400: openapi.ResponseRef("InvalidNumbers"),
			500: openapi.ResponseRef("SumFailure"),
		},
	},
}

func (spec) Responses() map[string]*openapi.Response {
	return map[string]*openapi.Response{
		"InvalidNumbers": openapi.ResponseJSON("numbers is not an array or holds a non-numeric element", "Error"),
		"SumFailure":     openapi.ResponseJSON("Unexpected failure while reading or summing the body", "Error"),
	}
}

func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"SumRequest": {
			Type:     "object",
			Required: []string{"numbers"},
			Properties: map[string]*openapi.Schema{
				"numbers": {
					Type:  "array",
					Items: &openapi.Schema{Type: "number"},
				},
			},
			Example: map[string]any{"numbers": []float64{1, 2, 3}},
		},
		"SumResult": {
			Type:     "object",
			Required: []string{"numbers", "sum", "count"},
			Properties: map[string]*openapi.Schema{
				"numbers": {Type: "array", Items: &openapi.Schema{Type: "number"}},
				"sum":     {Type: "number", Description: "Left-to-right sum, null if it overflowed"},
				"count":   {Type: "integer"},
			},
			Example: map[string]any{"numbers": []float64{1, 2, 3}, "sum": 6, "count": 3},
		},
		"Error": {
			Type:     "object",
			Required: []string{"error"},
			Properties: map[string]*openapi.Schema{
				"error":   {Type: "string"},
				"message": {Type: "string"},
			},
		},
	}
}
