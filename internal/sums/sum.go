package sums

import (
	"encoding/json"
	"math"
)

// Total is a sum that encodes as null when the addition overflowed.
type Total float64

func (t Total) MarshalJSON() ([]byte, error) {
	f := float64(t)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return []byte("null"), nil
	}
	return json.Marshal(f)
}

// Result is the response body of a successful sum.
type Result struct {
	Numbers []float64 `json:"numbers"`
	Sum     Total     `json:"sum"`
	Count   int       `json:"count"`
}

// Compute validates the "numbers" member of body and folds it left to right
// from zero.
func Compute(body Value) (*Result, error) {
	numbers := body.Field("numbers")
	if numbers.Kind() != Array {
		return nil, ErrInvalidInput
	}

	items := numbers.Items()
	values := make([]float64, len(items))
	for i, item := range items {
		f, ok := item.Float()
		if !ok {
			return nil, ErrInvalidNumber
		}
		if f == 0 {
			// echo -0 as 0
			f = 0
		}
		values[i] = f
	}

	var sum float64
	for _, v := range values {
		sum += v
	}

	return &Result{
		Numbers: values,
		Sum:     Total(sum),
		Count:   len(values),
	}, nil
}
