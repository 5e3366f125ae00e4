package sums_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/JaimeStill/counter-api/internal/sums"
)

func mustParse(t *testing.T, input string) sums.Value {
	t.Helper()
	v, err := sums.Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", input, err)
	}
	return v
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantSum   float64
		wantCount int
	}{
		{"three integers", `{"numbers":[1,2,3]}`, 6, 3},
		{"cancelling", `{"numbers":[-5,5]}`, 0, 2},
		{"empty", `{"numbers":[]}`, 0, 0},
		{"fractions", `{"numbers":[0.5,0.25]}`, 0.75, 2},
		{"single", `{"numbers":[42]}`, 42, 1},
		{"extra fields ignored", `{"numbers":[1],"other":"x"}`, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := sums.Compute(mustParse(t, tt.body))
			if err != nil {
				t.Fatalf("Compute() error = %v", err)
			}
			if float64(result.Sum) != tt.wantSum {
				t.Errorf("Sum = %v, want %v", result.Sum, tt.wantSum)
			}
			if result.Count != tt.wantCount {
				t.Errorf("Count = %d, want %d", result.Count, tt.wantCount)
			}
			if len(result.Numbers) != tt.wantCount {
				t.Errorf("len(Numbers) = %d, want %d", len(result.Numbers), tt.wantCount)
			}
		})
	}
}

func TestCompute_LeftFold(t *testing.T) {
	input := []float64{0.1, 0.2, 0.3, 1e16, -1e16}

	data, _ := json.Marshal(map[string]any{"numbers": input})
	result, err := sums.Compute(mustParse(t, string(data)))
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	var want float64
	for _, n := range input {
		want += n
	}
	if float64(result.Sum) != want {
		t.Errorf("Sum = %v, want left fold %v", result.Sum, want)
	}
	for i, n := range input {
		if result.Numbers[i] != n {
			t.Errorf("Numbers[%d] = %v, want %v", i, result.Numbers[i], n)
		}
	}
}

func TestCompute_EmptyEncodesAsArray(t *testing.T) {
	result, err := sums.Compute(mustParse(t, `{"numbers":[]}`))
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if want := `{"numbers":[],"sum":0,"count":0}`; string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}
}

func TestCompute_Overflow(t *testing.T) {
	result, err := sums.Compute(mustParse(t, `{"numbers":[1e308,1e308]}`))
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if !math.IsInf(float64(result.Sum), 1) {
		t.Errorf("Sum = %v, want +Inf", result.Sum)
	}

	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if want := `{"numbers":[1e+308,1e+308],"sum":null,"count":2}`; string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}
}

func TestCompute_InvalidInput(t *testing.T) {
	bodies := []string{
		`{}`,
		`{"numbers":null}`,
		`{"numbers":"5"}`,
		`{"numbers":5}`,
		`{"numbers":{}}`,
		`{"numbers":true}`,
		`[1,2,3]`,
	}

	for _, body := range bodies {
		t.Run(body, func(t *testing.T) {
			_, err := sums.Compute(mustParse(t, body))
			if !errors.Is(err, sums.ErrInvalidInput) {
				t.Errorf("Compute() error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestCompute_InvalidNumber(t *testing.T) {
	bodies := []string{
		`{"numbers":[1,"2",3]}`,
		`{"numbers":[1,null]}`,
		`{"numbers":[true]}`,
		`{"numbers":[[1]]}`,
		`{"numbers":[{"n":1}]}`,
		`{"numbers":[1e400]}`,
	}

	for _, body := range bodies {
		t.Run(body, func(t *testing.T) {
			_, err := sums.Compute(mustParse(t, body))
			if !errors.Is(err, sums.ErrInvalidNumber) {
				t.Errorf("Compute() error = %v, want ErrInvalidNumber", err)
			}
		})
	}
}

func TestCompute_NaN(t *testing.T) {
	body := sums.ObjectValue(map[string]sums.Value{
		"numbers": sums.ArrayValue(sums.NumberValue("1"), sums.NumberValue("NaN")),
	})

	_, err := sums.Compute(body)
	if !errors.Is(err, sums.ErrInvalidNumber) {
		t.Errorf("Compute() error = %v, want ErrInvalidNumber", err)
	}
}

func TestCompute_NegativeZero(t *testing.T) {
	result, err := sums.Compute(mustParse(t, `{"numbers":[-0,-0.0]}`))
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if want := `{"numbers":[0,0],"sum":0,"count":2}`; string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid input", sums.ErrInvalidInput, 400},
		{"invalid number", sums.ErrInvalidNumber, 400},
		{"malformed body", sums.ErrMalformedBody, 500},
		{"other", errors.New("boom"), 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sums.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("MapHTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}

type recordingObserver struct {
	counts  []int
	reasons []string
}

func (o *recordingObserver) ObserveSum(count int)           { o.counts = append(o.counts, count) }
func (o *recordingObserver) ObserveRejection(reason string) { o.reasons = append(o.reasons, reason) }

func TestSystem_Observer(t *testing.T) {
	obs := &recordingObserver{}
	sys := sums.LoggingMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))(sums.New(obs))
	ctx := context.Background()

	if _, err := sys.Sum(ctx, mustParse(t, `{"numbers":[1,2]}`)); err != nil {
		t.Fatalf("Sum() error = %v", err)
	}
	sys.Sum(ctx, mustParse(t, `{"numbers":"x"}`))
	sys.Sum(ctx, mustParse(t, `{"numbers":["x"]}`))

	if len(obs.counts) != 1 || obs.counts[0] != 2 {
		t.Errorf("counts = %v, want [2]", obs.counts)
	}
	wantReasons := []string{"invalid_input", "invalid_number"}
	if len(obs.reasons) != len(wantReasons) {
		t.Fatalf("reasons = %v, want %v", obs.reasons, wantReasons)
	}
	for i, r := range wantReasons {
		if obs.reasons[i] != r {
			t.Errorf("reasons[%d] = %q, want %q", i, obs.reasons[i], r)
		}
	}
}

func TestSystem_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := sums.New(nil).Sum(ctx, mustParse(t, `{"numbers":[1]}`))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Sum() error = %v, want context.Canceled", err)
	}
}

func TestSystem_Idempotent(t *testing.T) {
	sys := sums.New(nil)
	body := mustParse(t, `{"numbers":[1.5,-2,3e2]}`)

	first, err := sys.Sum(context.Background(), body)
	if err != nil {
		t.Fatalf("Sum() error = %v", err)
	}
	for range 5 {
		next, err := sys.Sum(context.Background(), body)
		if err != nil {
			t.Fatalf("Sum() error = %v", err)
		}
		a, _ := json.Marshal(first)
		b, _ := json.Marshal(next)
		if string(a) != string(b) {
			t.Errorf("repeated Sum() = %s, want %s", b, a)
		}
	}
}
