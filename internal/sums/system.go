package sums

import (
	"context"
	"log/slog"
	"time"
)

// System defines the interface for sum operations.
type System interface {
	// Sum validates body and returns the sum of its "numbers" array.
	Sum(ctx context.Context, body Value) (*Result, error)
}

// Observer receives the outcome of every sum.
type Observer interface {
	ObserveSum(count int)
	ObserveRejection(reason string)
}

// Middleware decorates a System.
type Middleware func(System) System

type system struct {
	observer Observer
}

// New creates a System that reports outcomes to observer. A nil observer is allowed.
func New(observer Observer) System {
	return &system{observer: observer}
}

func (s *system) Sum(ctx context.Context, body Value) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := Compute(body)
	if s.observer != nil {
		if err != nil {
			s.observer.ObserveRejection(rejectionReason(err))
		} else {
			s.observer.ObserveSum(result.Count)
		}
	}
	return result, err
}

type loggingSystem struct {
	logger *slog.Logger
	next   System
}

// LoggingMiddleware logs every sum at debug level.
func LoggingMiddleware(logger *slog.Logger) Middleware {
	return func(next System) System {
		return &loggingSystem{logger: logger, next: next}
	}
}

func (l *loggingSystem) Sum(ctx context.Context, body Value) (result *Result, err error) {
	defer func(begin time.Time) {
		if err != nil {
			l.logger.DebugContext(ctx, "sum rejected", "error", err, "duration", time.Since(begin))
			return
		}
		l.logger.DebugContext(ctx, "sum computed",
			"count", result.Count,
			"sum", float64(result.Sum),
			"duration", time.Since(begin),
		)
	}(time.Now())

	return l.next.Sum(ctx, body)
}
