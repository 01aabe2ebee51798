package health

import (
	"context"
	"fmt"
)

// Checker represents a dependency health check.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

// Result is the outcome of one checker.
type Result struct {
	Name  string `json:"name"`
	Error string `json:"error,omitempty"`
}

// ReadinessUseCase describes readiness verification.
type ReadinessUseCase interface {
	Ready(ctx context.Context) ([]Result, error)
}

type service struct {
	checkers []Checker
}

// NewService aggregates dependency checkers.
func NewService(checkers ...Checker) ReadinessUseCase {
	return &service{checkers: checkers}
}

// Ready runs every checker and fails with the first error seen.
func (s *service) Ready(ctx context.Context) ([]Result, error) {
	results := make([]Result, 0, len(s.checkers))
	var firstErr error
	for _, ch := range s.checkers {
		res := Result{Name: ch.Name()}
		if err := ch.Check(ctx); err != nil {
			res.Error = err.Error()
			if firstErr == nil {
				firstErr = fmt.Errorf("%s: %w", ch.Name(), err)
			}
		}
		results = append(results, res)
	}
	return results, firstErr
}
