package canon

import (
	"errors"
	"fmt"
)

// quota tracks rewrite firings for one Canonicalize call and enforces
// the max-steps limit. Per-rule local confluence rules out rewrite
// cycles; the quota catches linear explosions from rule interaction.
type quota struct {
	maxSteps int
	current  int
}

func newQuota(maxSteps int) *quota {
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	return &quota{maxSteps: maxSteps}
}

// check increments the step counter and validates against the limit.
// Called once per committed rewrite.
func (q *quota) check(graph string) error {
	q.current++
	if q.current > q.maxSteps {
		return &StepsExceededError{
			Graph: graph,
			Steps: q.current,
			Limit: q.maxSteps,
		}
	}
	return nil
}

// StepsExceededError is returned when canonicalization exceeds the max
// steps quota. The graph is left in whatever (verified) intermediate
// state the last committed rewrite produced.
type StepsExceededError struct {
	Graph string // graph that exceeded the quota
	Steps int    // number of rewrites attempted
	Limit int    // maximum allowed rewrites
}

// Error implements the error interface.
func (e *StepsExceededError) Error() string {
	return fmt.Sprintf("graph %s exceeded max rewrite steps: %d steps > %d limit",
		e.Graph, e.Steps, e.Limit)
}

// IsStepsExceededError returns true if the error is a
// StepsExceededError. Uses errors.As to handle wrapped errors.
func IsStepsExceededError(err error) bool {
	var se *StepsExceededError
	return errors.As(err, &se)
}
