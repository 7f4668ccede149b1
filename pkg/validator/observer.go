package validator

import "time"

// Outcome classifies a single validator run.
type Outcome string

const (
	OutcomeValid   Outcome = "valid"
	OutcomeInvalid Outcome = "invalid"
	OutcomeError   Outcome = "error"
)

// Observer receives one call per validator run, e.g. to export metrics.
// Implementations must be safe for concurrent use.
type Observer interface {
	Observe(validator string, outcome Outcome, elapsed time.Duration)
}

type noopObserver struct{}

func (noopObserver) Observe(string, Outcome, time.Duration) {}
