package pipeline

import (
	"brb/internal/errors"
)

// Warning is a recoverable condition met during a run. Err is one of the
// recoverable error types of the errors package.
type Warning struct {
	Kind    errors.ErrorType `json:"kind"`
	Message string           `json:"message"`
	Err     error            `json:"-"`
}

func newWarning(err errors.Categorized, message string) Warning {
	return Warning{Kind: err.Kind(), Message: message, Err: err}
}

// Logger receives progress and warnings while a run is in flight.
type Logger interface {
	Step(format string, args ...any)
	Warn(w Warning)
}

type nopLogger struct{}

func (nopLogger) Step(string, ...any) {}
func (nopLogger) Warn(Warning)        {}
