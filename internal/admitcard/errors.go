package admitcard

import (
	"errors"
	"fmt"
)

// ErrValidation is reported when the form number is empty.
var ErrValidation = errors.New("form number is required")

// TransportError wraps a failed fetch.
type TransportError struct {
	FormNumber string
	Err        error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("failed to fetch application %s: %v", e.FormNumber, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Outcome is how a single PerformLookup call concluded.
type Outcome int

const (
	OutcomeInvalid Outcome = iota
	OutcomeNotFound
	OutcomeTransportError
	OutcomeResolved
	OutcomeSuperseded
)

func (o Outcome) String() string {
	switch o {
	case OutcomeInvalid:
		return "invalid"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeTransportError:
		return "error"
	case OutcomeResolved:
		return "resolved"
	case OutcomeSuperseded:
		return "superseded"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}
