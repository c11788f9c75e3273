package errortypes

import (
	"errors"
	"fmt"
)

// UnmetExpectationError is returned when fewer records than required satisfy an expectation.
type UnmetExpectationError struct {
	Name     string
	Matched  int
	Required int
	// Failures holds the assertion messages of the first non-matching record, if any.
	Failures []string
}

func (e *UnmetExpectationError) Error() string {
	msg := fmt.Sprintf("expectation %q matched %d of at least %d records", e.Name, e.Matched, e.Required)
	if len(e.Failures) > 0 {
		msg += ": " + e.Failures[0]
	}

	return msg
}

func IsUnmetExpectation(err error) bool {
	var errUnmet *UnmetExpectationError
	return errors.As(err, &errUnmet)
}

// InputError wraps failures to read or decode a user supplied file.
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input %s: %v", e.Path, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}
