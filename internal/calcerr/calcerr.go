// Package calcerr defines the error taxonomy shared by all calculators.
//
// Every calculation either fully succeeds or is rejected before producing
// a result. Out-of-domain input is reported as ErrInvalidInput with field
// context attached; callers branch on it with errors.Is.
package calcerr

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks out-of-domain calculator input: negative amounts,
// rates outside their range, zero denominators without a defined branch,
// malformed bracket tables, unknown enum values.
var ErrInvalidInput = errors.New("invalid input")

// Invalidf wraps ErrInvalidInput with a formatted reason.
func Invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// IsInvalid reports whether err is an invalid-input rejection.
func IsInvalid(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
