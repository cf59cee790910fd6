// SPDX-License-Identifier: MIT

package g2o

import (
	"errors"
	"fmt"
)

// ErrMalformedRecord is returned for a record with bad arity or a field that
// is not a number.
var ErrMalformedRecord = errors.New("g2o: malformed record")

// LineError attaches the 1-based input line to a read or build error.
type LineError struct {
	Line int
	Err  error
}

// Error implements error.
func (e *LineError) Error() string {
	return fmt.Sprintf("g2o: line %d: %v", e.Line, e.Err)
}

// Unwrap exposes the cause to errors.Is / errors.As.
func (e *LineError) Unwrap() error { return e.Err }

func malformed(line int, format string, args ...any) error {
	return &LineError{Line: line, Err: fmt.Errorf("%w: %s", ErrMalformedRecord, fmt.Sprintf(format, args...))}
}
