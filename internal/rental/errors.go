package rental

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument matches every checkout input validation failure
var ErrInvalidArgument = errors.New("invalid argument")

// InvalidArgumentError is returned for out of range rental days or discount
// percent and for unknown tool codes.
type InvalidArgumentError struct {
	Message string
}

func (e *InvalidArgumentError) Error() string {
	return e.Message
}

// Is reports whether target is ErrInvalidArgument
func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

func invalidArgument(format string, args ...interface{}) error {
	return &InvalidArgumentError{Message: fmt.Sprintf(format, args...)}
}

// DateParseError is returned when the checkout date is not a valid MM/DD/YY date
type DateParseError struct {
	Input string
	Err   error
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("invalid checkout date %q: %v", e.Input, e.Err)
}

func (e *DateParseError) Unwrap() error {
	return e.Err
}
