package schnur

import (
	"errors"
	"fmt"
)

// Errors returned by buffer operations.
var (
	// ErrAllocation indicates storage could not be allocated.
	ErrAllocation = errors.New("allocation failed")

	// ErrInvalidArgument indicates a nil buffer or an unusable argument.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNilBuffer indicates a method was called on a nil or freed buffer.
	ErrNilBuffer = fmt.Errorf("%w: nil buffer", ErrInvalidArgument)

	// ErrOutOfRange indicates an index beyond the current bounds.
	ErrOutOfRange = errors.New("index out of range")

	// ErrCodec indicates a wide/narrow conversion could not be performed.
	ErrCodec = errors.New("conversion failed")

	// ErrEmpty indicates a conversion was requested on an empty buffer.
	ErrEmpty = errors.New("buffer is empty")
)

// OpError records the operation that failed and why.
type OpError struct {
	// Op is the name of the failing operation, e.g. "expand".
	Op string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *OpError) Error() string {
	return "schnur: " + e.Op + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *OpError) Unwrap() error {
	return e.Err
}

func opError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Op: op, Err: err}
}
