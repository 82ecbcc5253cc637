package codec

import (
	"errors"
	"fmt"
)

// Errors returned by codec operations.
var (
	// ErrUnrepresentable indicates a unit has no encoding in the target charset.
	ErrUnrepresentable = errors.New("unit not representable in encoding")

	// ErrInvalidSequence indicates narrow input that does not decode.
	ErrInvalidSequence = errors.New("invalid narrow sequence")

	// ErrUnknownEncoding indicates Lookup was given an unregistered name.
	ErrUnknownEncoding = errors.New("unknown encoding")
)

// Error describes a conversion failure at a specific position.
type Error struct {
	// Encoding is the name of the codec that failed.
	Encoding string
	// Offset is the unit index (encode) or byte offset (decode) of the failure.
	Offset int
	// Unit is the offending unit when encoding.
	Unit rune
	// Err is ErrUnrepresentable or ErrInvalidSequence.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if errors.Is(e.Err, ErrUnrepresentable) {
		return fmt.Sprintf("%s: unit %U at %d: %v", e.Encoding, e.Unit, e.Offset, e.Err)
	}
	return fmt.Sprintf("%s: byte offset %d: %v", e.Encoding, e.Offset, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}
