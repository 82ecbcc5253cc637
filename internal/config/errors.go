package config

import (
	"errors"
	"fmt"
)

// ErrValidationFailed indicates a setting has an unusable value.
var ErrValidationFailed = errors.New("validation failed")

// ParseError reports a configuration file that is not valid TOML or holds
// unknown keys.
type ParseError struct {
	Path string
	// Line and Column locate the error; both are zero when go-toml gave no
	// position.
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError describes a setting that failed validation.
type ValidationError struct {
	// Path is the setting path, e.g. "buffer.block_size".
	Path string
	// Message describes the problem.
	Message string
	// Value is the rejected value.
	Value any
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (value: %v)", e.Path, e.Message, e.Value)
}

// Unwrap lets errors.Is match ErrValidationFailed.
func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}
