// Package apperror defines the typed errors shared across the ledger, classifier
// and presentation layers.
package apperror

import (
	"errors"
	"fmt"
)

// ErrBlankDescription is returned when an expense description is empty or whitespace.
var ErrBlankDescription = errors.New("please enter a description")

// ValidationError represents invalid user input for an expense record.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s='%s': %s", e.Field, e.Value, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ClassificationError represents a failed call to the external classification service.
type ClassificationError struct {
	Description string
	Provider    string
	Err         error
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("classification failed for '%s' using %s: %v",
		e.Description, e.Provider, e.Err)
}

func (e *ClassificationError) Unwrap() error {
	return e.Err
}

// StoreError represents a failure reading or writing the ledger file.
type StoreError struct {
	Path string
	Op   string
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("ledger %s failed for %s: %v", e.Op, e.Path, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is, or wraps, a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
