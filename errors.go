package hxform

import (
	"errors"
	"fmt"

	"github.com/pthm/hxform/lib/encoding"
	"github.com/pthm/hxform/lib/rules"
)

// Sentinel errors for form operations.
var (
	ErrUnknownField     = errors.New("hxform: unknown field")
	ErrUnknownRule      = rules.ErrUnknownRule
	ErrInvalidName      = errors.New("hxform: field name must not be empty")
	ErrInvalidFormat    = errors.New("hxform: invalid parameter format")
	ErrSignatureInvalid = errors.New("hxform: signature verification failed")
	ErrDecryptFailed    = errors.New("hxform: parameter decryption failed")
)

// FieldError records the operation and field an error occurred on.
type FieldError struct {
	Op    string
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("hxform: %s %q: %v", e.Op, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

func fieldErr(op, field string, err error) error {
	return &FieldError{Op: op, Field: field, Err: err}
}

// IsUnknownField checks if err reports an operation on an unregistered field.
func IsUnknownField(err error) bool {
	return errors.Is(err, ErrUnknownField)
}

// IsDecodeError checks if err is a tampered or malformed field reference.
func IsDecodeError(err error) bool {
	return errors.Is(err, ErrInvalidFormat) || errors.Is(err, ErrSignatureInvalid) || errors.Is(err, ErrDecryptFailed)
}

// wrapEncodingError maps encoding package errors onto hxform sentinels.
func wrapEncodingError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, encoding.ErrSignatureInvalid):
		return ErrSignatureInvalid
	case errors.Is(err, encoding.ErrDecryptFailed):
		return ErrDecryptFailed
	case errors.Is(err, encoding.ErrInvalidFormat):
		return ErrInvalidFormat
	}
	return err
}
