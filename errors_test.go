package hxform

import (
	"errors"
	"fmt"
	"testing"

	"github.com/pthm/hxform/lib/encoding"
	"github.com/pthm/hxform/lib/rules"
)

func TestSentinelErrors(t *testing.T) {
	errs := []error{
		ErrUnknownField,
		ErrUnknownRule,
		ErrInvalidName,
		ErrInvalidFormat,
		ErrSignatureInvalid,
		ErrDecryptFailed,
	}

	for i, err1 := range errs {
		for j, err2 := range errs {
			if i != j && errors.Is(err1, err2) {
				t.Errorf("Sentinel errors should be distinct: %v and %v", err1, err2)
			}
		}
	}

	if !errors.Is(ErrUnknownRule, rules.ErrUnknownRule) {
		t.Error("ErrUnknownRule should match the rules package error")
	}
}

func TestIsUnknownField(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		expect bool
	}{
		{"nil error", nil, false},
		{"ErrUnknownField", ErrUnknownField, true},
		{"field error", fieldErr("set value", "x", ErrUnknownField), true},
		{"wrapped", fmt.Errorf("outer: %w", fieldErr("reset", "x", ErrUnknownField)), true},
		{"other error", ErrInvalidName, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUnknownField(tt.err); got != tt.expect {
				t.Errorf("IsUnknownField() = %v, want %v", got, tt.expect)
			}
		})
	}
}

func TestIsDecodeError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		expect bool
	}{
		{"nil error", nil, false},
		{"ErrInvalidFormat", ErrInvalidFormat, true},
		{"ErrSignatureInvalid", ErrSignatureInvalid, true},
		{"ErrDecryptFailed", ErrDecryptFailed, true},
		{"wrapped", fmt.Errorf("decode: %w", ErrSignatureInvalid), true},
		{"ErrUnknownField", ErrUnknownField, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDecodeError(tt.err); got != tt.expect {
				t.Errorf("IsDecodeError() = %v, want %v", got, tt.expect)
			}
		})
	}
}

func TestFieldError(t *testing.T) {
	err := fieldErr("set value", "email", ErrUnknownField)

	want := `hxform: set value "email": hxform: unknown field`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	var fe *FieldError
	if !errors.As(err, &fe) {
		t.Fatal("expected *FieldError")
	}
	if fe.Op != "set value" || fe.Field != "email" {
		t.Errorf("FieldError = %+v", fe)
	}
	if !errors.Is(err, ErrUnknownField) {
		t.Error("FieldError should unwrap to its cause")
	}
}

func TestWrapEncodingError(t *testing.T) {
	other := errors.New("other")
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"signature", encoding.ErrSignatureInvalid, ErrSignatureInvalid},
		{"decrypt", encoding.ErrDecryptFailed, ErrDecryptFailed},
		{"format", fmt.Errorf("%w: short", encoding.ErrInvalidFormat), ErrInvalidFormat},
		{"passthrough", other, other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wrapEncodingError(tt.in); got != tt.want {
				t.Errorf("wrapEncodingError() = %v, want %v", got, tt.want)
			}
		})
	}
}
