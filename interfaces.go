package hxform

import (
	"context"

	"github.com/a-h/templ"
)

// FieldProps is the declared configuration of a field widget.
//
// Controlled fields supply their own Value, which takes precedence over
// anything the form tracks. Validation, when non-nil, is an externally
// managed result that wins over computed ones.
type FieldProps struct {
	Name       string
	Required   bool
	Rules      Rules
	Messages   Messages
	Triggers   []string // fields to re-validate whenever this one changes
	Default    any
	Controlled bool
	Value      any
	Validation *ValidationResult

	// Sensitive seals the field reference in rendered attributes instead of
	// only signing it.
	Sensitive bool
}

// FieldState is what a widget renders from. Value is a private copy for
// composite values; mutating it does not change the form.
type FieldState struct {
	Name       string
	Value      any
	Pristine   bool
	Validation *ValidationResult
	Mounted    bool
}

// Validated reports whether the field has a validation result.
func (s FieldState) Validated() bool {
	return s.Validation != nil
}

// Field is implemented by widget adapters registered with a Form.
//
// The form holds a Field only while it is mounted and calls Render when the
// field's state changes. Render should be pure: it reads state and produces
// markup without touching the form.
//
// Example:
//
//	func (w *TextInput) Render(ctx context.Context, s hxform.FieldState) templ.Component {
//	    return textInput(w.label, s)
//	}
type Field interface {
	Props() FieldProps
	Render(ctx context.Context, state FieldState) templ.Component
}

// Mirror is a read-only observer of another field. Reflect is called with
// the observed field's state whenever it changes.
type Mirror interface {
	Reflect(ctx context.Context, state FieldState) templ.Component
}
