// Package hxform coordinates the state and validation of forms built from
// independently rendered field widgets.
//
// Widgets register with a Form under a unique name. The form owns every
// field's value, pristine flag and validation result, validates fields
// against declarative rule sets, re-validates dependent fields when a field
// changes, and re-renders the widgets and mirrors that are affected. No
// change handlers need to be wired between widgets.
//
// # Fields
//
// A Field declares its configuration through FieldProps and renders from a
// FieldState:
//
//	form := hxform.New(hxform.OnValidSubmit(save))
//
//	password := hxform.NewInput(form, hxform.FieldProps{
//	    Name:     "password",
//	    Required: true,
//	    Rules:    hxform.Rules{{Name: "minLength", Criteria: 8}},
//	    Triggers: []string{"confirm"},
//	}, nil)
//
//	confirm := hxform.NewInput(form, hxform.FieldProps{
//	    Name:  "confirm",
//	    Rules: hxform.Rules{{Name: "eqTarget", Criteria: "password"}},
//	}, nil)
//
// Widgets are built with the Form they belong to and only reach its state
// through the Form's operations.
//
// # Validation
//
// Rules run in declaration order and the first failure decides the
// message. A required field with an empty value fails before any rule
// runs; any other empty value passes. Messages may be overridden per rule
// with literal text or a function that is called only when the rule fails.
// The rule catalogue lives in lib/rules.
//
// # Triggers
//
// Triggers declare which fields re-validate when a field changes. The
// declared relation is expanded transitively and may contain cycles; each
// related field validates once per change (see lib/trigger).
//
// # Mirrors
//
// A Mirror reflects another field's state without taking part in
// validation. Many mirrors may observe one field.
//
// # Rendering
//
// Operations update state immediately and queue re-renders. By default the
// queue flushes to the configured output before the operation returns.
// WithDeferredRender holds the queue until Commit, and the *Settled handle
// each operation returns resolves at that point, which lets callers order
// work after the redraw.
//
// # HTTP
//
// Handler serves the htmx requests produced by FieldAttrs and Wrap. Field
// references are signed (or sealed for sensitive fields) so a client can
// only post events for fields the server rendered.
package hxform
