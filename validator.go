package hxform

import (
	"fmt"

	"github.com/pthm/hxform/lib/rules"
)

// Context is the severity of a validation result.
type Context = rules.Context

// Validation contexts.
const (
	Success = rules.Success
	Warning = rules.Warning
	Danger  = rules.Danger
)

// Values is a snapshot of form values keyed by field name.
type Values = rules.Values

// ValidationResult is the outcome of validating one field.
type ValidationResult struct {
	Context Context `json:"context"`
	Message string  `json:"message,omitempty"`
}

// Valid reports whether the result does not block submission.
func (r ValidationResult) Valid() bool {
	return r.Context != Danger
}

// Rule is one named constraint with its criteria, e.g. {"minLength", 8}.
type Rule struct {
	Name     string
	Criteria any
}

// Rules is an ordered rule set. Rules run in declaration order and the
// first failure wins.
type Rules []Rule

// Message produces the text shown when a rule fails. It is only invoked
// for the rule that actually failed.
type Message func(field string, values Values, criteria any) string

// Text returns a Message that always yields s.
func Text(s string) Message {
	return func(string, Values, any) string { return s }
}

// Messages overrides default messages, keyed by rule name. The key
// "required" overrides the required-field message.
type Messages map[string]Message

// RequiredKey is the Messages key for the required-field message.
const RequiredKey = "required"

// Validator composes the rule engine over a field's rule set.
type Validator struct {
	engine *rules.Engine
}

// NewValidator returns a validator over engine. A nil engine uses the
// builtin rules.
func NewValidator(engine *rules.Engine) *Validator {
	if engine == nil {
		engine = rules.Default()
	}
	return &Validator{engine: engine}
}

// Engine returns the rule engine backing the validator.
func (v *Validator) Engine() *rules.Engine {
	return v.engine
}

// Check returns an error naming the first rule in rs the engine does not
// know.
func (v *Validator) Check(rs Rules) error {
	for _, r := range rs {
		if !v.engine.Has(r.Name) {
			return fmt.Errorf("%w: %q", ErrUnknownRule, r.Name)
		}
	}
	return nil
}

// Validate evaluates field's value in values.
//
// A required field with an empty value fails before any rule runs. Any
// other empty value passes. Otherwise rules run in order and the first
// failing rule determines the message.
func (v *Validator) Validate(field string, values Values, required bool, rs Rules, msgs Messages) ValidationResult {
	if rules.IsEmpty(values[field]) {
		if required {
			return ValidationResult{Context: Danger, Message: resolve(msgs, RequiredKey, field, values, true, rules.RequiredMessage(field))}
		}
		return ValidationResult{Context: Success}
	}

	for _, r := range rs {
		passed, err := v.engine.Check(r.Name, field, values, r.Criteria)
		if err != nil {
			return ValidationResult{Context: Danger, Message: err.Error()}
		}
		if !passed {
			return ValidationResult{
				Context: Danger,
				Message: resolveLazy(msgs, r.Name, field, values, r.Criteria, func() string {
					return rules.DefaultMessage(r.Name, field, r.Criteria)
				}),
			}
		}
	}
	return ValidationResult{Context: Success}
}

func resolve(msgs Messages, key, field string, values Values, criteria any, fallback string) string {
	return resolveLazy(msgs, key, field, values, criteria, func() string { return fallback })
}

func resolveLazy(msgs Messages, key, field string, values Values, criteria any, fallback func() string) string {
	if m, ok := msgs[key]; ok && m != nil {
		return m(field, values, criteria)
	}
	return fallback()
}
