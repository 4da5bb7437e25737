// Package rules evaluates single named validation rules against a field's
// value and the full set of current form values.
//
// Every rule is a pure function: the same value map and criteria always
// produce the same Outcome. Cross-field rules read their target from the
// value map handed to Evaluate, never from a cache.
package rules

import (
	"errors"
	"fmt"
)

// Context is the severity of a validation outcome.
type Context string

const (
	Success Context = "success"
	Warning Context = "warning"
	Danger  Context = "danger"
)

// ErrUnknownRule is returned when a rule name has no registered function.
var ErrUnknownRule = errors.New("rules: unknown rule")

// Values is a snapshot of form values keyed by field name.
type Values map[string]any

// Func reports whether value satisfies the rule for the given criteria.
// values is the complete snapshot the value was taken from.
type Func func(values Values, value any, criteria any) bool

// Outcome is the result of evaluating one rule.
type Outcome struct {
	Passed  bool
	Context Context
	Message string
}

// Engine is an immutable table of rule functions.
type Engine struct {
	funcs map[string]Func
}

var defaultEngine = &Engine{funcs: builtins()}

// Default returns the engine holding only the builtin rules.
func Default() *Engine {
	return defaultEngine
}

// With returns a copy of the engine with name bound to fn. An existing rule
// of the same name is replaced in the copy only.
func (e *Engine) With(name string, fn Func) *Engine {
	funcs := make(map[string]Func, len(e.funcs)+1)
	for k, v := range e.funcs {
		funcs[k] = v
	}
	funcs[name] = fn
	return &Engine{funcs: funcs}
}

// Has reports whether a rule named name exists.
func (e *Engine) Has(name string) bool {
	_, ok := e.funcs[name]
	return ok
}

// Names returns the registered rule names in no particular order.
func (e *Engine) Names() []string {
	names := make([]string, 0, len(e.funcs))
	for name := range e.funcs {
		names = append(names, name)
	}
	return names
}

// Evaluate runs rule name for field against values. A failing rule yields
// a Danger outcome carrying the rule's default message.
func (e *Engine) Evaluate(name, field string, values Values, criteria any) (Outcome, error) {
	passed, err := e.Check(name, field, values, criteria)
	if err != nil {
		return Outcome{}, err
	}
	if passed {
		return Outcome{Passed: true, Context: Success}, nil
	}
	return Outcome{
		Context: Danger,
		Message: DefaultMessage(name, field, criteria),
	}, nil
}

// Check is Evaluate without message resolution. Callers that supply their
// own messages use it to avoid building the default one.
func (e *Engine) Check(name, field string, values Values, criteria any) (bool, error) {
	fn, ok := e.funcs[name]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownRule, name)
	}
	if disabled(criteria) {
		return true, nil
	}
	return fn(values, values[field], criteria), nil
}

// Evaluate runs name using the builtin engine.
func Evaluate(name, field string, values Values, criteria any) (Outcome, error) {
	return defaultEngine.Evaluate(name, field, values, criteria)
}

// disabled reports whether criteria switches a rule off. Rules whose
// criteria is a literal false always pass.
func disabled(criteria any) bool {
	b, ok := criteria.(bool)
	return ok && !b
}
