package hxform

import (
	"io"
	"log/slog"
	"maps"

	"github.com/pthm/hxform/lib/rules"
)

// Option configures a Form.
type Option func(*config)

type config struct {
	id           string
	path         string
	key          []byte
	sticky       bool
	initial      Values
	hiddenSubmit bool
	deferred     bool
	output       io.Writer
	logger       *slog.Logger
	engine       *rules.Engine

	onChange        func(name string, value any, values Values)
	onBlur          func(name string)
	onFocus         func(name string)
	onSubmit        func(values Values)
	onValidSubmit   func(values Values)
	onInvalidSubmit func(values Values)
}

// WithID sets the form's identifier. Defaults to a random UUID.
func WithID(id string) Option {
	return func(c *config) { c.id = id }
}

// WithPath sets the URL prefix the form's handler is mounted under.
// Defaults to "/_f/".
func WithPath(path string) Option {
	return func(c *config) { c.path = path }
}

// WithKey sets the key used to sign field references in rendered markup.
// If not provided, a random key is generated, which only suits a single
// process.
func WithKey(key []byte) Option {
	return func(c *config) { c.key = key }
}

// WithSticky keeps a field's value and validation when its widget unmounts,
// so a remount resumes where it left off. Defaults to false.
func WithSticky(sticky bool) Option {
	return func(c *config) { c.sticky = sticky }
}

// WithInitialValues supplies values used by fields that are otherwise unset.
func WithInitialValues(values Values) Option {
	return func(c *config) { c.initial = maps.Clone(values) }
}

// WithHiddenSubmit renders a hidden submit button inside Wrap so pressing
// Enter in a field submits the form. Defaults to false.
func WithHiddenSubmit(enabled bool) Option {
	return func(c *config) { c.hiddenSubmit = enabled }
}

// WithDeferredRender holds re-renders until Commit instead of flushing at
// the end of every operation. Defaults to false.
func WithDeferredRender(deferred bool) Option {
	return func(c *config) { c.deferred = deferred }
}

// WithOutput sets where immediate re-renders are written. Defaults to
// io.Discard.
func WithOutput(w io.Writer) Option {
	return func(c *config) { c.output = w }
}

// WithLogger sets the logger. If not provided, logs are discarded.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithRule adds a custom rule, or replaces a builtin one, for this form.
func WithRule(name string, fn rules.Func) Option {
	return func(c *config) { c.engine = c.engine.With(name, fn) }
}

// OnChange is called after a field's value changed and was validated, and
// before dependent fields re-validate.
func OnChange(fn func(name string, value any, values Values)) Option {
	return func(c *config) { c.onChange = fn }
}

// OnBlur is called when a field loses focus.
func OnBlur(fn func(name string)) Option {
	return func(c *config) { c.onBlur = fn }
}

// OnFocus is called when a field gains focus.
func OnFocus(fn func(name string)) Option {
	return func(c *config) { c.onFocus = fn }
}

// OnSubmit is called for every submission, after the valid or invalid
// callback.
func OnSubmit(fn func(values Values)) Option {
	return func(c *config) { c.onSubmit = fn }
}

// OnValidSubmit is called when a submission passes validation.
func OnValidSubmit(fn func(values Values)) Option {
	return func(c *config) { c.onValidSubmit = fn }
}

// OnInvalidSubmit is called when a submission fails validation, after every
// field has been validated.
func OnInvalidSubmit(fn func(values Values)) Option {
	return func(c *config) { c.onInvalidSubmit = fn }
}
