package hxform

import (
	"crypto/rand"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/pthm/hxform/lib/encoding"
	"github.com/pthm/hxform/lib/rules"
	"github.com/pthm/hxform/lib/trigger"
)

// Form coordinates the fields of one form instance: it owns their state,
// validates them, re-validates dependents when a field changes, and
// schedules re-renders of fields and mirrors.
//
// A Form is not safe for concurrent use. All operations are expected to be
// issued from one event loop at a time; Handler serializes HTTP requests
// for this reason.
type Form struct {
	cfg       config
	log       *slog.Logger
	reg       *registry
	mirrors   *mirrors
	queue     *renderQueue
	validator *Validator
	encoder   *Encoder

	mu sync.Mutex // serializes Handler requests
}

// New creates a form.
//
//	form := hxform.New(
//	    hxform.WithInitialValues(hxform.Values{"country": "SE"}),
//	    hxform.OnValidSubmit(save),
//	)
func New(opts ...Option) *Form {
	cfg := config{
		path:   "/_f/",
		output: io.Discard,
		engine: rules.Default(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.id == "" {
		cfg.id = uuid.NewString()
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.key == nil {
		cfg.key = make([]byte, 32)
		if _, err := rand.Read(cfg.key); err != nil {
			panic("hxform: failed to generate random key: " + err.Error())
		}
	}

	enc, err := encoding.NewEncoder(cfg.key)
	if err != nil {
		panic("hxform: failed to create encoder: " + err.Error())
	}

	log := cfg.logger.With(slog.String("form", cfg.id))
	return &Form{
		cfg:       cfg,
		log:       log,
		reg:       newRegistry(cfg.sticky, cfg.initial, log),
		mirrors:   newMirrors(),
		queue:     newRenderQueue(),
		validator: NewValidator(cfg.engine),
		encoder:   enc,
	}
}

// ID returns the form's identifier.
func (f *Form) ID() string {
	return f.cfg.id
}

// Register binds a mounted widget to its declared name. Registering a name
// whose widget is still mounted is ignored with a warning. Declaring a rule
// the form does not know is a configuration error.
func (f *Form) Register(field Field) error {
	props := field.Props()
	if props.Name == "" {
		return ErrInvalidName
	}
	if err := f.validator.Check(props.Rules); err != nil {
		return fieldErr("register", props.Name, err)
	}
	f.reg.register(props.Name, field)
	return nil
}

// Unregister detaches the widget registered under name. Unknown names are
// ignored with a warning. Mirrors of the field are refreshed.
func (f *Form) Unregister(name string) *Settled {
	if !f.reg.unregister(name) {
		return resolved(nil)
	}
	f.queueMirrors(name)
	return f.settle()
}

// RegisterMirror binds a read-only observer to name.
func (f *Form) RegisterMirror(name string, m Mirror) {
	f.mirrors.register(name, m)
}

// UnregisterMirror removes the binding of m to name only.
func (f *Form) UnregisterMirror(name string, m Mirror) {
	f.mirrors.unregister(name, m)
}

// RefreshMirrors re-renders every observer of name.
func (f *Form) RefreshMirrors(name string) *Settled {
	f.queueMirrors(name)
	return f.settle()
}

// Names returns the registered field names in registration order.
func (f *Form) Names() []string {
	return f.reg.names()
}

// Has reports whether name has a descriptor.
func (f *Form) Has(name string) bool {
	_, ok := f.reg.lookup(name)
	return ok
}

// Value returns the effective value of name. Composite values are copies.
func (f *Form) Value(name string) any {
	return freeze(f.reg.value(name))
}

// Values snapshots every field's effective value.
func (f *Form) Values() Values {
	return freeze(f.reg.values()).(Values)
}

// Validation returns the current validation result of name, or nil if the
// field has not been evaluated.
func (f *Form) Validation(name string) *ValidationResult {
	return f.reg.validation(name)
}

// State returns everything a widget needs to render name.
func (f *Form) State(name string) FieldState {
	return f.reg.state(name)
}

// SetValue stores value for name, validates it against the current values
// of every field, notifies OnChange, then re-validates the fields name
// triggers and schedules re-renders for all of them and their mirrors.
// A sticky field with no mounted widget stores the value and keeps its
// validation result until it is remounted and validated.
func (f *Form) SetValue(name string, value any, pristine bool) (*Settled, error) {
	e, ok := f.reg.lookup(name)
	if !ok {
		return nil, fieldErr("set value", name, ErrUnknownField)
	}

	f.reg.setValue(e, value, pristine)
	values := f.reg.values()
	values[name] = value
	if e.mounted() {
		f.reg.setValidation(e, f.evaluate(name, e, values), pristine)
	}

	if f.cfg.onChange != nil {
		f.cfg.onChange(name, freeze(value), freeze(values).(Values))
	}

	f.queueField(name)
	f.propagate(name, values)
	return f.settle(), nil
}

// Change records user input: SetValue with pristine cleared.
func (f *Form) Change(name string, value any) (*Settled, error) {
	return f.SetValue(name, value, false)
}

// SetValidatorData forces a validation result for name without running any
// rule.
func (f *Form) SetValidatorData(name string, result ValidationResult) (*Settled, error) {
	e, ok := f.reg.lookup(name)
	if !ok {
		return nil, fieldErr("set validator data", name, ErrUnknownField)
	}
	f.reg.setValidation(e, result, false)
	f.queueField(name)
	return f.settle(), nil
}

// Blur notifies OnBlur for name.
func (f *Form) Blur(name string) {
	if f.cfg.onBlur != nil {
		f.cfg.onBlur(name)
	}
}

// Focus notifies OnFocus for name.
func (f *Form) Focus(name string) {
	if f.cfg.onFocus != nil {
		f.cfg.onFocus(name)
	}
}

// Related returns the fields that re-validate when name changes.
func (f *Form) Related(name string) []string {
	return trigger.Related(name, f.triggers)
}

func (f *Form) triggers(name string) []string {
	e, ok := f.reg.lookup(name)
	if !ok {
		return nil
	}
	return e.props(name).Triggers
}

// propagate re-validates every field related to name against values, the
// snapshot name itself was validated with. Each related field validates
// once. A sticky field with no mounted widget has no rules to run and keeps
// its stored result.
func (f *Form) propagate(name string, values Values) {
	for _, r := range f.Related(name) {
		e, ok := f.reg.lookup(r)
		if !ok {
			f.log.Debug("trigger names unregistered field", slog.String("field", name), slog.String("target", r))
			continue
		}
		if !e.mounted() {
			f.log.Debug("trigger target unmounted, result kept", slog.String("field", name), slog.String("target", r))
			continue
		}
		f.reg.setValidation(e, f.evaluate(r, e, values), false)
		f.queueField(r)
	}
}

// evaluate runs the validator for name against values using the widget's
// declared rules.
func (f *Form) evaluate(name string, e *entry, values Values) ValidationResult {
	props := e.props(name)
	return f.validator.Validate(name, values, props.Required, props.Rules, props.Messages)
}
