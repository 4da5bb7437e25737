package hxform

import (
	"log/slog"
	"slices"
)

// entry is the descriptor of one registered field name. field is non-nil
// only while the widget is mounted.
type entry struct {
	field      Field
	value      any
	hasValue   bool
	pristine   bool
	validation *ValidationResult
}

func (e *entry) mounted() bool {
	return e != nil && e.field != nil
}

func (e *entry) props(name string) FieldProps {
	if e == nil || e.field == nil {
		return FieldProps{Name: name}
	}
	p := e.field.Props()
	p.Name = name
	return p
}

// registry owns field descriptors. Only the Form mutates it; widgets hold
// a name, never an entry.
type registry struct {
	entries map[string]*entry
	order   []string
	initial Values
	sticky  bool
	log     *slog.Logger
}

func newRegistry(sticky bool, initial Values, log *slog.Logger) *registry {
	return &registry{
		entries: make(map[string]*entry),
		initial: initial,
		sticky:  sticky,
		log:     log,
	}
}

// register binds f to its name. A name that already has a live widget is
// left untouched and reported, since duplicate mounts happen naturally
// while a tree is re-rendering.
func (r *registry) register(name string, f Field) bool {
	e, ok := r.entries[name]
	if ok && e.field != nil {
		r.log.Warn("duplicate field registration ignored", slog.String("field", name))
		return false
	}
	if !ok {
		e = &entry{pristine: true}
		r.entries[name] = e
		r.order = append(r.order, name)
	}
	e.field = f
	return true
}

// unregister detaches the widget bound to name. In sticky mode the
// descriptor survives so a remount picks up its value and validation.
func (r *registry) unregister(name string) bool {
	e, ok := r.entries[name]
	if !ok || e.field == nil {
		r.log.Warn("unregister of field with no mounted widget", slog.String("field", name))
		return false
	}
	if r.sticky {
		e.field = nil
		return true
	}
	delete(r.entries, name)
	r.order = slices.DeleteFunc(r.order, func(n string) bool { return n == name })
	return true
}

func (r *registry) lookup(name string) (*entry, bool) {
	e, ok := r.entries[name]
	return e, ok
}

func (r *registry) names() []string {
	return slices.Clone(r.order)
}

// value resolves the effective value of name. Precedence: a controlled
// widget value, the tracked value, the form's initial value, the widget's
// declared default.
func (r *registry) value(name string) any {
	e := r.entries[name]
	props := e.props(name)
	if props.Controlled {
		return props.Value
	}
	if e != nil && e.hasValue {
		return e.value
	}
	if v, ok := r.initial[name]; ok {
		return v
	}
	return props.Default
}

// values snapshots every registered field's effective value.
func (r *registry) values() Values {
	out := make(Values, len(r.order))
	for _, name := range r.order {
		out[name] = r.value(name)
	}
	return out
}

// validation returns the externally supplied result if the widget declares
// one, otherwise the stored result.
func (r *registry) validation(name string) *ValidationResult {
	e, ok := r.entries[name]
	if !ok {
		return nil
	}
	res := e.validation
	if ext := e.props(name).Validation; ext != nil {
		res = ext
	}
	if res == nil {
		return nil
	}
	out := *res
	return &out
}

func (r *registry) setValue(e *entry, value any, pristine bool) {
	e.value = value
	e.hasValue = true
	e.pristine = pristine
}

func (r *registry) setValidation(e *entry, result ValidationResult, pristine bool) {
	e.validation = &result
	e.pristine = pristine
}

func (r *registry) reset(e *entry) {
	e.value = nil
	e.hasValue = false
	e.validation = nil
	e.pristine = true
}

// isPristine is true when every named field is pristine. Unknown names
// count as pristine.
func (r *registry) isPristine(names []string) bool {
	for _, name := range names {
		if e, ok := r.entries[name]; ok && !e.pristine {
			return false
		}
	}
	return true
}

func (r *registry) state(name string) FieldState {
	e, ok := r.entries[name]
	return FieldState{
		Name:       name,
		Value:      freeze(r.value(name)),
		Pristine:   !ok || e.pristine,
		Validation: r.validation(name),
		Mounted:    ok && e.field != nil,
	}
}
