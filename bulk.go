package hxform

import "log/slog"

// targets resolves the names of a bulk operation. No names means every
// registered field.
func (f *Form) targets(op string, names []string) ([]string, error) {
	if len(names) == 0 {
		return f.reg.names(), nil
	}
	for _, name := range names {
		if _, ok := f.reg.lookup(name); !ok {
			return nil, fieldErr(op, name, ErrUnknownField)
		}
	}
	return names, nil
}

// Validate recomputes and stores the validation result of each named field,
// or of every field when no names are given. Values are left untouched.
// Sticky fields with no mounted widget keep their stored result.
func (f *Form) Validate(names ...string) (*Settled, error) {
	targets, err := f.targets("validate", names)
	if err != nil {
		return nil, err
	}
	values := f.reg.values()
	for _, name := range targets {
		e, _ := f.reg.lookup(name)
		if !e.mounted() {
			f.log.Debug("validate skipped unmounted field", slog.String("field", name))
			continue
		}
		f.reg.setValidation(e, f.evaluate(name, e, values), false)
		f.queueField(name)
	}
	return f.settle(), nil
}

// Clear sets each named field, or every field, to nil. It goes through
// SetValue, so cleared fields validate and propagate like any change.
func (f *Form) Clear(names ...string) (*Settled, error) {
	targets, err := f.targets("clear", names)
	if err != nil {
		return nil, err
	}
	for _, name := range targets {
		if _, err := f.SetValue(name, nil, false); err != nil {
			return nil, err
		}
	}
	return f.settle(), nil
}

// Reset drops the stored value, validation result and pristine flag of
// each named field, or every field, returning it to its initial state.
func (f *Form) Reset(names ...string) (*Settled, error) {
	targets, err := f.targets("reset", names)
	if err != nil {
		return nil, err
	}
	for _, name := range targets {
		e, _ := f.reg.lookup(name)
		f.reg.reset(e)
		f.queueField(name)
	}
	return f.settle(), nil
}

// IsValid reports whether no named field, or no field at all, is in the
// Danger context. Widgets that supply their own validation result are
// judged by it, and unmounted sticky fields by their stored result. Every
// other field is validated afresh without storing the result.
func (f *Form) IsValid(names ...string) bool {
	if len(names) == 0 {
		names = f.reg.names()
	}
	values := f.reg.values()
	for _, name := range names {
		if !f.check(name, values).Valid() {
			return false
		}
	}
	return true
}

func (f *Form) check(name string, values Values) ValidationResult {
	e, ok := f.reg.lookup(name)
	if !ok {
		return f.validator.Validate(name, values, false, nil, nil)
	}
	if !e.mounted() {
		if e.validation != nil {
			return *e.validation
		}
		return ValidationResult{Context: Success}
	}
	if ext := e.props(name).Validation; ext != nil {
		return *ext
	}
	return f.evaluate(name, e, values)
}

// IsPristine reports whether every named field, or every field, is
// pristine. Unregistered names count as pristine.
func (f *Form) IsPristine(names ...string) bool {
	if len(names) == 0 {
		names = f.reg.names()
	}
	return f.reg.isPristine(names)
}
