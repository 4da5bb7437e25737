package hxform

// SubmitResult is the outcome of Submit.
type SubmitResult struct {
	Valid  bool
	Values Values

	// Settled resolves once every field re-rendered with its result. It is
	// only pending when an invalid submission validated the form.
	Settled *Settled
}

// Submit snapshots the form's values and judges them as IsValid would.
// OnValidSubmit or OnInvalidSubmit fires accordingly; an invalid form is
// first validated in full so every field shows its error. OnSubmit fires
// last with the same snapshot.
func (f *Form) Submit() SubmitResult {
	values := f.Values()
	valid := f.IsValid()

	done := resolved(nil)
	if valid {
		if f.cfg.onValidSubmit != nil {
			f.cfg.onValidSubmit(freeze(values).(Values))
		}
	} else {
		// the all-fields form of Validate cannot fail
		done, _ = f.Validate()
		if f.cfg.onInvalidSubmit != nil {
			f.cfg.onInvalidSubmit(freeze(values).(Values))
		}
	}

	if f.cfg.onSubmit != nil {
		f.cfg.onSubmit(freeze(values).(Values))
	}

	return SubmitResult{Valid: valid, Values: values, Settled: done}
}
