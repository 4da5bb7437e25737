package hxform

import (
	"bytes"
	"log/slog"
	"net/http"
)

// SubmitEvent is the HX-Trigger event sent after a submission.
const SubmitEvent = "form:submit"

// Handler returns the HTTP handler for the form's field events.
// Mount it at Path():
//
//	http.Handle(form.Path(), form.Handler())
//
// Requests carry an encoded reference p naming the field and operation,
// and for changes the new value. The response body holds the fields and
// mirrors the event re-rendered, as out-of-band swaps.
//
// Only htmx POSTs are accepted, which keeps cross-origin forms from
// mutating state. Requests are serialized so at most one mutation is in
// flight per form.
func (f *Form) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !methodAllowed(r) {
			http.Error(w, "Forbidden: HTMX request required", http.StatusForbidden)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Bad request", http.StatusBadRequest)
			return
		}
		ref, err := f.DecodeRef(r.PostForm.Get("p"))
		if err != nil {
			f.log.Warn("rejected field reference", "error", err)
			http.Error(w, "Bad request", http.StatusBadRequest)
			return
		}

		f.log.Debug("field event",
			slog.String("field", ref.Field),
			slog.String("op", ref.Op),
			slog.String("trigger", TriggerName(r)))

		f.mu.Lock()
		defer f.mu.Unlock()

		var buf bytes.Buffer
		prev := f.cfg.output
		f.cfg.output = &buf
		defer func() { f.cfg.output = prev }()

		switch ref.Op {
		case OpChange:
			_, err = f.Change(ref.Field, postedValue(r))
		case OpBlur:
			f.Blur(ref.Field)
		case OpFocus:
			f.Focus(ref.Field)
		case OpValidate:
			_, err = f.Validate(ref.Field)
		case OpSubmit:
			res := f.Submit()
			w.Header().Set("HX-Trigger", BuildTriggerHeader(SubmitEvent, map[string]any{"valid": res.Valid}))
		default:
			http.Error(w, "Bad request", http.StatusBadRequest)
			return
		}
		if err != nil {
			f.handleError(w, err)
			return
		}

		if err := f.Commit(r.Context(), &buf); err != nil {
			f.handleError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(buf.Bytes())
	})
}

func (f *Form) handleError(w http.ResponseWriter, err error) {
	if IsUnknownField(err) {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	f.log.Error("form event failed", "error", err)
	http.Error(w, "Internal error", http.StatusInternalServerError)
}

// postedValue returns the submitted value: a string, or a []string when a
// multi-valued widget posted several.
func postedValue(r *http.Request) any {
	vals := r.PostForm["value"]
	switch len(vals) {
	case 0:
		return nil
	case 1:
		return vals[0]
	default:
		return vals
	}
}
