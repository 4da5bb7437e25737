package hxform

import (
	"context"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// FeedbackClass returns the CSS class for a validation context.
func FeedbackClass(c Context) string {
	switch c {
	case Success:
		return "feedback feedback-success"
	case Warning:
		return "feedback feedback-warning"
	case Danger:
		return "feedback feedback-danger"
	default:
		return "feedback"
	}
}

// Feedback renders a field's validation message. Fields that are
// unvalidated or have no message render nothing.
//
//	@hxform.Feedback(state)
func Feedback(state FieldState) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		v := state.Validation
		if v == nil || v.Message == "" {
			return nil
		}
		_, err := fmt.Fprintf(w, `<div class="%s" role="alert">%s</div>`,
			FeedbackClass(v.Context), html.EscapeString(v.Message))
		return err
	})
}

// FieldID returns the DOM id used for a field's out-of-band swap target.
func FieldID(name string) string {
	return "hxf-" + name
}

// textInput is the default Input rendering: a text input wrapped in an
// out-of-band swappable container.
func (in *Input) textInput(_ context.Context, state FieldState) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var sb strings.Builder
		fmt.Fprintf(&sb, `<div id="%s" hx-swap-oob="true">`, html.EscapeString(FieldID(state.Name)))
		sb.WriteString(`<input type="text"`)
		writeAttrs(&sb, in.Attrs())
		if state.Value != nil {
			fmt.Fprintf(&sb, ` value="%s"`, html.EscapeString(fmt.Sprint(state.Value)))
		}
		if state.Validation != nil && state.Validation.Context == Danger {
			sb.WriteString(` aria-invalid="true"`)
		}
		sb.WriteString(`>`)
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
		if err := Feedback(state).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

// writeAttrs writes attributes in sorted order. Boolean true renders the
// bare attribute name and false omits it.
func writeAttrs(sb *strings.Builder, attrs templ.Attributes) {
	for _, k := range sortedKeys(attrs) {
		switch v := attrs[k].(type) {
		case bool:
			if v {
				sb.WriteString(" " + html.EscapeString(k))
			}
		default:
			fmt.Fprintf(sb, ` %s="%s"`, html.EscapeString(k), html.EscapeString(fmt.Sprint(v)))
		}
	}
}

// Wrap renders children inside a form element that posts submissions to
// the form's handler. With hidden submit enabled, an invisible submit
// button lets Enter in any field submit the form.
func (f *Form) Wrap(children templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		attrs := WireAttrs(f.Path(), f.ref("", OpSubmit))
		attrs["id"] = f.cfg.id
		attrs["hx-swap"] = "none"
		attrs["novalidate"] = true

		var sb strings.Builder
		sb.WriteString("<form")
		writeAttrs(&sb, attrs)
		sb.WriteString(">")
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
		if children != nil {
			if err := children.Render(ctx, w); err != nil {
				return err
			}
		}
		if err := f.HiddenSubmit().Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</form>")
		return err
	})
}

// HiddenSubmit renders the keyboard submit affordance when the form was
// created WithHiddenSubmit, and nothing otherwise.
func (f *Form) HiddenSubmit() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if !f.cfg.hiddenSubmit {
			return nil
		}
		_, err := io.WriteString(w, `<button type="submit" hidden aria-hidden="true" tabindex="-1"></button>`)
		return err
	})
}
