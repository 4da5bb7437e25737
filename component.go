package hxform

import (
	"context"

	"github.com/a-h/templ"
)

// RenderFunc renders a widget from its state.
type RenderFunc func(ctx context.Context, state FieldState) templ.Component

// Input is a field widget adapter bound to its owning Form.
//
// Inputs are constructed with the form they belong to rather than finding
// it implicitly, and talk to it only through the form's public operations:
//
//	email := hxform.NewInput(form, hxform.FieldProps{
//	    Name:     "email",
//	    Required: true,
//	    Rules:    hxform.Rules{{Name: "isEmail", Criteria: true}},
//	}, emailTemplate)
//	if err := email.Mount(); err != nil {
//	    return err
//	}
//
// A nil RenderFunc renders a plain text input with its feedback message.
type Input struct {
	form   *Form
	props  FieldProps
	render RenderFunc
}

// NewInput creates an unmounted input.
func NewInput(form *Form, props FieldProps, render RenderFunc) *Input {
	in := &Input{form: form, props: props, render: render}
	if render == nil {
		in.render = in.textInput
	}
	return in
}

// Name returns the input's field name.
func (in *Input) Name() string {
	return in.props.Name
}

// Form returns the form the input belongs to.
func (in *Input) Form() *Form {
	return in.form
}

// Props returns the input's current configuration.
func (in *Input) Props() FieldProps {
	return in.props
}

// SetProps replaces the configuration for subsequent validations and
// renders. The name is fixed at construction.
func (in *Input) SetProps(props FieldProps) {
	props.Name = in.props.Name
	in.props = props
}

// Render implements Field.
func (in *Input) Render(ctx context.Context, state FieldState) templ.Component {
	return in.render(ctx, state)
}

// Mount registers the input with its form.
func (in *Input) Mount() error {
	return in.form.Register(in)
}

// Unmount unregisters the input from its form.
func (in *Input) Unmount() *Settled {
	return in.form.Unregister(in.props.Name)
}

// State returns the input's current state.
func (in *Input) State() FieldState {
	return in.form.State(in.props.Name)
}

// Change reports a new value from the user.
func (in *Input) Change(value any) (*Settled, error) {
	return in.form.Change(in.props.Name, value)
}

// Blur reports that the input lost focus.
func (in *Input) Blur() {
	in.form.Blur(in.props.Name)
}

// Focus reports that the input gained focus.
func (in *Input) Focus() {
	in.form.Focus(in.props.Name)
}

// Attrs returns the htmx attributes that post the input's changes back to
// the form's handler.
func (in *Input) Attrs() templ.Attributes {
	return in.form.FieldAttrs(in.props.Name)
}

// MirrorView reflects another field's state without taking part in
// validation.
type MirrorView struct {
	form    *Form
	name    string
	reflect RenderFunc
}

// NewMirror creates an unmounted mirror of the field name.
func NewMirror(form *Form, name string, reflect RenderFunc) *MirrorView {
	return &MirrorView{form: form, name: name, reflect: reflect}
}

// Mount binds the mirror to its field.
func (m *MirrorView) Mount() {
	m.form.RegisterMirror(m.name, m)
}

// Unmount removes this mirror's binding.
func (m *MirrorView) Unmount() {
	m.form.UnregisterMirror(m.name, m)
}

// State returns the mirrored field's state.
func (m *MirrorView) State() FieldState {
	return m.form.State(m.name)
}

// Reflect implements Mirror.
func (m *MirrorView) Reflect(ctx context.Context, state FieldState) templ.Component {
	return m.reflect(ctx, state)
}
