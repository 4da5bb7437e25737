// Package definition loads declarative form definitions from YAML or JSON
// and builds headless forms from them.
//
// A definition lists fields in order. Rules are written as a mapping and
// keep the order they appear in, since the first failing rule decides the
// message:
//
//	id: signup
//	fields:
//	  - name: password
//	    required: true
//	    rules: {minLength: 8, matches: "[0-9]"}
//	    messages: {matches: password needs a digit}
//	    triggers: [confirm]
//	  - name: confirm
//	    rules: {eqTarget: password}
//	values:
//	  password: hunter22
package definition

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/a-h/templ"
	"gopkg.in/yaml.v3"

	"github.com/pthm/hxform"
)

// Definition is a parsed form definition.
type Definition struct {
	ID      string         `yaml:"id"`
	Sticky  bool           `yaml:"sticky"`
	Initial map[string]any `yaml:"initial"`
	Fields  []Field        `yaml:"fields"`

	// Values are applied as changes after every field is registered.
	Values map[string]any `yaml:"values"`
}

// Field declares one field.
type Field struct {
	Name     string            `yaml:"name"`
	Required bool              `yaml:"required"`
	Rules    RuleList          `yaml:"rules"`
	Messages map[string]string `yaml:"messages"`
	Triggers []string          `yaml:"triggers"`
	Default  any               `yaml:"default"`
}

// Rule is a rule name with its criteria.
type Rule struct {
	Name     string
	Criteria any
}

// RuleList is an ordered rule set. It decodes from a mapping, keeping key
// order, or from a sequence of single-entry mappings.
type RuleList []Rule

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *RuleList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.MappingNode:
		rules, err := decodePairs(node)
		if err != nil {
			return err
		}
		*l = rules
		return nil
	case yaml.SequenceNode:
		var out RuleList
		for _, item := range node.Content {
			if item.Kind != yaml.MappingNode {
				return fmt.Errorf("line %d: rule must be a mapping", item.Line)
			}
			rules, err := decodePairs(item)
			if err != nil {
				return err
			}
			out = append(out, rules...)
		}
		*l = out
		return nil
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			*l = nil
			return nil
		}
	}
	return fmt.Errorf("line %d: rules must be a mapping or a list", node.Line)
}

func decodePairs(node *yaml.Node) (RuleList, error) {
	out := make(RuleList, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		var criteria any
		if err := value.Decode(&criteria); err != nil {
			return nil, fmt.Errorf("line %d: rule %q: %w", value.Line, key.Value, err)
		}
		out = append(out, Rule{Name: key.Value, Criteria: criteria})
	}
	return out, nil
}

// Parse decodes a definition from YAML. JSON input is accepted as well.
func Parse(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("definition: parse: %w", err)
	}
	return &def, nil
}

// Read decodes a definition from r.
func Read(r io.Reader) (*Definition, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("definition: read: %w", err)
	}
	return Parse(data)
}

// Load decodes the definition file at path.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("definition: %w", err)
	}
	return Parse(data)
}

// Names returns the declared field names in order.
func (d *Definition) Names() []string {
	names := make([]string, 0, len(d.Fields))
	for _, f := range d.Fields {
		names = append(names, f.Name)
	}
	return names
}

// Props converts the field declaration to widget props.
func (f Field) Props() hxform.FieldProps {
	props := hxform.FieldProps{
		Name:     f.Name,
		Required: f.Required,
		Triggers: f.Triggers,
		Default:  f.Default,
	}
	for _, r := range f.Rules {
		props.Rules = append(props.Rules, hxform.Rule{Name: r.Name, Criteria: r.Criteria})
	}
	if len(f.Messages) > 0 {
		props.Messages = make(hxform.Messages, len(f.Messages))
		for k, v := range f.Messages {
			props.Messages[k] = hxform.Text(v)
		}
	}
	return props
}

// static is a field with no markup, for forms evaluated outside a page.
type static struct {
	props hxform.FieldProps
}

func (s static) Props() hxform.FieldProps { return s.props }

func (s static) Render(context.Context, hxform.FieldState) templ.Component {
	return templ.NopComponent
}

// Build creates a form holding every declared field, then applies the
// definition's values as changes. opts are applied after the options the
// definition implies.
func Build(def *Definition, opts ...hxform.Option) (*hxform.Form, error) {
	base := []hxform.Option{
		hxform.WithSticky(def.Sticky),
		hxform.WithInitialValues(def.Initial),
	}
	if def.ID != "" {
		base = append(base, hxform.WithID(def.ID))
	}
	form := hxform.New(append(base, opts...)...)

	for _, f := range def.Fields {
		if err := form.Register(static{props: f.Props()}); err != nil {
			return nil, err
		}
	}
	for name := range def.Values {
		if !form.Has(name) {
			return nil, &hxform.FieldError{Op: "apply value", Field: name, Err: hxform.ErrUnknownField}
		}
	}
	for _, name := range def.Names() {
		v, ok := def.Values[name]
		if !ok {
			continue
		}
		if _, err := form.Change(name, v); err != nil {
			return nil, err
		}
	}
	return form, nil
}

// ErrInvalid is returned by Evaluate when a field is in the Danger context.
var ErrInvalid = errors.New("definition: form is invalid")

// FieldResult is one field's evaluation.
type FieldResult struct {
	Name   string
	Value  any
	Result hxform.ValidationResult
}

// Evaluate validates every field of form and reports the results in
// registration order. The error is ErrInvalid when any field fails.
func Evaluate(form *hxform.Form) ([]FieldResult, error) {
	if _, err := form.Validate(); err != nil {
		return nil, err
	}
	var out []FieldResult
	for _, name := range form.Names() {
		res := FieldResult{Name: name, Value: form.Value(name)}
		if v := form.Validation(name); v != nil {
			res.Result = *v
		}
		out = append(out, res)
	}
	if !form.IsValid() {
		return out, ErrInvalid
	}
	return out, nil
}
