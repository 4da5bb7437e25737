package hxform

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/hxform/lib/rules"
)

func TestValidatorValidate(t *testing.T) {
	v := NewValidator(nil)
	age := Rules{{Name: "isInt", Criteria: true}, {Name: "minValue", Criteria: 18}}

	tests := []struct {
		name     string
		value    any
		required bool
		want     ValidationResult
	}{
		{"empty optional", "", false, ValidationResult{Context: Success}},
		{"empty required", nil, true, ValidationResult{Context: Danger, Message: "age is required"}},
		{"first failing rule wins", "abc", true, ValidationResult{Context: Danger, Message: "age must be a whole number"}},
		{"second rule", "12", false, ValidationResult{Context: Danger, Message: "age must be at least 18"}},
		{"passes", 21, true, ValidationResult{Context: Success}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.Validate("age", Values{"age": tt.value}, tt.required, age, nil)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidatorMessageOverride(t *testing.T) {
	v := NewValidator(nil)
	msgs := Messages{"minValue": func(field string, values Values, criteria any) string {
		return fmt.Sprintf("%s needs to be %v or more, got %v", field, criteria, values[field])
	}}

	got := v.Validate("age", Values{"age": 3}, false, Rules{{Name: "minValue", Criteria: 18}}, msgs)
	assert.Equal(t, "age needs to be 18 or more, got 3", got.Message)
}

func TestValidatorCheck(t *testing.T) {
	v := NewValidator(rules.Default().With("isEven", func(_ rules.Values, value any, _ any) bool {
		n, ok := value.(int)
		return ok && n%2 == 0
	}))

	require.NoError(t, v.Check(Rules{{Name: "isEven"}, {Name: "isEmail", Criteria: true}}))

	err := v.Check(Rules{{Name: "isEven"}, {Name: "isOdd"}})
	assert.ErrorIs(t, err, ErrUnknownRule)
	assert.ErrorContains(t, err, `"isOdd"`)

	assert.Equal(t, Danger, v.Validate("n", Values{"n": 3}, false, Rules{{Name: "isEven", Criteria: true}}, nil).Context)
}

func TestValidatorUnknownRuleIsDanger(t *testing.T) {
	v := NewValidator(nil)
	got := v.Validate("a", Values{"a": "x"}, false, Rules{{Name: "nope"}}, nil)
	assert.Equal(t, Danger, got.Context)
}

func TestValidationResultValid(t *testing.T) {
	assert.True(t, ValidationResult{Context: Success}.Valid())
	assert.True(t, ValidationResult{Context: Warning}.Valid())
	assert.False(t, ValidationResult{Context: Danger}.Valid())
}

func TestFreezeNested(t *testing.T) {
	orig := map[string]any{"tags": []any{"a", map[string]any{"k": 1}}}
	cp := freeze(orig).(map[string]any)

	cp["tags"].([]any)[1].(map[string]any)["k"] = 2
	cp["new"] = true

	assert.Equal(t, 1, orig["tags"].([]any)[1].(map[string]any)["k"])
	assert.NotContains(t, orig, "new")
	assert.Equal(t, "x", freeze("x"))
	assert.Nil(t, freeze(nil))
}
