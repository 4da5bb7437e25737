package hxform

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func renderString(t *testing.T, f func(*bytes.Buffer) error) string {
	t.Helper()
	var buf bytes.Buffer
	if err := f(&buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

func TestFeedbackClass(t *testing.T) {
	tests := []struct {
		ctx  Context
		want string
	}{
		{Success, "feedback feedback-success"},
		{Warning, "feedback feedback-warning"},
		{Danger, "feedback feedback-danger"},
		{Context("other"), "feedback"},
	}

	for _, tt := range tests {
		if got := FeedbackClass(tt.ctx); got != tt.want {
			t.Errorf("FeedbackClass(%q) = %q, want %q", tt.ctx, got, tt.want)
		}
	}
}

func TestFeedbackEmpty(t *testing.T) {
	ctx := context.Background()
	states := []FieldState{
		{Name: "a"},
		{Name: "a", Validation: &ValidationResult{Context: Success}},
	}
	for _, s := range states {
		got := renderString(t, func(b *bytes.Buffer) error { return Feedback(s).Render(ctx, b) })
		if got != "" {
			t.Errorf("Feedback(%+v) = %q, want empty string", s, got)
		}
	}
}

func TestFeedbackMessage(t *testing.T) {
	state := FieldState{Name: "email", Validation: &ValidationResult{
		Context: Danger,
		Message: `email must be <a> "valid" email`,
	}}

	got := renderString(t, func(b *bytes.Buffer) error {
		return Feedback(state).Render(context.Background(), b)
	})

	want := `<div class="feedback feedback-danger" role="alert">email must be &lt;a&gt; &#34;valid&#34; email</div>`
	if got != want {
		t.Errorf("Feedback() = %q, want %q", got, want)
	}
}

func TestTextInput(t *testing.T) {
	f := New(WithID("signup"), WithPath("/forms/"))
	in := NewInput(f, FieldProps{Name: "email", Rules: Rules{{Name: "isEmail", Criteria: true}}}, nil)
	if err := in.Mount(); err != nil {
		t.Fatal(err)
	}
	if _, err := in.Change("nope"); err != nil {
		t.Fatal(err)
	}

	got := renderString(t, func(b *bytes.Buffer) error {
		return in.Render(context.Background(), in.State()).Render(context.Background(), b)
	})

	for _, want := range []string{
		`<div id="hxf-email" hx-swap-oob="true">`,
		`<input type="text"`,
		`hx-post="/forms/signup"`,
		`name="value"`,
		`value="nope"`,
		`aria-invalid="true"`,
		`email must be a valid email address`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in %s", want, got)
		}
	}
	if !strings.HasSuffix(got, "</div></div>") {
		t.Errorf("unexpected structure: %s", got)
	}
}

func TestWrap(t *testing.T) {
	f := New(WithID("signup"), WithHiddenSubmit(true))
	got := renderString(t, func(b *bytes.Buffer) error {
		return f.Wrap(nil).Render(context.Background(), b)
	})

	for _, want := range []string{
		`<form`,
		`id="signup"`,
		`hx-post="/_f/signup"`,
		`hx-swap="none"`,
		` novalidate`,
		`<button type="submit" hidden`,
		`</form>`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in %s", want, got)
		}
	}

	plain := New()
	got = renderString(t, func(b *bytes.Buffer) error {
		return plain.HiddenSubmit().Render(context.Background(), b)
	})
	if got != "" {
		t.Errorf("HiddenSubmit() without option = %q, want empty", got)
	}
}
