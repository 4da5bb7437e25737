package hxform

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSignupForm(t *testing.T, opts ...Option) *Form {
	t.Helper()
	f := New(opts...)
	inputs := []*Input{
		NewInput(f, FieldProps{Name: "email", Required: true, Rules: Rules{{Name: "isEmail", Criteria: true}}}, nil),
		NewInput(f, FieldProps{Name: "password", Required: true, Triggers: []string{"confirm"}}, nil),
		NewInput(f, FieldProps{Name: "confirm", Rules: Rules{{Name: "eqTarget", Criteria: "password"}}}, nil),
	}
	for _, in := range inputs {
		require.NoError(t, in.Mount())
	}
	return f
}

func TestHandlerRejectsNonHTMX(t *testing.T) {
	f := newSignupForm(t)
	encoded, err := f.EncodeRef("email", OpChange)
	require.NoError(t, err)
	body := url.Values{"p": {encoded}, "value": {"x"}}.Encode()

	for _, tc := range []struct {
		name   string
		method string
		htmx   bool
	}{
		{"plain POST", http.MethodPost, false},
		{"htmx GET", http.MethodGet, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, f.Path(), strings.NewReader(body))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			if tc.htmx {
				req.Header.Set("HX-Request", "true")
			}
			rec := httptest.NewRecorder()
			f.Handler().ServeHTTP(rec, req)
			assert.Equal(t, http.StatusForbidden, rec.Code)
		})
	}
	assert.Nil(t, f.Value("email"))
}

func TestHandlerRejectsBadReference(t *testing.T) {
	f := newSignupForm(t)

	result, err := TestPost(f.Handler(), f.Path(), map[string]string{"p": "forged.sig", "value": "x"})
	require.NoError(t, err)
	assert.True(t, result.HasStatus(http.StatusBadRequest))

	other := New()
	encoded, err := other.EncodeRef("email", OpChange)
	require.NoError(t, err)
	result, err = TestPost(f.Handler(), f.Path(), map[string]string{"p": encoded, "value": "x"})
	require.NoError(t, err)
	assert.True(t, result.HasStatus(http.StatusBadRequest))
}

func TestHandlerChange(t *testing.T) {
	f := newSignupForm(t)

	result, err := TestEvent(f, "email", OpChange, "not-an-email")
	require.NoError(t, err)
	require.True(t, result.IsOK())
	assert.Equal(t, "text/html; charset=utf-8", result.Headers.Get("Content-Type"))
	assert.True(t, result.HTMLContainsAll(
		`id="hxf-email"`,
		`aria-invalid="true"`,
		"email must be a valid email address",
	))
	assert.Equal(t, "not-an-email", f.Value("email"))
}

func TestHandlerChangeRendersDependents(t *testing.T) {
	f := newSignupForm(t)

	_, err := TestEvent(f, "password", OpChange, "abc123")
	require.NoError(t, err)
	_, err = TestEvent(f, "confirm", OpChange, "abc123")
	require.NoError(t, err)

	result, err := TestEvent(f, "password", OpChange, "xyz999")
	require.NoError(t, err)
	assert.True(t, result.HTMLContainsAll(`id="hxf-password"`, `id="hxf-confirm"`, "confirm must match password"))
	assert.NotContains(t, result.HTML, `id="hxf-email"`)
}

func TestHandlerValidate(t *testing.T) {
	f := newSignupForm(t)

	result, err := TestEvent(f, "email", OpValidate, "")
	require.NoError(t, err)
	assert.True(t, result.HTMLContains("email is required"))
	assert.False(t, f.IsPristine("email"))
}

func TestHandlerBlurAndFocus(t *testing.T) {
	var seen []string
	f := newSignupForm(t,
		OnBlur(func(name string) { seen = append(seen, "blur "+name) }),
		OnFocus(func(name string) { seen = append(seen, "focus "+name) }),
	)

	for _, op := range []string{OpFocus, OpBlur} {
		result, err := TestEvent(f, "email", op, "")
		require.NoError(t, err)
		assert.True(t, result.IsOK())
		assert.Empty(t, result.HTML)
	}
	assert.Equal(t, []string{"focus email", "blur email"}, seen)
}

func TestHandlerSubmit(t *testing.T) {
	var submitted Values
	f := newSignupForm(t, OnValidSubmit(func(v Values) { submitted = v }))

	result, err := TestSubmit(f)
	require.NoError(t, err)
	assert.True(t, result.HasEvent(SubmitEvent))
	assert.Contains(t, result.Headers.Get("HX-Trigger"), `"valid":false`)
	assert.Nil(t, submitted)

	for name, value := range map[string]string{"email": "user@example.com", "password": "abc123", "confirm": "abc123"} {
		_, err := TestEvent(f, name, OpChange, value)
		require.NoError(t, err)
	}

	result, err = TestSubmit(f)
	require.NoError(t, err)
	assert.Contains(t, result.Headers.Get("HX-Trigger"), `"valid":true`)
	assert.Equal(t, Values{"email": "user@example.com", "password": "abc123", "confirm": "abc123"}, submitted)
}

func TestHandlerUnmountedField(t *testing.T) {
	f := newSignupForm(t)
	encoded, err := f.EncodeRef("confirm", OpChange)
	require.NoError(t, err)
	f.Unregister("confirm")

	result, err := TestPost(f.Handler(), f.Path(), map[string]string{"p": encoded, "value": "x"})
	require.NoError(t, err)
	assert.True(t, result.HasStatus(http.StatusNotFound))
}

func TestHandlerMultiValue(t *testing.T) {
	f := New()
	require.NoError(t, NewInput(f, FieldProps{Name: "tags"}, nil).Mount())
	encoded, err := f.EncodeRef("tags", OpChange)
	require.NoError(t, err)

	body := url.Values{"p": {encoded}, "value": {"go", "htmx"}}.Encode()
	req := httptest.NewRequest(http.MethodPost, f.Path(), strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	f.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"go", "htmx"}, f.Value("tags"))
}

func TestHandlerLogsTriggerElement(t *testing.T) {
	var logs bytes.Buffer
	f := newSignupForm(t, WithLogger(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))))
	encoded, err := f.EncodeRef("email", OpBlur)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, f.Path(), strings.NewReader(url.Values{"p": {encoded}}.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	req.Header.Set("HX-Trigger-Name", "email")
	rec := httptest.NewRecorder()
	f.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, logs.String(), "field event")
	assert.Contains(t, logs.String(), "op=blur")
	assert.Contains(t, logs.String(), "trigger=email")
}
