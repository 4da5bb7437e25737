package hxform

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/a-h/templ"
)

func TestIsHTMX(t *testing.T) {
	tests := []struct {
		name   string
		header string
		expect bool
	}{
		{"with HX-Request true", "true", true},
		{"with HX-Request false", "false", false},
		{"without header", "", false},
		{"with other value", "yes", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("HX-Request", tt.header)
			}

			result := IsHTMX(req)
			if result != tt.expect {
				t.Errorf("IsHTMX() = %v, want %v", result, tt.expect)
			}
		})
	}
}

func TestTriggerName(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	if got := TriggerName(req); got != "" {
		t.Errorf("TriggerName() = %q, want empty", got)
	}

	req.Header.Set("HX-Trigger-Name", "email")
	if got := TriggerName(req); got != "email" {
		t.Errorf("TriggerName() = %q, want %q", got, "email")
	}
}

func TestRenderHelper(t *testing.T) {
	c := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<p>hi</p>")
		return err
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if err := Render(rec, req, c); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if rec.Body.String() != "<p>hi</p>" {
		t.Errorf("body = %q", rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestBuildTriggerHeader(t *testing.T) {
	tests := []struct {
		name        string
		trigger     string
		triggerData map[string]any
		expect      string
	}{
		{
			name:   "empty",
			expect: "",
		},
		{
			name:    "simple trigger",
			trigger: "form:reset",
			expect:  "form:reset",
		},
		{
			name:        "submit result",
			trigger:     SubmitEvent,
			triggerData: map[string]any{"valid": false},
			expect:      `{"form:submit":{"valid":false}}`,
		},
		{
			name:        "multiple data values",
			trigger:     "form:changed",
			triggerData: map[string]any{"field": "email", "valid": true},
			expect:      `{"form:changed":{"field":"email","valid":true}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := BuildTriggerHeader(tt.trigger, tt.triggerData)
			if result != tt.expect {
				t.Errorf("BuildTriggerHeader() = %q, want %q", result, tt.expect)
			}
		})
	}
}
