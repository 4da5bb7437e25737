package hxform

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
)

// TestResult holds the output of a rendered widget or a handler request.
type TestResult struct {
	HTML            string
	StatusCode      int
	Headers         http.Header
	TriggeredEvents []string
}

// RenderField renders name's widget from its current state without going
// through HTTP.
//
//	result, err := hxform.RenderField(form, "email")
//	if !result.HTMLContains("must be a valid email") {
//	    t.Fatal("missing feedback")
//	}
func RenderField(form *Form, name string) (*TestResult, error) {
	return RenderFieldWithContext(context.Background(), form, name)
}

// RenderFieldWithContext is RenderField with a caller supplied context.
func RenderFieldWithContext(ctx context.Context, form *Form, name string) (*TestResult, error) {
	e, ok := form.reg.lookup(name)
	if !ok || e.field == nil {
		return nil, fieldErr("render", name, ErrUnknownField)
	}

	var buf bytes.Buffer
	if err := e.field.Render(ctx, form.State(name)).Render(ctx, &buf); err != nil {
		return nil, err
	}
	return &TestResult{
		HTML:       buf.String(),
		StatusCode: http.StatusOK,
		Headers:    make(http.Header),
	}, nil
}

// TestEvent posts op for name through the form's handler, as a widget
// would. value is only sent for changes.
//
//	result, err := hxform.TestEvent(form, "email", hxform.OpChange, "user@example.com")
func TestEvent(form *Form, name, op, value string) (*TestResult, error) {
	encoded, err := form.EncodeRef(name, op)
	if err != nil {
		return nil, err
	}
	data := map[string]string{"p": encoded}
	if op == OpChange {
		data["value"] = value
	}
	return TestPost(form.Handler(), form.Path(), data)
}

// TestSubmit posts a submission through the form's handler.
func TestSubmit(form *Form) (*TestResult, error) {
	return TestEvent(form, "", OpSubmit, "")
}

// TestPost simulates an htmx POST with form data against h.
func TestPost(h http.Handler, target string, formData map[string]string) (*TestResult, error) {
	form := url.Values{}
	for k, v := range formData {
		form.Set(k, v)
	}

	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	result := &TestResult{
		HTML:       rec.Body.String(),
		StatusCode: rec.Code,
		Headers:    rec.Header(),
	}
	if trigger := rec.Header().Get("HX-Trigger"); trigger != "" {
		result.TriggeredEvents = parseTriggerHeader(trigger)
	}
	return result, nil
}

// HTMLContains checks if the HTML contains a substring.
func (r *TestResult) HTMLContains(substr string) bool {
	return strings.Contains(r.HTML, substr)
}

// HTMLContainsAll checks if the HTML contains all the given substrings.
func (r *TestResult) HTMLContainsAll(substrs ...string) bool {
	for _, s := range substrs {
		if !strings.Contains(r.HTML, s) {
			return false
		}
	}
	return true
}

// HasEvent checks if an event was triggered.
func (r *TestResult) HasEvent(event string) bool {
	for _, e := range r.TriggeredEvents {
		if e == event {
			return true
		}
	}
	return false
}

// IsOK checks if the status code is 200.
func (r *TestResult) IsOK() bool {
	return r.StatusCode == http.StatusOK
}

// HasStatus checks if the status code matches.
func (r *TestResult) HasStatus(code int) bool {
	return r.StatusCode == code
}

// parseTriggerHeader parses the HX-Trigger header value into event names.
// The header can be a comma separated list or a JSON object whose
// top-level keys are the events.
func parseTriggerHeader(trigger string) []string {
	trigger = strings.TrimSpace(trigger)
	if trigger == "" {
		return nil
	}

	if strings.HasPrefix(trigger, "{") {
		var events []string
		depth := 0
		inString := false
		stringStart := -1

		for i := 0; i < len(trigger); i++ {
			c := trigger[i]

			if inString && c == '\\' && i+1 < len(trigger) {
				i++
				continue
			}

			if c == '"' {
				if !inString {
					inString = true
					stringStart = i + 1
					continue
				}
				inString = false
				if depth == 1 {
					j := i + 1
					for j < len(trigger) && (trigger[j] == ' ' || trigger[j] == '\t') {
						j++
					}
					if j < len(trigger) && trigger[j] == ':' {
						events = append(events, trigger[stringStart:i])
					}
				}
				stringStart = -1
			} else if !inString {
				switch c {
				case '{':
					depth++
				case '}':
					depth--
				}
			}
		}
		return events
	}

	parts := strings.Split(trigger, ",")
	events := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			events = append(events, p)
		}
	}
	return events
}
