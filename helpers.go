package hxform

import (
	"encoding/json"
	"net/http"

	"github.com/a-h/templ"
)

// Render writes a templ component to the HTTP response.
//
//	func page(w http.ResponseWriter, r *http.Request) {
//	    hxform.Render(w, r, form.Wrap(fields))
//	}
func Render(w http.ResponseWriter, r *http.Request, component templ.Component) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return component.Render(r.Context(), w)
}

// IsHTMX returns true if the request originated from HTMX.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// TriggerName returns the name attribute of the element that triggered the
// request, or "" for non-HTMX requests.
func TriggerName(r *http.Request) string {
	return r.Header.Get("HX-Trigger-Name")
}

// BuildTriggerHeader builds an HX-Trigger header value.
//
//  1. Event name only: "form:reset" -> "form:reset"
//  2. Event with data: "form:submit" + {"valid": true} -> {"form:submit": {"valid": true}}
func BuildTriggerHeader(event string, data map[string]any) string {
	if event == "" {
		return ""
	}
	if data == nil {
		return event
	}
	encoded, _ := json.Marshal(map[string]any{event: data})
	return string(encoded)
}
