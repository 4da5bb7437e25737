package hxform

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/a-h/templ"
)

// Path returns the URL the form's Handler serves.
func (f *Form) Path() string {
	return f.cfg.path + f.cfg.id
}

// FieldAttrs builds the htmx attributes a widget needs to report changes,
// blur and focus for name. Responses arrive as out-of-band swaps, so the
// widget itself swaps nothing.
func (f *Form) FieldAttrs(name string) templ.Attributes {
	attrs := WireAttrs(f.Path(), f.ref(name, OpChange))
	attrs["name"] = "value"
	attrs["hx-trigger"] = "input changed delay:300ms, change"
	attrs["hx-swap"] = "none"
	return attrs
}

// EventAttrs builds htmx attributes posting op for name on the given DOM
// event, e.g. EventAttrs("email", OpBlur, "blur").
func (f *Form) EventAttrs(name, op, event string) templ.Attributes {
	attrs := WireAttrs(f.Path(), f.ref(name, op))
	attrs["hx-trigger"] = event
	attrs["hx-swap"] = "none"
	return attrs
}

func (f *Form) ref(name, op string) string {
	encoded, err := f.EncodeRef(name, op)
	if err != nil {
		f.log.Error("encode field reference", "field", name, "op", op, "error", err)
		return ""
	}
	return encoded
}

// WireAttrs builds the minimal POST attributes for a form endpoint with the
// encoded reference in hx-vals.
func WireAttrs(path, encoded string) templ.Attributes {
	attrs := templ.Attributes{"hx-post": path}
	if encoded != "" {
		data, _ := json.Marshal(map[string]string{"p": encoded})
		attrs["hx-vals"] = string(data)
	}
	return attrs
}

// sortedKeys returns attribute names in a stable order for rendering.
func sortedKeys(attrs templ.Attributes) []string {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// methodAllowed mirrors the CSRF rule of the handler: only htmx-originated
// POSTs mutate a form.
func methodAllowed(r *http.Request) bool {
	return r.Method == http.MethodPost && IsHTMX(r)
}
