package hxform

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestPath(t *testing.T) {
	f := New(WithID("abc"))
	if got := f.Path(); got != "/_f/abc" {
		t.Errorf("Path() = %q, want %q", got, "/_f/abc")
	}

	f = New(WithID("abc"), WithPath("/forms/"))
	if got := f.Path(); got != "/forms/abc" {
		t.Errorf("Path() = %q, want %q", got, "/forms/abc")
	}
}

func TestFieldAttrs(t *testing.T) {
	f := New(WithID("abc"))
	attrs := f.FieldAttrs("email")

	if attrs["hx-post"] != "/_f/abc" {
		t.Errorf("hx-post = %v", attrs["hx-post"])
	}
	if attrs["name"] != "value" {
		t.Errorf("name = %v, want value", attrs["name"])
	}
	if attrs["hx-swap"] != "none" {
		t.Errorf("hx-swap = %v, want none", attrs["hx-swap"])
	}

	var vals map[string]string
	if err := json.Unmarshal([]byte(attrs["hx-vals"].(string)), &vals); err != nil {
		t.Fatalf("hx-vals is not JSON: %v", err)
	}
	ref, err := f.DecodeRef(vals["p"])
	if err != nil {
		t.Fatalf("DecodeRef() error = %v", err)
	}
	if ref.Field != "email" || ref.Op != OpChange {
		t.Errorf("ref = %+v", ref)
	}
}

func TestEventAttrs(t *testing.T) {
	f := New()
	attrs := f.EventAttrs("email", OpBlur, "blur")

	if attrs["hx-trigger"] != "blur" {
		t.Errorf("hx-trigger = %v, want blur", attrs["hx-trigger"])
	}
	var vals map[string]string
	if err := json.Unmarshal([]byte(attrs["hx-vals"].(string)), &vals); err != nil {
		t.Fatal(err)
	}
	ref, err := f.DecodeRef(vals["p"])
	if err != nil {
		t.Fatal(err)
	}
	if ref.Op != OpBlur {
		t.Errorf("Op = %q, want %q", ref.Op, OpBlur)
	}
}

func TestWireAttrs(t *testing.T) {
	attrs := WireAttrs("/x", "")
	if _, ok := attrs["hx-vals"]; ok {
		t.Error("hx-vals should be omitted without a reference")
	}
	if attrs["hx-post"] != "/x" {
		t.Errorf("hx-post = %v", attrs["hx-post"])
	}
}

func TestSensitiveRefsAreSealed(t *testing.T) {
	f := New()
	in := NewInput(f, FieldProps{Name: "ssn", Sensitive: true}, nil)
	if err := in.Mount(); err != nil {
		t.Fatal(err)
	}

	signed, err := f.EncodeRef("other", OpChange)
	if err != nil {
		t.Fatal(err)
	}
	sealed, err := f.EncodeRef("ssn", OpChange)
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(signed, ".") {
		t.Errorf("signed ref should carry a signature: %q", signed)
	}
	if strings.Contains(sealed, ".") {
		t.Errorf("sealed ref should be opaque: %q", sealed)
	}

	ref, err := f.DecodeRef(sealed)
	if err != nil {
		t.Fatal(err)
	}
	if ref.Field != "ssn" {
		t.Errorf("Field = %q", ref.Field)
	}
}

func TestDecodeRefRejectsOtherForms(t *testing.T) {
	key := []byte("shared-key-shared-key-shared-key")
	a := New(WithKey(key))
	b := New(WithKey(key))

	encoded, err := a.EncodeRef("email", OpChange)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := b.DecodeRef(encoded); err != ErrSignatureInvalid {
		t.Errorf("DecodeRef() error = %v, want %v", err, ErrSignatureInvalid)
	}
	if _, err := a.DecodeRef("garbage"); !IsDecodeError(err) {
		t.Errorf("DecodeRef(garbage) error = %v, want a decode error", err)
	}
}

func TestMethodAllowed(t *testing.T) {
	tests := []struct {
		name   string
		method string
		htmx   bool
		expect bool
	}{
		{"htmx POST", http.MethodPost, true, true},
		{"plain POST", http.MethodPost, false, false},
		{"htmx GET", http.MethodGet, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/", nil)
			if tt.htmx {
				req.Header.Set("HX-Request", "true")
			}
			if got := methodAllowed(req); got != tt.expect {
				t.Errorf("methodAllowed() = %v, want %v", got, tt.expect)
			}
		})
	}
}
