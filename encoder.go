package hxform

import (
	"github.com/pthm/hxform/lib/encoding"
)

// Encoder is an alias for encoding.Encoder for convenience.
type Encoder = encoding.Encoder

// Ref is an alias for encoding.Ref.
type Ref = encoding.Ref

// Field event operations carried in a Ref.
const (
	OpChange   = "change"
	OpBlur     = "blur"
	OpFocus    = "focus"
	OpValidate = "validate"
	OpSubmit   = "submit"
)

// EncodeRef seals a reference to op on name for embedding in markup.
// Sensitive fields are encrypted, others signed.
func (f *Form) EncodeRef(name, op string) (string, error) {
	sealed := false
	if e, ok := f.reg.lookup(name); ok {
		sealed = e.props(name).Sensitive
	}
	return f.encoder.Encode(Ref{Form: f.cfg.id, Field: name, Op: op}, sealed)
}

// DecodeRef verifies an encoded reference produced by this form.
func (f *Form) DecodeRef(encoded string) (Ref, error) {
	ref, err := f.encoder.Decode(encoded)
	if err != nil {
		return Ref{}, wrapEncodingError(err)
	}
	if ref.Form != f.cfg.id {
		return Ref{}, ErrSignatureInvalid
	}
	return ref, nil
}
