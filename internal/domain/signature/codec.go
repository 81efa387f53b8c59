// Package signature implements the token scheme shared with the payment gateway.
//
// A token is the hex SHA-256 digest of the concatenated scalar values of a flat
// payload, taken in byte order of their field names, with the shared secret
// inserted under the Password field. Nested objects and arrays never take part.
package signature

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"
)

// Reserved field names
const (
	PasswordField = "Password"
	TokenField    = "Token"
)

// Value is a field value as seen by the digest: either a scalar rendered to text,
// or excluded (absent optional field, object, array).
type Value struct {
	text   string
	scalar bool
}

// String returns a scalar string value
func String(s string) Value {
	return Value{text: s, scalar: true}
}

// Int returns a scalar integer value in decimal form
func Int(i int64) Value {
	return Value{text: strconv.FormatInt(i, 10), scalar: true}
}

// Bool returns a scalar boolean value rendered as true/false
func Bool(b bool) Value {
	return Value{text: strconv.FormatBool(b), scalar: true}
}

// Excluded returns a value that never contributes to the digest
func Excluded() Value {
	return Value{}
}

// OptionalString returns String(*s), or Excluded when s is nil
func OptionalString(s *string) Value {
	if s == nil {
		return Excluded()
	}
	return String(*s)
}

// OptionalInt returns Int(*i), or Excluded when i is nil
func OptionalInt(i *int64) Value {
	if i == nil {
		return Excluded()
	}
	return Int(*i)
}

// OptionalBool returns Bool(*b), or Excluded when b is nil
func OptionalBool(b *bool) Value {
	if b == nil {
		return Excluded()
	}
	return Bool(*b)
}

// IsScalar reports whether the value takes part in the digest
func (v Value) IsScalar() bool {
	return v.scalar
}

// Text returns the rendered scalar, empty for excluded values
func (v Value) Text() string {
	return v.text
}

// Field is a single named entry of a payload
type Field struct {
	Name  string
	Value Value
}

// Payload is an ordered list of fields. The order is irrelevant to the token.
type Payload []Field

// Add appends a field and returns the extended payload
func (p Payload) Add(name string, value Value) Payload {
	return append(p, Field{Name: name, Value: value})
}

// Get returns the last value stored under name
func (p Payload) Get(name string) (Value, bool) {
	for i := len(p) - 1; i >= 0; i-- {
		if p[i].Name == name {
			return p[i].Value, true
		}
	}
	return Value{}, false
}

// Token derives the token for payload under secret. Any Token field in the
// payload is ignored and any Password field is replaced by secret.
func Token(payload Payload, secret string) string {
	sum := sha256.Sum256([]byte(digestInput(payload, secret)))
	return hex.EncodeToString(sum[:])
}

// Sign returns a copy of payload with the Token field set, and the token itself
func Sign(payload Payload, secret string) (Payload, string) {
	token := Token(payload, secret)

	signed := make(Payload, 0, len(payload)+1)
	for _, f := range payload {
		if f.Name != TokenField {
			signed = append(signed, f)
		}
	}
	return signed.Add(TokenField, String(token)), token
}

// Verify recomputes the token of payload with its Token field neutralized and
// compares it to received in constant time.
func Verify(payload Payload, received, secret string) bool {
	expected := Token(payload, secret)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(received)) == 1
}

func digestInput(payload Payload, secret string) string {
	values := make(map[string]Value, len(payload)+1)
	for _, f := range payload {
		if f.Name == TokenField {
			continue
		}
		values[f.Name] = f.Value
	}
	values[PasswordField] = String(secret)

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		if v := values[name]; v.scalar {
			b.WriteString(v.text)
		}
	}
	return b.String()
}
