package hexstruct

import (
	"github.com/hexmagic/hexmagic-go/pkg/pattern"
)

// ConvertFunc transforms a captured byte window into a field value.
// The slice is owned by the callee: it is a fresh copy per parse and may
// be retained. Errors returned here propagate to the Parse caller
// unwrapped, preserving the conversion's own error semantics. Whether
// the window width matches what the conversion expects is part of the
// caller's contract; the matcher does not check it.
type ConvertFunc func([]byte) (any, error)

// Field is one directive of a multi-field parse. Directives are value
// types and immutable once handed to NewDef.
type Field struct {
	// Name is the result key. Anonymous directives (empty name) check
	// and discard their bytes without contributing to the result.
	Name string

	// Pattern is the compiled byte pattern for this directive. Its
	// width determines exactly how many bytes the directive consumes.
	Pattern pattern.Pattern

	// Convert, if set, produces the field value from the captured
	// window. When nil on a named directive, the raw bytes are the
	// value ([]byte).
	Convert ConvertFunc
}

// Skip returns an anonymous directive: the pattern is checked and the
// bytes are discarded. Used for padding and fixed framing bytes.
func Skip(p pattern.Pattern) Field {
	return Field{Pattern: p}
}

// Capture returns a named directive whose value is the raw captured
// window as []byte. Wildcard positions are skipped for comparison only;
// their bytes are still part of the captured window.
func Capture(name string, p pattern.Pattern) Field {
	return Field{Name: name, Pattern: p}
}

// CaptureFunc returns a named directive whose value is produced by fn
// from the captured window.
func CaptureFunc(name string, p pattern.Pattern, fn ConvertFunc) Field {
	return Field{Name: name, Pattern: p, Convert: fn}
}
