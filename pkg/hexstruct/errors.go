package hexstruct

import (
	"fmt"
	"strings"
)

// MismatchError reports the first content divergence between a pattern
// and the bytes pulled for its directive. Reader errors and conversion
// errors are not wrapped in MismatchError; they propagate as-is.
type MismatchError struct {
	// Struct is the definition name, when parsed through a named Def.
	Struct string

	// Field is the directive name; empty for anonymous directives.
	Field string

	// Offset is the byte offset of the mismatch, relative to the start
	// of the directive's window.
	Offset int

	// Expected describes the constraint at Offset: a full byte such as
	// "02", or a nibble-masked byte such as "A_".
	Expected string

	// Actual is the byte pulled from the reader at Offset.
	Actual byte

	// Pattern is the directive's pattern in canonical form.
	Pattern string

	// Window is the directive's full pulled byte window.
	Window []byte
}

// Error renders the mismatch with the pattern, the pulled bytes, and
// the position of the first divergence.
func (e *MismatchError) Error() string {
	var sb strings.Builder
	sb.WriteString("hexstruct: ")
	if e.Struct != "" {
		fmt.Fprintf(&sb, "%s: ", e.Struct)
	}
	if e.Field != "" {
		fmt.Fprintf(&sb, "field %q: ", e.Field)
	} else {
		sb.WriteString("padding: ")
	}
	fmt.Fprintf(&sb, "expected `%s`, got `%s`: offset %d: want %s, have %02X",
		e.Pattern, formatWindow(e.Window), e.Offset, e.Expected, e.Actual)
	return sb.String()
}

// formatWindow renders pulled bytes the way patterns render, e.g.
// "[01, 03]".
func formatWindow(w []byte) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, b := range w {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%02X", b)
	}
	sb.WriteByte(']')
	return sb.String()
}
