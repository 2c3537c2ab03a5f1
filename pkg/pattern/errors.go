package pattern

import "fmt"

// SyntaxError reports a malformed pattern. It always indicates a bug in
// the pattern definition, not in the input being matched.
type SyntaxError struct {
	// Input is the pattern text as given.
	Input string

	// Pos is the byte index in Input where the error was detected.
	// For errors only detectable at the end of the text, such as a
	// dangling nibble, Pos is len(Input).
	Pos int

	// Msg describes the problem.
	Msg string
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %s (at index %d)", e.Input, e.Msg, e.Pos)
}
