package pattern

import "fmt"

// Compile parses a hex-string pattern into a Pattern.
//
// The string is read two characters at a time after stripping whitespace
// (space, tab, carriage return, newline). Each pair forms one byte:
//
//   - two hex digits: a literal byte ("7D")
//   - two underscores: a fully wildcard byte ("__")
//   - one hex digit and one underscore: a byte with the known nibble
//     checked and the other nibble ignored ("A_" or "_F")
//
// Any other character is a syntax error, as is an odd number of
// significant characters. The empty string compiles to the empty
// pattern.
func Compile(s string) (Pattern, error) {
	var b builder

	// pending holds the first character of the current pair.
	var pending byte
	havePending := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			continue
		case c == '_' || isHexDigit(c):
			if !havePending {
				pending, havePending = c, true
				continue
			}
			havePending = false
			compilePair(&b, pending, c)
		default:
			return Pattern{}, &SyntaxError{
				Input: s,
				Pos:   i,
				Msg:   fmt.Sprintf("invalid character %q", c),
			}
		}
	}

	if havePending {
		return Pattern{}, &SyntaxError{
			Input: s,
			Pos:   len(s),
			Msg:   fmt.Sprintf("odd number of pattern characters: %q has no partner", pending),
		}
	}

	return b.pattern(), nil
}

// MustCompile is like Compile but panics on error. Intended for pattern
// literals in package-level variables and tests, mirroring
// regexp.MustCompile.
func MustCompile(s string) Pattern {
	p, err := Compile(s)
	if err != nil {
		panic(err)
	}
	return p
}

func compilePair(b *builder, hi, lo byte) {
	switch {
	case hi == '_' && lo == '_':
		b.wildcard()
	case hi == '_':
		b.mixed(hexVal(lo), MaskLow)
	case lo == '_':
		b.mixed(hexVal(hi)<<4, MaskHigh)
	default:
		b.literal(hexVal(hi)<<4 | hexVal(lo))
	}
}

func isHexDigit(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

func hexVal(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
