package pattern

import (
	"fmt"
	"strings"
)

// Kind identifies the segment variant.
type Kind uint8

const (
	// KindLiteral is a run of bytes that must match exactly.
	KindLiteral Kind = 0
	// KindWildcard is a run of bytes consumed without comparison.
	KindWildcard Kind = 1
	// KindMixed is a single byte where one nibble is literal and the
	// other is wildcard.
	KindMixed Kind = 2
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindWildcard:
		return "wildcard"
	case KindMixed:
		return "mixed"
	default:
		return "unknown"
	}
}

// Nibble masks for mixed segments.
const (
	// MaskHigh compares the high nibble; the low nibble is wildcard.
	MaskHigh byte = 0xF0
	// MaskLow compares the low nibble; the high nibble is wildcard.
	MaskLow byte = 0x0F
)

// Segment is one compiled unit of a pattern. Exactly one variant is
// populated, selected by Kind:
//
//   - KindLiteral: Lit holds the bytes to match.
//   - KindWildcard: Count holds the number of bytes to skip.
//   - KindMixed: Value holds the known nibble in position and Mask
//     selects which nibble is compared (MaskHigh or MaskLow).
//
// Segments are never mutated after compilation.
type Segment struct {
	Kind  Kind
	Lit   []byte
	Count int
	Value byte
	Mask  byte
}

// Width returns the number of input bytes the segment consumes.
func (s Segment) Width() int {
	switch s.Kind {
	case KindLiteral:
		return len(s.Lit)
	case KindWildcard:
		return s.Count
	case KindMixed:
		return 1
	default:
		return 0
	}
}

// String returns the segment in canonical per-byte form, e.g. "01, 02"
// for a literal run, "__, __" for a two-byte wildcard, or "A_" for a
// mixed byte.
func (s Segment) String() string {
	var sb strings.Builder
	writeSegment(&sb, s)
	return sb.String()
}

func writeSegment(sb *strings.Builder, s Segment) {
	switch s.Kind {
	case KindLiteral:
		for i, b := range s.Lit {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(sb, "%02X", b)
		}
	case KindWildcard:
		for i := 0; i < s.Count; i++ {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString("__")
		}
	case KindMixed:
		sb.WriteString(mixedString(s.Value, s.Mask))
	}
}

// mixedString renders a mixed byte with the wildcard nibble as "_".
func mixedString(value, mask byte) string {
	if mask == MaskHigh {
		return fmt.Sprintf("%X_", value>>4)
	}
	return fmt.Sprintf("_%X", value&0x0F)
}

// MatchByte reports whether b satisfies a mixed segment's constraint.
// For other kinds it reports whether b matches as if the segment were a
// one-byte window at offset 0.
func (s Segment) MatchByte(b byte) bool {
	switch s.Kind {
	case KindLiteral:
		return len(s.Lit) > 0 && s.Lit[0] == b
	case KindWildcard:
		return true
	case KindMixed:
		return b&s.Mask == s.Value&s.Mask
	default:
		return false
	}
}
