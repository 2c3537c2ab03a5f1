package tracelog

import (
	"strings"
	"time"
)

// Event records the evaluation of one directive during a parse.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the directive finished (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID uniquely identifies one parse invocation (UUID).
	SessionID string `cbor:"2,keyasint"`

	// Struct is the definition name, when known.
	Struct string `cbor:"3,keyasint,omitempty"`

	// Field is the directive name; empty for padding directives.
	Field string `cbor:"4,keyasint,omitempty"`

	// Index is the directive's position in the definition, counting
	// padding directives.
	Index int `cbor:"5,keyasint"`

	// Offset is the byte offset of the directive's window from the
	// start of the stream, i.e. the sum of all prior widths.
	Offset int `cbor:"6,keyasint"`

	// Width is the directive's window size in bytes.
	Width int `cbor:"7,keyasint"`

	// Outcome classifies the directive result.
	Outcome Outcome `cbor:"8,keyasint"`

	// Bytes is the pulled window. Empty for OutcomeSourceError, where
	// no complete window was available.
	Bytes []byte `cbor:"9,keyasint,omitempty"`

	// Error is the failure message for non-matched outcomes.
	Error string `cbor:"10,keyasint,omitempty"`
}

// Outcome classifies how a directive ended.
type Outcome uint8

const (
	// OutcomeMatched means the window satisfied the pattern.
	OutcomeMatched Outcome = 0
	// OutcomeMismatch means a literal or nibble constraint failed.
	OutcomeMismatch Outcome = 1
	// OutcomeSourceError means the reader could not supply the window.
	OutcomeSourceError Outcome = 2
	// OutcomeConvertError means the field's conversion function failed.
	OutcomeConvertError Outcome = 3
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeMatched:
		return "MATCH"
	case OutcomeMismatch:
		return "MISMATCH"
	case OutcomeSourceError:
		return "SOURCE_ERROR"
	case OutcomeConvertError:
		return "CONVERT_ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseOutcome parses an outcome name as accepted by the CLI's trace
// filter flags. Matching is case-insensitive.
func ParseOutcome(s string) (Outcome, bool) {
	switch strings.ToLower(s) {
	case "match", "matched":
		return OutcomeMatched, true
	case "mismatch":
		return OutcomeMismatch, true
	case "source_error", "source-error":
		return OutcomeSourceError, true
	case "convert_error", "convert-error":
		return OutcomeConvertError, true
	default:
		return 0, false
	}
}
