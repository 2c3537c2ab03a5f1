package hexstruct

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/hexmagic/hexmagic-go/pkg/pattern"
	"github.com/hexmagic/hexmagic-go/pkg/tracelog"
)

// Def is a compiled, reusable parse definition: an ordered directive
// list with precomputed widths. A Def is immutable after NewDef and
// safe for concurrent Parse calls against independent readers.
type Def struct {
	name   string
	fields []Field
	width  int
	max    int
	named  int
}

// NewDef builds a definition from the given directives. The name
// identifies the definition in errors and trace events; it may be
// empty. Duplicate non-empty field names are a definition bug and are
// rejected.
func NewDef(name string, fields ...Field) (*Def, error) {
	d := &Def{
		name:   name,
		fields: make([]Field, len(fields)),
	}
	copy(d.fields, fields)

	seen := make(map[string]struct{}, len(fields))
	for _, f := range d.fields {
		if f.Name != "" {
			if _, dup := seen[f.Name]; dup {
				return nil, fmt.Errorf("hexstruct: definition %q: duplicate field %q", name, f.Name)
			}
			seen[f.Name] = struct{}{}
			d.named++
		}
		w := f.Pattern.Len()
		d.width += w
		if w > d.max {
			d.max = w
		}
	}
	return d, nil
}

// MustDef is like NewDef but panics on error. Intended for definitions
// in package-level variables and tests.
func MustDef(name string, fields ...Field) *Def {
	d, err := NewDef(name, fields...)
	if err != nil {
		panic(err)
	}
	return d
}

// Name returns the definition name.
func (d *Def) Name() string { return d.name }

// Width returns the total number of bytes one parse consumes.
func (d *Def) Width() int { return d.width }

// Fields returns the directive list. Callers must not modify the
// returned slice.
func (d *Def) Fields() []Field { return d.fields }

// Parse pulls bytes from r and evaluates each directive in declaration
// order. It returns the assembled result, or the first error: a reader
// error as-is, a *MismatchError for content failures, or a conversion
// function's error unwrapped.
func (d *Def) Parse(r io.Reader) (*Result, error) {
	return d.parse(r, nil, "")
}

// ParseTraced is Parse with one trace event emitted per directive. Each
// call is a new parse session with a fresh session ID. A nil logger
// behaves like Parse.
func (d *Def) ParseTraced(r io.Reader, logger tracelog.Logger) (*Result, error) {
	if logger == nil {
		return d.parse(r, nil, "")
	}
	return d.parse(r, logger, uuid.NewString())
}

// Parse evaluates the directives against r without building a reusable
// Def. Equivalent to NewDef("", fields...) followed by Def.Parse.
func Parse(r io.Reader, fields ...Field) (*Result, error) {
	d, err := NewDef("", fields...)
	if err != nil {
		return nil, err
	}
	return d.Parse(r)
}

func (d *Def) parse(r io.Reader, logger tracelog.Logger, session string) (*Result, error) {
	res := newResult(d.named)

	// Single scratch buffer sized for the widest directive, reused
	// across directives. Captured windows are copied out of it.
	scratch := make([]byte, d.max)

	offset := 0
	for i, f := range d.fields {
		width := f.Pattern.Len()
		window := scratch[:width]

		if _, err := io.ReadFull(r, window); err != nil {
			// The reader's own error is the terminal result; no
			// partial directive outcome is reported.
			d.trace(logger, session, i, offset, f, tracelog.OutcomeSourceError, nil, err)
			return nil, err
		}

		if merr := matchWindow(d.name, f, window); merr != nil {
			d.trace(logger, session, i, offset, f, tracelog.OutcomeMismatch, window, merr)
			return nil, merr
		}

		if f.Name != "" {
			captured := make([]byte, width)
			copy(captured, window)

			if f.Convert != nil {
				v, err := f.Convert(captured)
				if err != nil {
					// Conversion errors keep the caller's own
					// error semantics: no wrapping.
					d.trace(logger, session, i, offset, f, tracelog.OutcomeConvertError, window, err)
					return nil, err
				}
				res.set(f.Name, v)
			} else {
				res.set(f.Name, captured)
			}
		}

		d.trace(logger, session, i, offset, f, tracelog.OutcomeMatched, window, nil)
		offset += width
	}

	return res, nil
}

func (d *Def) trace(logger tracelog.Logger, session string, index, offset int, f Field, outcome tracelog.Outcome, window []byte, err error) {
	if logger == nil {
		return
	}
	ev := tracelog.Event{
		Timestamp: time.Now(),
		SessionID: session,
		Struct:    d.name,
		Field:     f.Name,
		Index:     index,
		Offset:    offset,
		Width:     f.Pattern.Len(),
		Outcome:   outcome,
	}
	if len(window) > 0 {
		ev.Bytes = make([]byte, len(window))
		copy(ev.Bytes, window)
	}
	if err != nil {
		ev.Error = err.Error()
	}
	logger.Log(ev)
}

// matchWindow walks the directive's segments against the pulled window
// in lockstep, tracking the running offset for diagnostics. Wildcard
// positions consume bytes without comparison.
func matchWindow(structName string, f Field, window []byte) *MismatchError {
	off := 0
	for _, seg := range f.Pattern.Segments() {
		switch seg.Kind {
		case pattern.KindLiteral:
			for i, want := range seg.Lit {
				if got := window[off+i]; got != want {
					return &MismatchError{
						Struct:   structName,
						Field:    f.Name,
						Offset:   off + i,
						Expected: fmt.Sprintf("%02X", want),
						Actual:   got,
						Pattern:  f.Pattern.String(),
						Window:   cloneWindow(window),
					}
				}
			}
			off += len(seg.Lit)
		case pattern.KindWildcard:
			off += seg.Count
		case pattern.KindMixed:
			if got := window[off]; !seg.MatchByte(got) {
				return &MismatchError{
					Struct:   structName,
					Field:    f.Name,
					Offset:   off,
					Expected: seg.String(),
					Actual:   got,
					Pattern:  f.Pattern.String(),
					Window:   cloneWindow(window),
				}
			}
			off++
		}
	}
	return nil
}

// cloneWindow copies the scratch-backed window so the error outlives
// the parse loop.
func cloneWindow(w []byte) []byte {
	out := make([]byte, len(w))
	copy(out, w)
	return out
}
