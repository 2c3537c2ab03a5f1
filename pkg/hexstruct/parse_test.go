package hexstruct

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/hexmagic/hexmagic-go/pkg/pattern"
)

func TestParseLiteralRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		hex   string
		input []byte
	}{
		{name: "single byte", hex: "7D", input: []byte{0x7D}},
		{name: "word", hex: "01020304", input: []byte{1, 2, 3, 4}},
		{name: "high bytes", hex: "DEADBEEF", input: []byte{0xDE, 0xAD, 0xBE, 0xEF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Parse(bytes.NewReader(tt.input),
				Capture("v", pattern.MustCompile(tt.hex)))
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			got, ok := res.Bytes("v")
			if !ok {
				t.Fatalf("field v missing from result")
			}
			if !bytes.Equal(got, tt.input) {
				t.Errorf("captured %02X, want %02X", got, tt.input)
			}
		})
	}
}

func TestParseWildcardPermissive(t *testing.T) {
	p := pattern.MustCompile("____ ____")

	for _, input := range [][]byte{
		{0, 0, 0, 0},
		{0xFF, 0xFF, 0xFF, 0xFF},
		{0xDE, 0xAD, 0xBE, 0xEF},
	} {
		res, err := Parse(bytes.NewReader(input), Capture("v", p))
		if err != nil {
			t.Fatalf("Parse(%02X) failed: %v", input, err)
		}
		got, _ := res.Bytes("v")
		if len(got) != 4 {
			t.Errorf("Parse(%02X): captured %d bytes, want 4", input, len(got))
		}
		if !bytes.Equal(got, input) {
			t.Errorf("Parse(%02X): captured %02X", input, got)
		}
	}
}

func TestParseMismatchPrecision(t *testing.T) {
	_, err := Parse(bytes.NewReader([]byte{0x01, 0x03}),
		Capture("v", pattern.Tokens(pattern.Lit(0x01), pattern.Lit(0x02))))
	if err == nil {
		t.Fatal("Parse succeeded, want mismatch")
	}

	var merr *MismatchError
	if !errors.As(err, &merr) {
		t.Fatalf("got %T, want *MismatchError", err)
	}
	if merr.Offset != 1 {
		t.Errorf("Offset: got %d, want 1", merr.Offset)
	}
	if merr.Expected != "02" {
		t.Errorf("Expected: got %q, want %q", merr.Expected, "02")
	}
	if merr.Actual != 0x03 {
		t.Errorf("Actual: got %02X, want 03", merr.Actual)
	}
	if merr.Field != "v" {
		t.Errorf("Field: got %q, want %q", merr.Field, "v")
	}
}

func TestParseNibbleGranularity(t *testing.T) {
	p := pattern.MustCompile("A_")

	for _, b := range []byte{0xA0, 0xAF} {
		if _, err := Parse(bytes.NewReader([]byte{b}), Skip(p)); err != nil {
			t.Errorf("A_ should match %02X: %v", b, err)
		}
	}

	_, err := Parse(bytes.NewReader([]byte{0xB0}), Skip(p))
	var merr *MismatchError
	if !errors.As(err, &merr) {
		t.Fatalf("A_ vs B0: got %v, want *MismatchError", err)
	}
	if merr.Offset != 0 || merr.Expected != "A_" || merr.Actual != 0xB0 {
		t.Errorf("A_ vs B0: got offset=%d expected=%q actual=%02X",
			merr.Offset, merr.Expected, merr.Actual)
	}
}

func TestParseFieldOrdering(t *testing.T) {
	// Layout: pad(3) | a(2) | pad(1) | b(1)
	input := []byte{0xFF, 0xFF, 0xFF, 0x11, 0x22, 0x00, 0x33}

	res, err := Parse(bytes.NewReader(input),
		Skip(pattern.MustCompile("______")),
		Capture("a", pattern.MustCompile("____")),
		Skip(pattern.MustCompile("__")),
		Capture("b", pattern.MustCompile("__")),
	)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	names := res.Names()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Fatalf("Names: got %v, want [a b]", names)
	}

	a, _ := res.Bytes("a")
	if !bytes.Equal(a, []byte{0x11, 0x22}) {
		t.Errorf("a: got %02X, want 1122", a)
	}
	b, _ := res.Bytes("b")
	if !bytes.Equal(b, []byte{0x33}) {
		t.Errorf("b: got %02X, want 33", b)
	}
}

// trippedReader fails the test if more than limit bytes are pulled.
type trippedReader struct {
	t     *testing.T
	r     io.Reader
	limit int
}

func (tr *trippedReader) Read(p []byte) (int, error) {
	if len(p) > tr.limit {
		tr.t.Fatalf("read of %d bytes past the allowed %d", len(p), tr.limit)
	}
	tr.limit -= len(p)
	return tr.r.Read(p)
}

func TestParseFirstErrorShortCircuit(t *testing.T) {
	// First directive (2 bytes) mismatches; the second directive's
	// bytes must never be pulled.
	src := &trippedReader{
		t:     t,
		r:     bytes.NewReader([]byte{0x01, 0xFF, 0xAA, 0xBB}),
		limit: 2,
	}

	_, err := Parse(src,
		Skip(pattern.MustCompile("0102")),
		Capture("v", pattern.MustCompile("AABB")),
	)
	var merr *MismatchError
	if !errors.As(err, &merr) {
		t.Fatalf("got %v, want *MismatchError", err)
	}
}

func TestParseSourceErrors(t *testing.T) {
	p := pattern.MustCompile("01020304")

	// Nothing at all: io.EOF, untouched.
	_, err := Parse(bytes.NewReader(nil), Capture("v", p))
	if !errors.Is(err, io.EOF) {
		t.Errorf("empty reader: got %v, want io.EOF", err)
	}

	// Partial window: io.ErrUnexpectedEOF, untouched.
	_, err = Parse(bytes.NewReader([]byte{0x01, 0x02}), Capture("v", p))
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("short reader: got %v, want io.ErrUnexpectedEOF", err)
	}
}

func TestParseConvertErrorPassthrough(t *testing.T) {
	errBad := errors.New("bad checksum")
	failing := func([]byte) (any, error) { return nil, errBad }

	_, err := Parse(bytes.NewReader([]byte{0x00}),
		CaptureFunc("v", pattern.MustCompile("__"), failing))
	if err != errBad {
		t.Errorf("conversion error was not passed through unmodified: %v", err)
	}
}

func TestParseConvert(t *testing.T) {
	res, err := Parse(bytes.NewReader([]byte{0xAA, 0xBB, 0xCC, 0xDD}),
		CaptureFunc("v", pattern.MustCompile("AABB ____"), U32LE))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	v, _ := res.Get("v")
	if v != uint32(0xDDCCBBAA) {
		t.Errorf("got %#v, want 0xDDCCBBAA", v)
	}
}

func TestParseMagicHeader(t *testing.T) {
	// ASCII magic, version byte, two raw fields, fixed padding.
	input := []byte{
		0x48, 0x45, 0x58, 0x00, 0x01, 0x02, 0x00, 0xAA, 0xBB, 0xCC, 0xDD,
	}

	def := MustDef("data",
		Skip(pattern.Text("HEX")),
		Skip(pattern.Tokens(pattern.Lit(0))),
		Capture("a", pattern.Tokens(pattern.Lit(0x01), pattern.Any)),
		Skip(pattern.MustCompile("00")),
		CaptureFunc("b", pattern.MustCompile("AABB ____"), U32LE),
	)

	res, err := def.Parse(bytes.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	a, _ := res.Bytes("a")
	if !bytes.Equal(a, []byte{0x01, 0x02}) {
		t.Errorf("a: got %02X, want 0102", a)
	}
	b, _ := res.Get("b")
	if b != uint32(0xDDCCBBAA) {
		t.Errorf("b: got %#v, want 0xDDCCBBAA", b)
	}
}

func TestParseZeroWidth(t *testing.T) {
	// The empty pattern consumes nothing and always matches.
	res, err := Parse(bytes.NewReader(nil),
		Capture("nothing", pattern.Pattern{}))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	v, ok := res.Bytes("nothing")
	if !ok || len(v) != 0 {
		t.Errorf("got %v, want empty capture", v)
	}
}

func TestDefReuse(t *testing.T) {
	def := MustDef("reused",
		Skip(pattern.MustCompile("7E")),
		CaptureFunc("n", pattern.MustCompile("____"), U16LE),
	)

	for i, input := range [][]byte{
		{0x7E, 0x01, 0x00},
		{0x7E, 0xFF, 0xFF},
	} {
		res, err := def.Parse(bytes.NewReader(input))
		if err != nil {
			t.Fatalf("parse %d failed: %v", i, err)
		}
		want := uint16(input[1]) | uint16(input[2])<<8
		if v, _ := res.Get("n"); v != want {
			t.Errorf("parse %d: got %#v, want %#x", i, v, want)
		}
	}
}

func TestNewDefDuplicateName(t *testing.T) {
	_, err := NewDef("dup",
		Capture("a", pattern.MustCompile("__")),
		Capture("a", pattern.MustCompile("__")),
	)
	if err == nil {
		t.Fatal("duplicate field name accepted")
	}
}

func TestMismatchErrorMessage(t *testing.T) {
	_, err := Parse(bytes.NewReader([]byte{0x01, 0x03}),
		Capture("a", pattern.MustCompile("0102")))

	msg := err.Error()
	for _, want := range []string{
		`field "a"`,
		"expected `[01, 02]`",
		"got `[01, 03]`",
		"offset 1",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("error message %q missing %q", msg, want)
		}
	}
}
