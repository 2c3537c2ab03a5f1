package pattern

import (
	"errors"
	"testing"
)

func TestCompileLiteral(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []byte
	}{
		{name: "plain pairs", input: "01020304", want: []byte{1, 2, 3, 4}},
		{name: "upper case", input: "DEADAF", want: []byte{0xDE, 0xAD, 0xAF}},
		{name: "lower case", input: "deadaf", want: []byte{0xDE, 0xAD, 0xAF}},
		{name: "mixed case", input: "aA aa aA Aa aa", want: []byte{0xAA, 0xAA, 0xAA, 0xAA, 0xAA}},
		{name: "spaced pairs", input: "DEAD AF", want: []byte{0xDE, 0xAD, 0xAF}},
		{name: "split across whitespace", input: "D\tE AD\r\nAF", want: []byte{0xDE, 0xAD, 0xAF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Compile(tt.input)
			if err != nil {
				t.Fatalf("Compile(%q) failed: %v", tt.input, err)
			}
			segs := p.Segments()
			if len(segs) != 1 {
				t.Fatalf("expected one coalesced segment, got %d", len(segs))
			}
			if segs[0].Kind != KindLiteral {
				t.Fatalf("expected literal segment, got %v", segs[0].Kind)
			}
			if string(segs[0].Lit) != string(tt.want) {
				t.Errorf("literal bytes: got %02X, want %02X", segs[0].Lit, tt.want)
			}
			if p.Len() != len(tt.want) {
				t.Errorf("Len: got %d, want %d", p.Len(), len(tt.want))
			}
		})
	}
}

func TestCompileWildcard(t *testing.T) {
	p, err := Compile("____ __")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	segs := p.Segments()
	if len(segs) != 1 {
		t.Fatalf("expected one coalesced segment, got %d", len(segs))
	}
	if segs[0].Kind != KindWildcard || segs[0].Count != 3 {
		t.Errorf("got %+v, want Wildcard(3)", segs[0])
	}
	if p.Len() != 3 {
		t.Errorf("Len: got %d, want 3", p.Len())
	}
}

func TestCompileMixed(t *testing.T) {
	tests := []struct {
		name  string
		input string
		value byte
		mask  byte
	}{
		{name: "high nibble known", input: "A_", value: 0xA0, mask: MaskHigh},
		{name: "low nibble known", input: "_F", value: 0x0F, mask: MaskLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Compile(tt.input)
			if err != nil {
				t.Fatalf("Compile(%q) failed: %v", tt.input, err)
			}
			segs := p.Segments()
			if len(segs) != 1 {
				t.Fatalf("expected one segment, got %d", len(segs))
			}
			s := segs[0]
			if s.Kind != KindMixed {
				t.Fatalf("expected mixed segment, got %v", s.Kind)
			}
			if s.Value != tt.value || s.Mask != tt.mask {
				t.Errorf("got value=%02X mask=%02X, want value=%02X mask=%02X",
					s.Value, s.Mask, tt.value, tt.mask)
			}
		})
	}
}

func TestCompileSegmentRuns(t *testing.T) {
	// Literal run, wildcard run, mixed byte, literal again.
	p, err := Compile("AABB ____ C_ DD")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	segs := p.Segments()
	if len(segs) != 4 {
		t.Fatalf("expected 4 segments, got %d: %v", len(segs), p)
	}

	wantKinds := []Kind{KindLiteral, KindWildcard, KindMixed, KindLiteral}
	for i, k := range wantKinds {
		if segs[i].Kind != k {
			t.Errorf("segment %d: got kind %v, want %v", i, segs[i].Kind, k)
		}
	}
	if segs[1].Count != 2 {
		t.Errorf("wildcard run: got %d, want 2", segs[1].Count)
	}
	if p.Len() != 6 {
		t.Errorf("Len: got %d, want 6", p.Len())
	}
}

func TestCompileEmpty(t *testing.T) {
	for _, input := range []string{"", "   ", "\t\r\n"} {
		p, err := Compile(input)
		if err != nil {
			t.Fatalf("Compile(%q) failed: %v", input, err)
		}
		if p.Len() != 0 || len(p.Segments()) != 0 {
			t.Errorf("Compile(%q): expected empty pattern, got %v", input, p)
		}
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		pos   int
	}{
		{name: "odd length", input: "ABC", pos: 3},
		{name: "single nibble", input: "A", pos: 1},
		{name: "dangling underscore", input: "AB_", pos: 3},
		{name: "odd with separators", input: "AB C", pos: 4},
		{name: "invalid character", input: "AB-CD", pos: 2},
		{name: "non hex letter", input: "GG", pos: 0},
		{name: "dot separator rejected", input: "AA.BB", pos: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.input)
			if err == nil {
				t.Fatalf("Compile(%q) succeeded, want syntax error", tt.input)
			}
			var serr *SyntaxError
			if !errors.As(err, &serr) {
				t.Fatalf("Compile(%q): got %T, want *SyntaxError", tt.input, err)
			}
			if serr.Pos != tt.pos {
				t.Errorf("Compile(%q): error at %d, want %d", tt.input, serr.Pos, tt.pos)
			}
			if serr.Input != tt.input {
				t.Errorf("Compile(%q): error input %q", tt.input, serr.Input)
			}
		})
	}
}

func TestTokens(t *testing.T) {
	p := Tokens(Lit(0x01), Lit(0x02), Any, Any, Lit(0xFF))
	segs := p.Segments()
	if len(segs) != 3 {
		t.Fatalf("expected 3 segments, got %d: %v", len(segs), p)
	}
	if segs[0].Kind != KindLiteral || string(segs[0].Lit) != string([]byte{1, 2}) {
		t.Errorf("segment 0: got %+v", segs[0])
	}
	if segs[1].Kind != KindWildcard || segs[1].Count != 2 {
		t.Errorf("segment 1: got %+v", segs[1])
	}
	if segs[2].Kind != KindLiteral || string(segs[2].Lit) != string([]byte{0xFF}) {
		t.Errorf("segment 2: got %+v", segs[2])
	}
	if p.Len() != 5 {
		t.Errorf("Len: got %d, want 5", p.Len())
	}
}

func TestTokensEmpty(t *testing.T) {
	p := Tokens()
	if p.Len() != 0 || len(p.Segments()) != 0 {
		t.Errorf("expected empty pattern, got %v", p)
	}
}

func TestText(t *testing.T) {
	p := Text("HEX")
	segs := p.Segments()
	if len(segs) != 1 || segs[0].Kind != KindLiteral {
		t.Fatalf("expected single literal segment, got %v", p)
	}
	if string(segs[0].Lit) != "HEX" {
		t.Errorf("got %02X, want bytes of %q", segs[0].Lit, "HEX")
	}
}

func TestPatternString(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "01020304", want: "[01, 02, 03, 04]"},
		{input: "AABB ____", want: "[AA, BB, __, __]"},
		{input: "A_ _B", want: "[A_, _B]"},
		{input: "", want: "[]"},
	}

	for _, tt := range tests {
		p := MustCompile(tt.input)
		if got := p.String(); got != tt.want {
			t.Errorf("Compile(%q).String(): got %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestMixedMatchByte(t *testing.T) {
	p := MustCompile("A_")
	s := p.Segments()[0]

	if !s.MatchByte(0xA0) || !s.MatchByte(0xAF) {
		t.Errorf("A_ should match 0xA0 and 0xAF")
	}
	if s.MatchByte(0xB0) {
		t.Errorf("A_ should not match 0xB0")
	}
}

func TestMustCompilePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("MustCompile on malformed input did not panic")
		}
	}()
	MustCompile("ABC")
}
