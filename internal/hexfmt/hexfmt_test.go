package hexfmt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hexmagic/hexmagic-go/pkg/hexstruct"
	"github.com/hexmagic/hexmagic-go/pkg/pattern"
)

func TestFormatValue(t *testing.T) {
	f := &Formatter{}

	tests := []struct {
		name     string
		value    any
		expected string
	}{
		{
			name:     "nil",
			value:    nil,
			expected: "null",
		},
		{
			name:     "string quoted",
			value:    "HEX",
			expected: `"HEX"`,
		},
		{
			name:     "bytes as hex",
			value:    []byte{0xAA, 0x0B},
			expected: "0xAA0B",
		},
		{
			name:     "uint32",
			value:    uint32(0xDDCCBBAA),
			expected: "3721182122",
		},
		{
			name:     "negative int16",
			value:    int16(-2),
			expected: "-2",
		},
		{
			name:     "float64",
			value:    float64(1.5),
			expected: "1.5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := f.FormatValue(tt.value)
			if result != tt.expected {
				t.Errorf("FormatValue(%v) = %q, want %q", tt.value, result, tt.expected)
			}
		})
	}
}

func TestFormatBytes(t *testing.T) {
	f := NewFormatter()

	tests := []struct {
		name     string
		data     []byte
		expected string
	}{
		{
			name:     "empty",
			data:     nil,
			expected: "",
		},
		{
			name:     "single group",
			data:     []byte{0x01, 0x02, 0xAB},
			expected: "01 02 AB",
		},
		{
			name:     "group break",
			data:     []byte{0x01, 0x02, 0x03, 0x04, 0x05},
			expected: "01 02 03 04  05",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := f.FormatBytes(tt.data)
			if result != tt.expected {
				t.Errorf("FormatBytes(% X) = %q, want %q", tt.data, result, tt.expected)
			}
		})
	}
}

func TestIndent(t *testing.T) {
	f := NewFormatter()

	if got := f.Indent(0, "x"); got != "x" {
		t.Errorf("Indent(0) = %q", got)
	}
	if got := f.Indent(2, "x"); got != "    x" {
		t.Errorf("Indent(2) = %q", got)
	}

	zero := &Formatter{}
	if got := zero.Indent(1, "x"); got != "  x" {
		t.Errorf("zero-value Indent(1) = %q", got)
	}
}

func TestFormatResult(t *testing.T) {
	def := hexstruct.MustDef("header",
		hexstruct.Capture("id", pattern.MustCompile("__")),
		hexstruct.CaptureFunc("count", pattern.MustCompile("____"), hexstruct.U16LE),
	)
	res, err := def.Parse(bytes.NewReader([]byte{0x7E, 0x10, 0x00}))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	lines := NewFormatter().FormatResult(res)
	expected := []string{
		"id    = 0x7E",
		"count = 16",
	}
	if len(lines) != len(expected) {
		t.Fatalf("FormatResult() returned %d lines, want %d", len(lines), len(expected))
	}
	for i, want := range expected {
		if lines[i] != want {
			t.Errorf("line %d = %q, want %q", i, lines[i], want)
		}
	}
}

func TestDescribeDef(t *testing.T) {
	def := hexstruct.MustDef("frame",
		hexstruct.Skip(pattern.MustCompile("7E")),
		hexstruct.Capture("flags", pattern.MustCompile("A_")),
	)

	lines := NewFormatter().DescribeDef(def)
	out := strings.Join(lines, "\n")

	for _, want := range []string{
		"struct frame (2 bytes)",
		"[0] (padding)",
		"literal  1 byte(s): 7E",
		"[1] flags",
		"mixed    1 byte: A_",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("DescribeDef() output missing %q:\n%s", want, out)
		}
	}
}
