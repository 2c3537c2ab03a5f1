// Package hexfmt renders patterns, byte windows, and decoded results
// for command line output.
package hexfmt

import (
	"fmt"
	"strings"

	"github.com/hexmagic/hexmagic-go/pkg/hexstruct"
	"github.com/hexmagic/hexmagic-go/pkg/pattern"
)

// Formatter formats command output.
type Formatter struct {
	// GroupSize is the number of bytes per group in byte dumps
	GroupSize int

	// IndentWidth is the number of spaces per indent level
	IndentWidth int
}

// NewFormatter creates a new Formatter with default settings.
func NewFormatter() *Formatter {
	return &Formatter{
		GroupSize:   4,
		IndentWidth: 2,
	}
}

// Indent returns the content with indentation.
func (f *Formatter) Indent(depth int, content string) string {
	width := f.IndentWidth
	if width == 0 {
		width = 2
	}
	indent := strings.Repeat(" ", depth*width)
	return indent + content
}

// FormatValue formats a decoded field value for display.
func (f *Formatter) FormatValue(value any) string {
	if value == nil {
		return "null"
	}

	switch v := value.(type) {
	case string:
		return fmt.Sprintf("%q", v)

	case []byte:
		return "0x" + strings.ToUpper(fmt.Sprintf("%x", v))

	case float32:
		return fmt.Sprintf("%g", v)

	case float64:
		return fmt.Sprintf("%g", v)

	default:
		return fmt.Sprintf("%v", v)
	}
}

// FormatBytes formats a byte window as grouped uppercase hex pairs.
func (f *Formatter) FormatBytes(data []byte) string {
	group := f.GroupSize
	if group == 0 {
		group = 4
	}

	var b strings.Builder
	for i, v := range data {
		if i > 0 {
			if i%group == 0 {
				b.WriteString("  ")
			} else {
				b.WriteByte(' ')
			}
		}
		fmt.Fprintf(&b, "%02X", v)
	}
	return b.String()
}

// FormatResult renders the fields of a decode result, one line each.
func (f *Formatter) FormatResult(res *hexstruct.Result) []string {
	names := res.Names()
	lines := make([]string, 0, len(names))

	width := 0
	for _, name := range names {
		if len(name) > width {
			width = len(name)
		}
	}
	for _, name := range names {
		value, _ := res.Get(name)
		lines = append(lines, fmt.Sprintf("%-*s = %s", width, name, f.FormatValue(value)))
	}
	return lines
}

// DescribeSegment returns a one-line description of a compiled segment.
func (f *Formatter) DescribeSegment(s pattern.Segment) string {
	switch s.Kind {
	case pattern.KindLiteral:
		return fmt.Sprintf("literal  %d byte(s): %s", s.Width(), f.FormatBytes(s.Lit))
	case pattern.KindWildcard:
		return fmt.Sprintf("wildcard %d byte(s)", s.Count)
	case pattern.KindMixed:
		return fmt.Sprintf("mixed    1 byte: %s", s.String())
	default:
		return fmt.Sprintf("unknown segment kind %d", s.Kind)
	}
}

// DescribePattern renders a compiled pattern: its canonical form and
// width, then one line per segment.
func (f *Formatter) DescribePattern(p pattern.Pattern) []string {
	lines := []string{
		fmt.Sprintf("%s (%d bytes)", p.String(), p.Len()),
	}
	for _, seg := range p.Segments() {
		lines = append(lines, f.Indent(1, f.DescribeSegment(seg)))
	}
	return lines
}

// DescribeDef renders a parse definition: its width, then one line per
// field with the field's pattern segments indented beneath it.
func (f *Formatter) DescribeDef(def *hexstruct.Def) []string {
	lines := []string{
		fmt.Sprintf("struct %s (%d bytes)", def.Name(), def.Width()),
	}
	for i, field := range def.Fields() {
		label := "(padding)"
		if field.Name != "" {
			label = field.Name
		}
		lines = append(lines, f.Indent(1, fmt.Sprintf("[%d] %s  %d byte(s)", i, label, field.Pattern.Len())))
		for _, seg := range field.Pattern.Segments() {
			lines = append(lines, f.Indent(2, f.DescribeSegment(seg)))
		}
	}
	return lines
}
