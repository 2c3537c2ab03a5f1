package pattern

import "strings"

// Pattern is a compiled, immutable byte pattern. The zero value is the
// empty pattern: it is zero bytes wide and matches the empty input.
type Pattern struct {
	segs  []Segment
	width int
}

// Segments returns the compiled segment list. Callers must not modify
// the returned slice or its contents.
func (p Pattern) Segments() []Segment {
	return p.segs
}

// Len returns the total byte width of the pattern. The width is fixed at
// compile time and never depends on input data.
func (p Pattern) Len() int {
	return p.width
}

// String renders the pattern in canonical form, one element per byte,
// e.g. "[48, 45, 58, __, A_]".
func (p Pattern) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	first := true
	for _, s := range p.segs {
		if s.Width() == 0 {
			continue
		}
		if !first {
			sb.WriteString(", ")
		}
		writeSegment(&sb, s)
		first = false
	}
	sb.WriteByte(']')
	return sb.String()
}

// builder accumulates per-byte classifications and coalesces adjacent
// bytes of the same kind into maximal runs. Mixed bytes always stay as
// individual segments since they need per-position checking.
type builder struct {
	segs []Segment
}

func (b *builder) literal(v byte) {
	if n := len(b.segs); n > 0 && b.segs[n-1].Kind == KindLiteral {
		b.segs[n-1].Lit = append(b.segs[n-1].Lit, v)
		return
	}
	b.segs = append(b.segs, Segment{Kind: KindLiteral, Lit: []byte{v}})
}

func (b *builder) wildcard() {
	if n := len(b.segs); n > 0 && b.segs[n-1].Kind == KindWildcard {
		b.segs[n-1].Count++
		return
	}
	b.segs = append(b.segs, Segment{Kind: KindWildcard, Count: 1})
}

func (b *builder) mixed(value, mask byte) {
	b.segs = append(b.segs, Segment{Kind: KindMixed, Value: value & mask, Mask: mask})
}

func (b *builder) pattern() Pattern {
	width := 0
	for _, s := range b.segs {
		width += s.Width()
	}
	return Pattern{segs: b.segs, width: width}
}
