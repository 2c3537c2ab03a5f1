package layout

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/hexmagic/hexmagic-go/pkg/hexstruct"
	"github.com/hexmagic/hexmagic-go/pkg/pattern"
)

// Compile compiles every struct in the file into parse definitions,
// keyed by struct name.
func (f *File) Compile() (map[string]*hexstruct.Def, error) {
	defs := make(map[string]*hexstruct.Def, len(f.Structs))
	for i := range f.Structs {
		def, err := f.Structs[i].Compile()
		if err != nil {
			return nil, err
		}
		defs[def.Name()] = def
	}
	return defs, nil
}

// Compile compiles the struct layout into a parse definition.
func (s *Struct) Compile() (*hexstruct.Def, error) {
	fields := make([]hexstruct.Field, 0, len(s.Fields))
	for i := range s.Fields {
		f, err := compileField(&s.Fields[i])
		if err != nil {
			return nil, fmt.Errorf("struct %q: field %d: %w", s.Name, i, err)
		}
		fields = append(fields, f)
	}
	return hexstruct.NewDef(s.Name, fields...)
}

func compileField(lf *Field) (hexstruct.Field, error) {
	p, err := compilePattern(lf)
	if err != nil {
		return hexstruct.Field{}, err
	}

	if lf.Type == "" {
		if lf.Name == "" {
			return hexstruct.Skip(p), nil
		}
		return hexstruct.Capture(lf.Name, p), nil
	}

	if lf.Name == "" {
		return hexstruct.Field{}, fmt.Errorf("type %q on unnamed field", lf.Type)
	}
	fn, ok := hexstruct.Converter(lf.Type)
	if !ok {
		return hexstruct.Field{}, fmt.Errorf("unknown type %q", lf.Type)
	}
	return hexstruct.CaptureFunc(lf.Name, p, fn), nil
}

func compilePattern(lf *Field) (pattern.Pattern, error) {
	hasPattern := !lf.Pattern.IsZero()
	hasText := lf.Text != ""

	switch {
	case hasPattern && hasText:
		return pattern.Pattern{}, fmt.Errorf("pattern and text are mutually exclusive")
	case hasText:
		return pattern.Text(lf.Text), nil
	case !hasPattern:
		return pattern.Pattern{}, fmt.Errorf("missing pattern")
	}

	switch lf.Pattern.Kind {
	case yaml.ScalarNode:
		var s string
		if err := lf.Pattern.Decode(&s); err != nil {
			return pattern.Pattern{}, fmt.Errorf("pattern: %w", err)
		}
		return pattern.Compile(s)

	case yaml.SequenceNode:
		toks := make([]pattern.Token, 0, len(lf.Pattern.Content))
		for i, item := range lf.Pattern.Content {
			tok, err := compileToken(item)
			if err != nil {
				return pattern.Pattern{}, fmt.Errorf("pattern element %d: %w", i, err)
			}
			toks = append(toks, tok)
		}
		return pattern.Tokens(toks...), nil

	default:
		return pattern.Pattern{}, fmt.Errorf("pattern must be a string or a list")
	}
}

// compileToken maps a YAML list element to a pattern token: an integer
// byte value, or the wildcard marker "_".
func compileToken(n *yaml.Node) (pattern.Token, error) {
	var s string
	if err := n.Decode(&s); err == nil && s == "_" {
		return pattern.Any, nil
	}

	var v int
	if err := n.Decode(&v); err != nil {
		return pattern.Token{}, fmt.Errorf("want a byte value or \"_\", got %q", n.Value)
	}
	if v < 0 || v > 0xFF {
		return pattern.Token{}, fmt.Errorf("byte value %d out of range", v)
	}
	return pattern.Lit(byte(v)), nil
}
