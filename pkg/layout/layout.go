// Package layout loads byte-layout definitions from YAML files and
// compiles them into reusable parse definitions.
//
// A layout file declares named structs, each an ordered list of fields.
// A field gives an optional name (unnamed fields are padding), a
// pattern in either grammar, and an optional converter type:
//
//	version: 1
//	structs:
//	  - name: telemetry
//	    fields:
//	      - text: "HEX"
//	      - pattern: "00"
//	      - name: flags
//	        pattern: [0x01, "_"]
//	      - name: value
//	        pattern: "AABB ____"
//	        type: u32le
//
// String patterns use the hex grammar of the pattern package; list
// patterns hold byte values and "_" wildcard markers; text patterns
// match the raw bytes of the string. Converter type names are resolved
// through hexstruct.Converter.
package layout

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CurrentVersion is the layout file format version this package reads.
const CurrentVersion = 1

// File represents a parsed layout file.
type File struct {
	// Version is the layout file format version. Currently only
	// version 1 is supported.
	Version int `yaml:"version"`

	// Structs is the list of struct layout definitions.
	Structs []Struct `yaml:"structs"`
}

// Struct is one named byte layout.
type Struct struct {
	// Name identifies the layout; it must be unique within a file.
	Name string `yaml:"name"`

	// Fields are the parse directives, in stream order.
	Fields []Field `yaml:"fields"`
}

// Field is one directive of a struct layout.
type Field struct {
	// Name is the result key. Unnamed fields check and discard their
	// bytes.
	Name string `yaml:"name,omitempty"`

	// Pattern is either a hex-grammar string ("AABB __") or a list of
	// byte values and "_" markers ([0x7E, "_", 0]). Exactly one of
	// Pattern and Text must be set.
	Pattern yaml.Node `yaml:"pattern,omitempty"`

	// Text is a literal pattern over the raw bytes of the string,
	// for ASCII magic values.
	Text string `yaml:"text,omitempty"`

	// Type names a converter for the captured bytes, e.g. "u32le" or
	// "hex". Only valid on named fields; unset means the raw bytes.
	Type string `yaml:"type,omitempty"`
}

// Parse parses a layout file from YAML bytes.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing layout: %w", err)
	}
	if f.Version != CurrentVersion {
		return nil, fmt.Errorf("unsupported layout version %d (want %d)", f.Version, CurrentVersion)
	}

	seen := make(map[string]struct{}, len(f.Structs))
	for i, s := range f.Structs {
		if s.Name == "" {
			return nil, fmt.Errorf("struct %d: missing name", i)
		}
		if _, dup := seen[s.Name]; dup {
			return nil, fmt.Errorf("duplicate struct %q", s.Name)
		}
		seen[s.Name] = struct{}{}
	}
	return &f, nil
}

// Load loads and parses a layout file from a path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(data)
}

// Struct returns the named struct layout.
func (f *File) Struct(name string) (*Struct, bool) {
	for i := range f.Structs {
		if f.Structs[i].Name == name {
			return &f.Structs[i], true
		}
	}
	return nil, false
}

// StructNames returns the struct names in file order.
func (f *File) StructNames() []string {
	names := make([]string, len(f.Structs))
	for i, s := range f.Structs {
		names[i] = s.Name
	}
	return names
}
