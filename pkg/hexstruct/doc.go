// Package hexstruct matches compiled byte patterns against a reader and
// extracts named fields into a structured result.
//
// A parse is described by an ordered list of Field directives. Each
// directive pairs a pattern (see the pattern package) with an optional
// name and an optional conversion function:
//
//	def, _ := hexstruct.NewDef("header",
//	    hexstruct.Skip(pattern.Text("HEX")),
//	    hexstruct.Skip(pattern.MustCompile("00")),
//	    hexstruct.Capture("a", pattern.MustCompile("01__")),
//	    hexstruct.CaptureFunc("b", pattern.MustCompile("AABB ____"), hexstruct.U32LE),
//	)
//	res, err := def.Parse(r)
//
// Directives run strictly in declaration order with no backtracking.
// Each directive reads exactly its pattern's width from the reader,
// checks literal and nibble constraints, and either discards the window
// (anonymous directives) or captures it (named directives). The first
// failure aborts the whole parse: a reader error propagates as-is, a
// content failure is reported as *MismatchError with the field name,
// byte offset, and the expected and actual values, and a conversion
// error propagates unwrapped.
//
// Compiled definitions are immutable and safe to reuse concurrently
// against independent readers. A reader is exclusively owned by one
// Parse call for its duration.
package hexstruct
