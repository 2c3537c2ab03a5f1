// Package tracelog provides structured parse tracing for hexmagic.
//
// The package defines the Logger interface and Event type for capturing
// one event per directive evaluated during a parse: which field was
// matched, at what stream offset, how wide the window was, and whether
// it matched, mismatched, or failed on the reader or a conversion.
// Tracing is separate from operational logging - it produces a complete
// machine-readable record of a parse for debugging layout definitions
// against real captures.
//
// # Basic Usage
//
// Callers pass a Logger to Def.ParseTraced:
//
//	// For development: events to console via slog
//	res, err := def.ParseTraced(r, tracelog.NewSlogAdapter(slog.Default()))
//
//	// For offline analysis: append to a binary trace file
//	fl, _ := tracelog.NewFileLogger("decode.htrace")
//	res, err := def.ParseTraced(r, fl)
//
//	// Both at once
//	res, err := def.ParseTraced(r, tracelog.NewMultiLogger(
//	    tracelog.NewSlogAdapter(slog.Default()), fl))
//
// # File Format
//
// Trace files are a sequence of CBOR-encoded events with integer keys,
// by convention with the .htrace extension. Reader streams them back,
// optionally filtered. The hexmagic CLI's trace command is built on it.
package tracelog
