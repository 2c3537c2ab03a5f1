// Package logging provides structured logging for the hexmagic CLI.
//
// This package wraps zap logger with convenience functions for the logging
// patterns used throughout the commands. Output goes to stderr so it never
// mixes with decoded results on stdout.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Detailed debugging info (hex dumps, per-decode outcomes)
//   - Info: Normal operations (layouts loaded, files processed)
//   - Warn: Non-fatal issues (skipped structs, short reads)
//   - Error: Fatal issues (startup failures, unreadable files)
//
// # Structured Logging
//
// All log functions use structured fields for queryability:
//
//	logging.Info("Layout loaded",
//	    zap.String("path", "layouts/frames.yaml"),
//	    zap.Int("structs", 3),
//	)
//
// # Configuration
//
// Logging is silent unless a level is set, either through the
// HEXMAGIC_LOG_LEVEL environment variable or an explicit call:
//
//	if err := logging.Initialize("debug"); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap logger
// handles synchronization automatically.
package logging
