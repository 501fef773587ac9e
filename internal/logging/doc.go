// Package logging provides structured logging for the melair tools.
//
// This package wraps zap logger with convenience functions for the logging
// patterns used throughout the project: general leveled logging plus a few
// adapter-specific helpers.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Detailed debugging info (snapshot fields, raw codes)
//   - Info: Normal operations (snapshot loads, patch builds)
//   - Warn: Non-fatal issues (unknown raw codes, missing fields)
//   - Error: Fatal issues (unreadable snapshot files)
//
// # Structured Logging
//
// All log functions use structured fields for queryability:
//
//	logging.Info("Snapshot loaded",
//	    zap.String("serial", "1812-231-045"),
//	    zap.Int("fields", 14),
//	)
//
// # Configuration
//
// CLI commands are silent by default. Set MELAIR_LOG_LEVEL to enable output:
//
//	MELAIR_LOG_LEVEL=debug melair-cfg show --state state.json --conf conf.json
//
// Or initialize explicitly at startup:
//
//	if err := logging.Initialize("debug"); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap
// logger handles synchronization automatically.
package logging
