// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports console output for
// interactive CLI use and JSON output for machine consumption.
//
// # Run Correlation
//
// The WithRunID helper attaches a unique run identifier to the logger so
// that all entries produced by one invocation can be correlated.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: json or console
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "console"})
//	log = logger.WithRunID(log)
//	log.Info("resolved keys", zap.Int("count", n))
package logger
