// Package logging provides structured logging configuration for mocksauce.
//
// This package wraps log/slog so the server, the CLI and the pipeline
// diagnostics share one logger setup.
//
// # Usage
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelDebug,
//	    Format: logging.FormatJSON,
//	})
//
//	logger.Info("server started", "addr", ":4280")
//
// Pipeline diagnostics (ignored filters, unresolved relationships, skipped
// sorts) are logged at debug level, so they only appear with --log-level debug.
//
// # Integration
//
// Components accept a *slog.Logger in their constructor or via an option.
// If no logger is provided, use logging.Nop().
package logging
