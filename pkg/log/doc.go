// Package log provides structured event logging for the codec.
//
// This package defines the Logger interface and Event type for
// capturing registry loads, decodes, encodes and batch runs. It is
// separate from operational logging (slog) - event capture provides a
// machine-readable trace for debugging device integrations.
//
// # Basic Usage
//
// Consumers configure logging by providing a Logger implementation:
//
//	// For development: log to console via slog
//	reg := registry.New(registry.Options{Logger: log.NewSlogAdapter(slog.Default())})
//
//	// For test harnesses: write to binary file
//	fl, _ := log.NewFileLogger("decode-session.clog")
//	reg := registry.New(registry.Options{Logger: fl})
//
//	// Both: use MultiLogger
//	reg := registry.New(registry.Options{Logger: log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()), fl,
//	)})
//
// Events are CBOR-encoded with integer keys; Reader streams them back
// with optional filtering.
package log
