// Package pkg provides shared utilities for the usbd servicing layer.
//
// This package contains common functionality used across the runner,
// dispatch, and port packages, including:
//
//   - Structured logging via Go's standard [log/slog] package
//   - Sentinel error values for the servicing layer
//   - Component identifiers for log filtering
//
// The package is designed to have zero external dependencies, relying
// only on the Go standard library.
//
// # Logging
//
// The logging subsystem wraps [log/slog] with servicing-layer context:
//
//	pkg.SetLogLevel(slog.LevelDebug)
//	pkg.LogInfo(pkg.ComponentRunner, "service pass complete", "passes", 3)
//
// # Errors
//
// Common errors are defined as sentinel values:
//
//	if errors.Is(err, pkg.ErrBufferTooSmall) {
//	    // Provide a larger buffer
//	}
package pkg
