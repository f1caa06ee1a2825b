package pkg

import "errors"

// Servicing layer errors.
var (
	// ErrBufferTooSmall indicates the provided buffer is too small.
	ErrBufferTooSmall = errors.New("buffer too small")

	// ErrAlreadyRunning indicates the dispatch loop is already running.
	ErrAlreadyRunning = errors.New("already running")

	// ErrNotSupported indicates an unsupported operation or feature.
	ErrNotSupported = errors.New("not supported")

	// ErrInvalidParameter indicates an invalid parameter was provided.
	ErrInvalidParameter = errors.New("invalid parameter")
)
