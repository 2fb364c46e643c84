// File: api/errors.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Common error values used across the hioload-io library.
//
// ErrWouldBlock is expected control flow, not a failure: poll-mode
// operations return it to mean "no further progress without waiting".
// Partial progress is always committed before the sentinel is returned;
// counts first, semantics second.

package api

import "errors"

var (
	// ErrWouldBlock means the operation cannot make progress right now.
	// Wait for readiness (scheduler resumption, flush, event), then retry.
	ErrWouldBlock = errors.New("io: would block")

	// ErrWriteZero reports a sink that accepted zero bytes from a
	// non-empty write with no error. Treated as a permanent transport
	// fault; the operation is not retried.
	ErrWriteZero = errors.New("write zero byte into writer")

	// ErrNoContext reports that no runtime handle is installed on the
	// calling goroutine.
	ErrNoContext = errors.New("no current runtime handle installed")

	// ErrContextDestroyed reports that the handle register has been torn
	// down. Distinct from ErrNoContext so callers can tell "nothing
	// installed" from "shutting down".
	ErrContextDestroyed = errors.New("runtime handle register destroyed")

	// ErrDriverClosed is returned by Submit after driver shutdown.
	ErrDriverClosed = errors.New("driver is closed")

	// ErrNotSupported marks an operation unavailable on this platform.
	ErrNotSupported = errors.New("operation not supported")
)
