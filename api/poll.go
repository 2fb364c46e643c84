// File: api/poll.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Poll-mode capability contracts. All operations are non-blocking:
// instead of waiting they return ErrWouldBlock, and the caller (usually
// a driver) retries on the next resumption.

package api

// PollReader is a non-blocking readable source.
type PollReader interface {
	// PollRead fills p with new bytes and returns the count.
	//
	// End-of-input is signaled by (0, nil) or by io.EOF; a source may
	// return (n > 0, io.EOF) to deliver its final bytes and the EOF in
	// one call. ErrWouldBlock means no data is available yet; the call
	// must not have consumed anything in that case.
	PollRead(p []byte) (int, error)
}

// PollWriter is a non-blocking writable sink.
type PollWriter interface {
	// PollWrite attempts to write p and returns the number of bytes
	// accepted. ErrWouldBlock means the sink cannot accept data yet.
	// A sink must never report more bytes than len(p).
	PollWrite(p []byte) (int, error)

	// PollFlush pushes internally buffered output downstream.
	// Flushing an already-flushed sink is a no-op.
	PollFlush() error
}

// Pollable is a resumable operation driven by a scheduler.
//
// Each Poll call runs one resumption to either a suspend point or
// completion: nil means done, ErrWouldBlock means suspended (resume
// later), any other error is final. All mutable state is committed
// before ErrWouldBlock is returned, so re-entry is side-effect free.
type Pollable interface {
	Poll(gate CoopGate) error
}
