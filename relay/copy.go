// File: relay/copy.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package relay

import (
	"errors"
	"runtime"
	"time"

	"github.com/momentics/hioload-io/api"
	"github.com/momentics/hioload-io/coop"
)

// Copy binds a CopyBuffer to a borrowed source and sink for the lifetime
// of one relay. It holds no other state; each driver resumption simply
// re-enters the drive loop on the same buffer. Abandoning a Copy before
// completion is always safe: stop polling it and call Release.
type Copy struct {
	src api.PollReader
	dst api.PollWriter
	buf *CopyBuffer
}

// NewCopy creates a relay operation with a default-sized buffer.
func NewCopy(src api.PollReader, dst api.PollWriter) *Copy {
	return NewCopyWith(src, dst, NewCopyBuffer())
}

// NewCopyWith creates a relay operation over a caller-supplied buffer,
// typically one drawn from a pool.
func NewCopyWith(src api.PollReader, dst api.PollWriter, buf *CopyBuffer) *Copy {
	return &Copy{src: src, dst: dst, buf: buf}
}

// Poll implements api.Pollable: one resumption of the relay.
func (c *Copy) Poll(gate api.CoopGate) error {
	_, err := c.buf.PollCopy(gate, c.src, c.dst)
	return err
}

// Total returns the bytes accepted by the sink so far; after a nil Poll
// it is the final result of the relay.
func (c *Copy) Total() uint64 { return c.buf.Total() }

// Release returns a pooled buffer. The Copy must not be polled again.
func (c *Copy) Release() { c.buf.Release() }

var _ api.Pollable = (*Copy)(nil)

// Run drives a relay to completion on the calling goroutine, yielding
// between would-block returns. Intended for callers without a driver;
// sources and sinks that block forever will hang it, as with any
// synchronous copy.
func Run(src api.PollReader, dst api.PollWriter) (uint64, error) {
	buf := NewCopyBuffer()
	gate := &coop.Unconstrained{}

	var (
		last      uint64
		backoffNs int64 = 1
	)
	for {
		amt, err := buf.PollCopy(gate, src, dst)
		if !errors.Is(err, api.ErrWouldBlock) {
			return amt, err
		}
		if amt != last {
			last = amt
			backoffNs = 1
		}
		// Yield first, sleep only when repeatedly stuck.
		if backoffNs < 1000 {
			runtime.Gosched()
		} else {
			time.Sleep(time.Duration(backoffNs) * time.Nanosecond)
		}
		if backoffNs < 1_000_000 {
			backoffNs *= 2
		}
	}
}
