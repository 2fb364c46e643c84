// File: relay/copybuffer.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package relay

import (
	"errors"
	"io"

	"github.com/momentics/hioload-io/api"
)

// DefaultBufSize is the copy buffer capacity used when none is supplied.
const DefaultBufSize = 8 * 1024

// CopyBuffer is the relay state machine. buf[pos:cap] is the filled,
// not-yet-drained region; readDone latches once the source reports end
// of input; needFlush tracks sink bytes accepted since the last flush;
// amt is the running total of bytes the sink has accepted.
//
// Every mutation is committed before a would-block return, so a
// suspended relay can be re-entered with no partially applied step.
type CopyBuffer struct {
	buf       []byte
	pos       int
	cap       int
	readDone  bool
	needFlush bool
	amt       uint64
	pool      api.BytePool
}

// NewCopyBuffer allocates a relay buffer of DefaultBufSize.
func NewCopyBuffer() *CopyBuffer {
	return NewCopyBufferSize(DefaultBufSize)
}

// NewCopyBufferSize allocates a relay buffer of n bytes.
// n <= 0 falls back to DefaultBufSize.
func NewCopyBufferSize(n int) *CopyBuffer {
	if n <= 0 {
		n = DefaultBufSize
	}
	return &CopyBuffer{buf: make([]byte, n)}
}

// NewCopyBufferPool takes the buffer from p. Release returns it.
func NewCopyBufferPool(p api.BytePool) *CopyBuffer {
	return &CopyBuffer{buf: p.Get(), pool: p}
}

// Total returns the number of bytes the sink has accepted so far.
func (b *CopyBuffer) Total() uint64 { return b.amt }

// Release hands a pooled buffer back. Safe to call at any point,
// including on an abandoned relay; the CopyBuffer must not be polled
// afterwards.
func (b *CopyBuffer) Release() {
	if b.pool != nil {
		b.pool.Put(b.buf)
		b.pool = nil
	}
	b.buf = nil
}

// pollFillBuf asks the source for new bytes starting at cap.
//
// Zero new bytes with spare capacity means end of input, as does io.EOF.
// A source may deliver final bytes and io.EOF together; the bytes are
// committed first. Progress committed alongside a would-block signal
// also counts as success: counts first, semantics second.
func (b *CopyBuffer) pollFillBuf(src api.PollReader) error {
	n, err := src.PollRead(b.buf[b.cap:])
	if n > 0 {
		b.cap += n
	}
	switch {
	case err == nil:
		if n == 0 {
			b.readDone = true
		}
		return nil
	case errors.Is(err, io.EOF):
		b.readDone = true
		return nil
	case errors.Is(err, api.ErrWouldBlock):
		if n > 0 {
			return nil
		}
		return api.ErrWouldBlock
	default:
		return err
	}
}

// pollWriteBuf drains buf[pos:cap] into the sink. When the sink cannot
// accept data yet and the buffer still has room, one opportunistic fill
// tops the buffer up so the eventual write is larger; that fill's own
// failure or would-block propagates outward unchanged.
func (b *CopyBuffer) pollWriteBuf(src api.PollReader, dst api.PollWriter) (int, error) {
	n, err := dst.PollWrite(b.buf[b.pos:b.cap])
	if n == 0 && errors.Is(err, api.ErrWouldBlock) {
		if !b.readDone && b.cap < len(b.buf) {
			if ferr := b.pollFillBuf(src); ferr != nil && !errors.Is(ferr, api.ErrWouldBlock) {
				return 0, ferr
			}
		}
		return 0, api.ErrWouldBlock
	}
	return n, err
}

// PollCopy runs the relay until a suspend point or completion.
//
// The returned total is cumulative across resumptions. A nil error means
// the source is exhausted and the sink flushed; api.ErrWouldBlock means
// suspended, resume later; any other error is final and is propagated
// unmodified from the offending collaborator.
func (b *CopyBuffer) PollCopy(gate api.CoopGate, src api.PollReader, dst api.PollWriter) (uint64, error) {
	for {
		if !gate.Proceed() {
			return b.amt, api.ErrWouldBlock
		}

		// Empty buffer and input remaining: rewind and refill.
		if b.pos == b.cap && !b.readDone {
			b.pos, b.cap = 0, 0
			err := b.pollFillBuf(src)
			switch {
			case err == nil:
				gate.MadeProgress()
			case errors.Is(err, api.ErrWouldBlock):
				// The source may be waiting on bytes the sink still
				// buffers. Flush them through before suspending so a
				// buffering sink cannot deadlock the relay.
				if b.needFlush {
					if ferr := dst.PollFlush(); ferr != nil {
						if errors.Is(ferr, api.ErrWouldBlock) {
							return b.amt, api.ErrWouldBlock
						}
						return b.amt, ferr
					}
					gate.MadeProgress()
					b.needFlush = false
				}
				return b.amt, api.ErrWouldBlock
			default:
				gate.MadeProgress()
				return b.amt, err
			}
		}

		// Drain whatever the buffer holds.
		for b.pos < b.cap {
			n, err := b.pollWriteBuf(src, dst)
			if n > 0 {
				// A sink may accept bytes and still signal would-block;
				// what it accepted is committed before the verdict on err.
				gate.MadeProgress()
				b.pos += n
				b.amt += uint64(n)
				b.needFlush = true
			}
			if err != nil {
				if errors.Is(err, api.ErrWouldBlock) {
					return b.amt, api.ErrWouldBlock
				}
				return b.amt, err
			}
			if n == 0 {
				// A sink refusing a non-empty write without error would
				// loop forever; fail the relay instead.
				return b.amt, api.ErrWriteZero
			}
		}

		if b.pos > b.cap {
			panic("relay: writer reported more bytes than it was given")
		}

		// Input exhausted and buffer drained: flush and finish.
		if b.pos == b.cap && b.readDone {
			if err := dst.PollFlush(); err != nil {
				if errors.Is(err, api.ErrWouldBlock) {
					return b.amt, api.ErrWouldBlock
				}
				return b.amt, err
			}
			gate.MadeProgress()
			return b.amt, nil
		}
	}
}
