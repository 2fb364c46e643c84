// File: adapters/buffered.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package adapters

import (
	"github.com/momentics/hioload-io/api"
)

// BufferedSink stages writes in a fixed buffer ahead of a downstream
// poll-mode writer, turning many small relay writes into few large
// downstream writes. When the stage fills it drains downstream inline;
// a downstream would-block surfaces as backpressure, with the bytes
// staged so far already committed.
type BufferedSink struct {
	dst     api.PollWriter
	pool    api.BytePool
	buf     []byte
	n       int
	flushes int64
}

// NewBufferedSink buffers size bytes ahead of dst.
func NewBufferedSink(dst api.PollWriter, size int) *BufferedSink {
	if size <= 0 {
		size = 4 * 1024
	}
	return &BufferedSink{dst: dst, buf: make([]byte, size)}
}

// NewBufferedSinkPool draws the staging buffer from p; Release returns it.
func NewBufferedSinkPool(dst api.PollWriter, p api.BytePool) *BufferedSink {
	return &BufferedSink{dst: dst, pool: p, buf: p.Get()}
}

func (b *BufferedSink) PollWrite(p []byte) (int, error) {
	total := 0
	for len(p) > 0 {
		if b.n == len(b.buf) {
			if err := b.drain(); err != nil {
				return total, err
			}
		}
		n := copy(b.buf[b.n:], p)
		b.n += n
		p = p[n:]
		total += n
	}
	return total, nil
}

// PollFlush pushes staged bytes downstream and flushes the downstream
// writer. Flushing with nothing staged still counts a flush and is
// harmless.
func (b *BufferedSink) PollFlush() error {
	if err := b.drain(); err != nil {
		return err
	}
	if err := b.dst.PollFlush(); err != nil {
		return err
	}
	b.flushes++
	return nil
}

// Flushes returns how many flushes have completed.
func (b *BufferedSink) Flushes() int64 { return b.flushes }

// Buffered returns the number of staged, not yet drained bytes.
func (b *BufferedSink) Buffered() int { return b.n }

// Release returns a pooled staging buffer. The sink must be flushed
// first and not used afterwards.
func (b *BufferedSink) Release() {
	if b.pool != nil {
		b.pool.Put(b.buf)
		b.pool = nil
	}
	b.buf = nil
}

func (b *BufferedSink) drain() error {
	staged := b.buf[:b.n]
	for len(staged) > 0 {
		n, err := b.dst.PollWrite(staged)
		staged = staged[n:]
		if err != nil {
			// Keep the unwritten remainder staged for a retry.
			b.n = copy(b.buf, staged)
			return err
		}
		if n == 0 {
			b.n = copy(b.buf, staged)
			return api.ErrWriteZero
		}
	}
	b.n = 0
	return nil
}

var _ api.PollWriter = (*BufferedSink)(nil)
