// File: fake/fake.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Scripted poll-mode sources and sinks for tests. Behavior is
// predictable and controllable: chunks, would-block steps and errors
// are replayed in the order they were queued.

package fake

import (
	"sync"

	"github.com/momentics/hioload-io/api"
)

type readStep struct {
	data  []byte
	block bool
	err   error
}

// Source replays a script of chunks, would-block steps and errors.
// When the script is exhausted it reports end of input.
type Source struct {
	mu     sync.Mutex
	script []readStep
	reads  int
}

// NewSource creates an empty source; an unscripted source is an
// immediate end-of-input.
func NewSource() *Source { return &Source{} }

// Chunk queues data to be served on subsequent reads.
func (s *Source) Chunk(data []byte) *Source {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := make([]byte, len(data))
	copy(d, data)
	s.script = append(s.script, readStep{data: d})
	return s
}

// Text queues a string chunk.
func (s *Source) Text(data string) *Source { return s.Chunk([]byte(data)) }

// WouldBlock queues one not-ready step.
func (s *Source) WouldBlock() *Source {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.script = append(s.script, readStep{block: true})
	return s
}

// Fail queues a terminal read error.
func (s *Source) Fail(err error) *Source {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.script = append(s.script, readStep{err: err})
	return s
}

// Reads returns the number of PollRead calls observed.
func (s *Source) Reads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads
}

func (s *Source) PollRead(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++

	if len(s.script) == 0 {
		return 0, nil
	}
	st := s.script[0]
	if st.block {
		s.script = s.script[1:]
		return 0, api.ErrWouldBlock
	}
	if st.err != nil {
		s.script = s.script[1:]
		return 0, st.err
	}
	n := copy(p, st.data)
	if n < len(st.data) {
		s.script[0].data = st.data[n:]
	} else {
		s.script = s.script[1:]
	}
	return n, nil
}

// Sink records accepted bytes and flushes with injectable faults and
// backpressure.
type Sink struct {
	mu        sync.Mutex
	stored    []byte
	unflushed int
	writes    int
	flushes   int

	// AcceptLimit caps bytes accepted per write; 0 means unlimited.
	AcceptLimit int
	// PartialWrites scripts writes that accept the given number of
	// bytes and still report would-block in the same call. Each entry
	// is consumed by one write.
	PartialWrites []int
	// Capacity caps unflushed bytes; once reached, writes report
	// would-block until a flush. 0 means unlimited.
	Capacity int
	// ZeroWrite makes writes report (0, nil) without storing.
	ZeroWrite bool
	// BlockWrites makes the next n writes report would-block.
	BlockWrites int
	// BlockFlushes makes the next n flushes report would-block.
	BlockFlushes int
	// WriteErr / FlushErr inject terminal faults.
	WriteErr error
	FlushErr error
}

// NewSink creates a sink that accepts everything.
func NewSink() *Sink { return &Sink{} }

func (k *Sink) PollWrite(p []byte) (int, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.writes++

	if k.BlockWrites > 0 {
		k.BlockWrites--
		return 0, api.ErrWouldBlock
	}
	if len(k.PartialWrites) > 0 {
		n := k.PartialWrites[0]
		k.PartialWrites = k.PartialWrites[1:]
		if n > len(p) {
			n = len(p)
		}
		k.stored = append(k.stored, p[:n]...)
		k.unflushed += n
		return n, api.ErrWouldBlock
	}
	if k.WriteErr != nil {
		return 0, k.WriteErr
	}
	if k.ZeroWrite {
		return 0, nil
	}

	n := len(p)
	if k.AcceptLimit > 0 && n > k.AcceptLimit {
		n = k.AcceptLimit
	}
	if k.Capacity > 0 {
		free := k.Capacity - k.unflushed
		if free <= 0 {
			return 0, api.ErrWouldBlock
		}
		if n > free {
			n = free
		}
	}
	k.stored = append(k.stored, p[:n]...)
	k.unflushed += n
	return n, nil
}

func (k *Sink) PollFlush() error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.BlockFlushes > 0 {
		k.BlockFlushes--
		return api.ErrWouldBlock
	}
	if k.FlushErr != nil {
		return k.FlushErr
	}
	k.flushes++
	k.unflushed = 0
	return nil
}

// Bytes returns everything the sink has accepted, flushed or not.
func (k *Sink) Bytes() []byte {
	k.mu.Lock()
	defer k.mu.Unlock()
	out := make([]byte, len(k.stored))
	copy(out, k.stored)
	return out
}

// Writes returns the number of PollWrite calls observed.
func (k *Sink) Writes() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.writes
}

// Flushes returns the number of completed flushes.
func (k *Sink) Flushes() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.flushes
}

var (
	_ api.PollReader = (*Source)(nil)
	_ api.PollWriter = (*Sink)(nil)
)
