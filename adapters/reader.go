// File: adapters/reader.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package adapters

import (
	"io"

	"github.com/momentics/hioload-io/api"
)

// ReaderSource adapts a blocking io.Reader into a poll-mode source.
// The reader is treated as always ready; its io.EOF (or a zero-byte
// read) becomes the relay's end-of-input.
type ReaderSource struct {
	R io.Reader
}

func (s *ReaderSource) PollRead(p []byte) (int, error) { return s.R.Read(p) }

// WriterSink adapts a blocking io.Writer into a poll-mode sink.
// PollFlush forwards to the writer's own Flush when it has one.
type WriterSink struct {
	W io.Writer
}

func (s *WriterSink) PollWrite(p []byte) (int, error) { return s.W.Write(p) }

func (s *WriterSink) PollFlush() error {
	if f, ok := s.W.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

var (
	_ api.PollReader = (*ReaderSource)(nil)
	_ api.PollWriter = (*WriterSink)(nil)
)
