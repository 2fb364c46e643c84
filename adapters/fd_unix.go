//go:build unix

// File: adapters/fd_unix.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Non-blocking file descriptor adapters. EAGAIN maps to the library's
// would-block sentinel so fds slot directly into the relay engine.

package adapters

import (
	"io"

	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-io/api"
)

// SetNonblock switches fd into non-blocking mode.
func SetNonblock(fd int) error { return unix.SetNonblock(fd, true) }

// FDSource reads from a non-blocking file descriptor.
type FDSource struct {
	FD int
}

func (s *FDSource) PollRead(p []byte) (int, error) {
	n, err := unix.Read(s.FD, p)
	if err != nil {
		if err == unix.EAGAIN {
			return 0, api.ErrWouldBlock
		}
		return 0, err
	}
	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}

// FDSink writes to a non-blocking file descriptor. The kernel buffers
// writes itself, so PollFlush is a no-op.
type FDSink struct {
	FD int
}

func (s *FDSink) PollWrite(p []byte) (int, error) {
	n, err := unix.Write(s.FD, p)
	if err != nil {
		if err == unix.EAGAIN {
			return 0, api.ErrWouldBlock
		}
		return 0, err
	}
	return n, nil
}

func (s *FDSink) PollFlush() error { return nil }

var (
	_ api.PollReader = (*FDSource)(nil)
	_ api.PollWriter = (*FDSink)(nil)
)
