//go:build !unix

// File: adapters/fd_stub.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package adapters

import "github.com/momentics/hioload-io/api"

// SetNonblock is unavailable on this platform.
func SetNonblock(int) error { return api.ErrNotSupported }

// FDSource is unavailable on this platform.
type FDSource struct {
	FD int
}

func (s *FDSource) PollRead([]byte) (int, error) { return 0, api.ErrNotSupported }

// FDSink is unavailable on this platform.
type FDSink struct {
	FD int
}

func (s *FDSink) PollWrite([]byte) (int, error) { return 0, api.ErrNotSupported }

func (s *FDSink) PollFlush() error { return api.ErrNotSupported }
