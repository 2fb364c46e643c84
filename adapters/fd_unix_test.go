//go:build unix

// File: adapters/fd_unix_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package adapters_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-io/adapters"
	"github.com/momentics/hioload-io/api"
	"github.com/momentics/hioload-io/relay"
)

func TestFDSourceRelaysPipe(t *testing.T) {
	fds := make([]int, 2)
	require.NoError(t, unix.Pipe(fds))
	r, w := fds[0], fds[1]
	defer unix.Close(r)

	require.NoError(t, adapters.SetNonblock(r))

	payload := bytes.Repeat([]byte("pipe payload "), 64)
	go func() {
		_, _ = unix.Write(w, payload)
		unix.Close(w)
	}()

	sink := &adapters.WriterSink{W: &bytes.Buffer{}}
	src := &adapters.FDSource{FD: r}

	amt, err := relay.Run(src, sink)
	require.NoError(t, err)
	require.Equal(t, uint64(len(payload)), amt)
}

func TestFDSourceReportsWouldBlock(t *testing.T) {
	fds := make([]int, 2)
	require.NoError(t, unix.Pipe(fds))
	r, w := fds[0], fds[1]
	defer unix.Close(r)
	defer unix.Close(w)

	require.NoError(t, adapters.SetNonblock(r))

	buf := make([]byte, 16)
	src := &adapters.FDSource{FD: r}
	_, err := src.PollRead(buf)
	require.ErrorIs(t, err, api.ErrWouldBlock)
}

func TestFDSinkRoundTrip(t *testing.T) {
	fds := make([]int, 2)
	require.NoError(t, unix.Pipe(fds))
	r, w := fds[0], fds[1]
	defer unix.Close(r)
	defer unix.Close(w)

	require.NoError(t, adapters.SetNonblock(w))

	sink := &adapters.FDSink{FD: w}
	n, err := sink.PollWrite([]byte("through the pipe"))
	require.NoError(t, err)
	require.Equal(t, len("through the pipe"), n)
	require.NoError(t, sink.PollFlush())

	got := make([]byte, 64)
	m, err := unix.Read(r, got)
	require.NoError(t, err)
	require.Equal(t, "through the pipe", string(got[:m]))
}
