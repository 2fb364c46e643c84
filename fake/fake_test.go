// File: fake/fake_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package fake_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-io/api"
	"github.com/momentics/hioload-io/fake"
)

func TestSourceServesChunksAcrossShortReads(t *testing.T) {
	src := fake.NewSource().Text("abcdef")

	p := make([]byte, 4)
	n, err := src.PollRead(p)
	require.NoError(t, err)
	require.Equal(t, "abcd", string(p[:n]))

	n, err = src.PollRead(p)
	require.NoError(t, err)
	require.Equal(t, "ef", string(p[:n]))

	n, err = src.PollRead(p)
	require.NoError(t, err)
	require.Zero(t, n, "exhausted script means end of input")
	require.Equal(t, 3, src.Reads())
}

func TestSourceScriptedBlocks(t *testing.T) {
	src := fake.NewSource().WouldBlock().Text("x")

	_, err := src.PollRead(make([]byte, 1))
	require.ErrorIs(t, err, api.ErrWouldBlock)

	n, err := src.PollRead(make([]byte, 1))
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestSinkScriptedPartialWrites(t *testing.T) {
	sink := fake.NewSink()
	sink.PartialWrites = []int{3}

	n, err := sink.PollWrite([]byte("abcdef"))
	require.ErrorIs(t, err, api.ErrWouldBlock)
	require.Equal(t, 3, n)

	n, err = sink.PollWrite([]byte("def"))
	require.NoError(t, err)
	require.Equal(t, 3, n)
	require.Equal(t, []byte("abcdef"), sink.Bytes())
}

func TestSinkCapacityBackpressure(t *testing.T) {
	sink := fake.NewSink()
	sink.Capacity = 4

	n, err := sink.PollWrite([]byte("abcdef"))
	require.NoError(t, err)
	require.Equal(t, 4, n)

	_, err = sink.PollWrite([]byte("ef"))
	require.ErrorIs(t, err, api.ErrWouldBlock)

	require.NoError(t, sink.PollFlush())
	n, err = sink.PollWrite([]byte("ef"))
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Equal(t, []byte("abcdef"), sink.Bytes())
}
