// File: relay/copy_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package relay_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-io/api"
	"github.com/momentics/hioload-io/coop"
	"github.com/momentics/hioload-io/fake"
	"github.com/momentics/hioload-io/pool"
	"github.com/momentics/hioload-io/relay"
)

func TestCopyOperationResumesToCompletion(t *testing.T) {
	src := fake.NewSource().Text("first ").WouldBlock().Text("second").WouldBlock()
	sink := fake.NewSink()

	op := relay.NewCopy(src, sink)
	gate := &coop.Unconstrained{}

	polls := 0
	for {
		polls++
		require.Less(t, polls, 100)
		err := op.Poll(gate)
		if err == nil {
			break
		}
		require.ErrorIs(t, err, api.ErrWouldBlock)
	}

	require.Equal(t, uint64(12), op.Total())
	require.Equal(t, []byte("first second"), sink.Bytes())
	require.Greater(t, polls, 1)
}

func TestCopyAbandonedMidway(t *testing.T) {
	p := pool.NewBytePool(1024)
	src := fake.NewSource().Text("partial").WouldBlock().Text("never delivered")
	sink := fake.NewSink()

	op := relay.NewCopyWith(src, sink, relay.NewCopyBufferPool(p))
	require.ErrorIs(t, op.Poll(&coop.Unconstrained{}), api.ErrWouldBlock)

	// Cancellation is "stop resuming": releasing here must not leak.
	op.Release()
	require.Equal(t, int64(0), p.Stats().InUse)
	require.Equal(t, []byte("partial"), sink.Bytes())
}

func TestCopyPooledBufferRoundTrip(t *testing.T) {
	p := pool.NewBytePool(64)
	payload := bytes.Repeat([]byte("xyz"), 100)

	src := fake.NewSource().Chunk(payload)
	sink := fake.NewSink()

	op := relay.NewCopyWith(src, sink, relay.NewCopyBufferPool(p))
	gate := &coop.Unconstrained{}
	for {
		if err := op.Poll(gate); err == nil {
			break
		}
	}
	op.Release()

	require.Equal(t, payload, sink.Bytes())
	require.Equal(t, uint64(len(payload)), op.Total())
	require.Equal(t, int64(0), p.Stats().InUse)
}

func TestRunDrivesBlockingCallers(t *testing.T) {
	src := fake.NewSource().
		Text("run ").WouldBlock().
		Text("to ").WouldBlock().WouldBlock().
		Text("completion")
	sink := fake.NewSink()

	amt, err := relay.Run(src, sink)
	require.NoError(t, err)
	require.Equal(t, uint64(len("run to completion")), amt)
	require.Equal(t, []byte("run to completion"), sink.Bytes())
}

func TestRunPropagatesFault(t *testing.T) {
	src := fake.NewSource().Text("x")
	sink := fake.NewSink()
	sink.ZeroWrite = true

	amt, err := relay.Run(src, sink)
	require.ErrorIs(t, err, api.ErrWriteZero)
	require.Equal(t, uint64(0), amt)
}
