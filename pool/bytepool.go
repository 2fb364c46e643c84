// File: pool/bytepool.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import (
	"sync"
	"sync/atomic"

	"github.com/momentics/hioload-io/api"
)

// BytePool hands out fixed-size byte buffers backed by sync.Pool.
// Buffers returned through Put are recycled; mis-sized buffers are
// dropped so the pool never hands out a short buffer.
type BytePool struct {
	pool  sync.Pool
	size  int
	alloc int64
	gets  int64
	inUse int64
}

// NewBytePool creates a pool of size-byte buffers.
func NewBytePool(size int) *BytePool {
	b := &BytePool{size: size}
	b.pool.New = func() any {
		atomic.AddInt64(&b.alloc, 1)
		return make([]byte, size)
	}
	return b
}

// Size returns the fixed buffer size of this pool.
func (b *BytePool) Size() int { return b.size }

// Get returns a buffer of exactly Size() bytes.
func (b *BytePool) Get() []byte {
	atomic.AddInt64(&b.gets, 1)
	atomic.AddInt64(&b.inUse, 1)
	return b.pool.Get().([]byte)
}

// Put returns a buffer to the pool. Buffers of the wrong size are
// discarded.
func (b *BytePool) Put(buf []byte) {
	atomic.AddInt64(&b.inUse, -1)
	if cap(buf) != b.size {
		return
	}
	b.pool.Put(buf[:b.size])
}

// Stats reports allocation and reuse counters.
func (b *BytePool) Stats() api.BytePoolStats {
	alloc := atomic.LoadInt64(&b.alloc)
	return api.BytePoolStats{
		TotalAlloc: alloc,
		TotalReuse: atomic.LoadInt64(&b.gets) - alloc,
		InUse:      atomic.LoadInt64(&b.inUse),
	}
}

var _ api.BytePool = (*BytePool)(nil)
