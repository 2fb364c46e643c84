// Package pool
// Author: momentics <momentics@gmail.com>
//
// Reusable byte-buffer pooling for relay copy buffers and buffered sinks.
// See bytepool.go for the sync.Pool-backed implementation.
package pool
