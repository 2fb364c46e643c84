// File: api/pool.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

// BytePool defines a reusable fixed-size buffer pool.
type BytePool interface {
	Get() []byte
	Put([]byte)
}

// BytePoolStats aggregates buffer allocation/reuse counters.
type BytePoolStats struct {
	TotalAlloc int64
	TotalReuse int64
	InUse      int64
}
