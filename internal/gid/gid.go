// File: internal/gid/gid.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package gid extracts the running goroutine's id from the runtime
// stack header. Used only for ownership checks; never for scheduling.
package gid

import (
	"bytes"
	"runtime"
	"strconv"
)

var prefix = []byte("goroutine ")

// ID returns the current goroutine's id.
//
// The header line of a single-goroutine stack dump is stable across Go
// releases: "goroutine N [state]:".
func ID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	s := bytes.TrimPrefix(buf[:n], prefix)
	i := bytes.IndexByte(s, ' ')
	if i < 0 {
		return 0
	}
	id, err := strconv.ParseUint(string(s[:i]), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
