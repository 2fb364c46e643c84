// File: affinity/affinity.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package affinity pins the calling goroutine's OS thread to a CPU.
// Drivers use it to keep a hot resumption loop on one core.
package affinity

// Pin locks the calling goroutine to its OS thread and binds that
// thread to the given CPU. Returns api.ErrNotSupported on platforms
// without affinity control.
func Pin(cpu int) error { return pin(cpu) }
