// File: api/handle.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

// Handle is an opaque, cheaply-duplicable reference to a running driver
// instance. The current-context register stores handles without
// interpreting them; multiple goroutines may each install a duplicate of
// the same logical handle.
type Handle interface {
	// Spawn submits a resumable operation to the driver behind this
	// handle.
	Spawn(p Pollable) error

	// Name identifies the driver instance for stats and debugging.
	Name() string
}
