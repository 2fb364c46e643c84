// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package api defines the poll-mode contracts shared by every hioload-io
// component: non-blocking readable/writable capabilities, the cooperative
// budget gate, the resumable operation contract, and the opaque runtime
// handle consumed by the current-context register.
package api
