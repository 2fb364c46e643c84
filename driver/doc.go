// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package driver runs resumable poll-mode operations on a single
// goroutine. Tasks are resumed round-robin from a FIFO run queue with a
// fresh cooperative budget per resumption, so long relays yield between
// chunks instead of monopolizing the loop. While the loop runs, the
// driver's handle is installed as the goroutine's current runtime
// handle.
package driver
