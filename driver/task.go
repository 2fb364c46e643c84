// File: driver/task.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package driver

import (
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/momentics/hioload-io/api"
)

// Task tracks one submitted operation through its resumptions.
type Task struct {
	id          uuid.UUID
	op          api.Pollable
	done        chan struct{}
	err         error
	resumptions int64
}

func newTask(op api.Pollable) *Task {
	return &Task{id: uuid.New(), op: op, done: make(chan struct{})}
}

// ID returns the task's unique id, as used in stats and debug probes.
func (t *Task) ID() uuid.UUID { return t.id }

// Done is closed when the task completes or fails.
func (t *Task) Done() <-chan struct{} { return t.done }

// Err reports the failure cause; call only after Done is closed.
// nil means the task completed.
func (t *Task) Err() error { return t.err }

// Resumptions returns how many times the driver has resumed this task.
func (t *Task) Resumptions() int64 { return atomic.LoadInt64(&t.resumptions) }

// Wait blocks until the task finishes and returns its error.
func (t *Task) Wait() error {
	<-t.done
	return t.err
}
