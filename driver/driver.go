// File: driver/driver.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package driver

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/eapache/queue"

	"github.com/momentics/hioload-io/affinity"
	"github.com/momentics/hioload-io/api"
	"github.com/momentics/hioload-io/coop"
	"github.com/momentics/hioload-io/current"
)

// Driver resumes submitted operations one at a time on its own
// goroutine. Concurrent relays each own their buffers, so no locking is
// needed inside operations; only the run queue is shared with
// submitters.
type Driver struct {
	name   string
	budget int
	pinCPU int
	reg    *current.Register

	mu   sync.Mutex
	runq *queue.Queue
	wake chan struct{}

	stopCh  chan struct{}
	running int32
	stopped int32
	closed  int32

	submitted   int64
	completed   int64
	failed      int64
	resumptions int64

	probes sync.Map // name -> func() any
}

// New creates a driver. Call Run on a dedicated goroutine to start it.
func New(opts ...Option) *Driver {
	d := &Driver{
		runq:   queue.New(),
		wake:   make(chan struct{}, 1),
		stopCh: make(chan struct{}),
	}
	defaultOptions(d)
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Submit enqueues op for resumption. The returned task completes when
// op's Poll returns nil and fails when it returns a non-would-block
// error or panics.
func (d *Driver) Submit(op api.Pollable) (*Task, error) {
	t := newTask(op)
	d.mu.Lock()
	// closed is checked under the queue lock so a submit racing
	// Shutdown either lands before the drain or is rejected; an
	// accepted task is always resolved.
	if atomic.LoadInt32(&d.closed) == 1 {
		d.mu.Unlock()
		return nil, api.ErrDriverClosed
	}
	d.runq.Add(t)
	d.mu.Unlock()
	atomic.AddInt64(&d.submitted, 1)
	select {
	case d.wake <- struct{}{}:
	default:
	}
	return t, nil
}

// Handle returns a cheap, freely duplicable reference to this driver.
func (d *Driver) Handle() api.Handle { return handle{d} }

// Run executes the resumption loop until Shutdown. It installs the
// driver's handle as the goroutine's current runtime handle for the
// duration of the loop, so operations can reach their driver through
// the current register.
func (d *Driver) Run() {
	if !atomic.CompareAndSwapInt32(&d.running, 0, 1) {
		return
	}
	defer atomic.StoreInt32(&d.stopped, 1)

	if d.pinCPU >= 0 {
		// Best effort: an unpinnable platform still runs, unpinned.
		_ = affinity.Pin(d.pinCPU)
	}

	if guard, ok := d.reg.TrySet(d.Handle()); ok {
		defer guard.Release()
	}

	gate := coop.NewBudget(d.budget)
	var backoff time.Duration
	for {
		select {
		case <-d.stopCh:
			return
		default:
		}

		t := d.next()
		if t == nil {
			backoff = 0
			select {
			case <-d.stopCh:
				return
			case <-d.wake:
			}
			continue
		}
		if d.resume(gate, t) {
			backoff = 0
			continue
		}

		// Unproductive resumption: back off before re-polling so a
		// queue of blocked tasks does not spin the loop hot. Any
		// progress or a new submit resets the backoff.
		if backoff == 0 {
			backoff = time.Microsecond
		} else if backoff < time.Millisecond {
			backoff *= 2
		}
		select {
		case <-d.stopCh:
			return
		case <-d.wake:
			backoff = 0
		case <-time.After(backoff):
		}
	}
}

// Shutdown stops the loop, waits for it to exit, and fails all queued
// tasks with api.ErrDriverClosed. Idempotent.
func (d *Driver) Shutdown() error {
	if !atomic.CompareAndSwapInt32(&d.closed, 0, 1) {
		return nil
	}
	close(d.stopCh)
	if atomic.LoadInt32(&d.running) == 1 {
		for atomic.LoadInt32(&d.stopped) == 0 {
			time.Sleep(time.Microsecond)
		}
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	for d.runq.Length() > 0 {
		t := d.runq.Remove().(*Task)
		t.err = api.ErrDriverClosed
		close(t.done)
	}
	return nil
}

func (d *Driver) next() *Task {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.runq.Length() == 0 {
		return nil
	}
	return d.runq.Remove().(*Task)
}

// resume runs one resumption and reports whether it moved the task
// forward: completion and failure always count, a suspension counts
// only when the task recorded progress through the gate.
func (d *Driver) resume(gate *coop.Budget, t *Task) bool {
	gate.Reset()
	atomic.AddInt64(&d.resumptions, 1)
	atomic.AddInt64(&t.resumptions, 1)

	before := gate.Progress()
	err := d.poll(gate, t)
	switch {
	case err == nil:
		atomic.AddInt64(&d.completed, 1)
		close(t.done)
		return true
	case errors.Is(err, api.ErrWouldBlock):
		d.mu.Lock()
		d.runq.Add(t)
		d.mu.Unlock()
		return gate.Progress() > before
	default:
		t.err = err
		atomic.AddInt64(&d.failed, 1)
		close(t.done)
		return true
	}
}

// poll runs one resumption, converting a panic into a task failure so a
// faulting operation aborts only itself, never the driver.
func (d *Driver) poll(gate api.CoopGate, t *Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task %s panicked: %v", t.id, r)
		}
	}()
	return t.op.Poll(gate)
}

// Stats returns a snapshot of driver counters plus registered probes.
func (d *Driver) Stats() map[string]any {
	d.mu.Lock()
	pending := d.runq.Length()
	d.mu.Unlock()

	m := map[string]any{
		"name":        d.name,
		"pending":     pending,
		"submitted":   atomic.LoadInt64(&d.submitted),
		"completed":   atomic.LoadInt64(&d.completed),
		"failed":      atomic.LoadInt64(&d.failed),
		"resumptions": atomic.LoadInt64(&d.resumptions),
	}
	d.probes.Range(func(k, v any) bool {
		m[k.(string)] = v.(func() any)()
		return true
	})
	return m
}

// RegisterDebugProbe exposes fn's result under name in Stats snapshots.
func (d *Driver) RegisterDebugProbe(name string, fn func() any) {
	d.probes.Store(name, fn)
}

// handle is the opaque reference stored in the current register.
type handle struct{ d *Driver }

func (h handle) Spawn(p api.Pollable) error {
	_, err := h.d.Submit(p)
	return err
}

func (h handle) Name() string { return h.d.name }
