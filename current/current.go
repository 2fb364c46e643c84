// File: current/current.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package current

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/momentics/hioload-io/api"
	"github.com/momentics/hioload-io/internal/gid"
)

// cell holds one goroutine's installed handle and nesting depth. A cell
// is only ever touched by its owning goroutine, so its fields need no
// synchronization; only the map holding cells is shared.
type cell struct {
	handle   api.Handle
	depth    uint32
	poisoned bool
}

// Register maps goroutines to their handle cells. The zero value is not
// usable; construct with NewRegister. Most callers use the package-level
// default register.
type Register struct {
	cells  sync.Map // goroutine id -> *cell
	closed atomic.Bool
}

// NewRegister creates an empty register.
func NewRegister() *Register { return &Register{} }

// Close tears the register down. Afterwards TrySet reports
// unavailability and With returns api.ErrContextDestroyed. Intended for
// host shutdown; there is no reopen.
func (r *Register) Close() { r.closed.Store(true) }

// Guard restores the previously installed handle when released.
//
// A guard belongs to the goroutine that created it for its whole
// lifetime; releasing it elsewhere is a programming error and panics.
// Releases must mirror installs in exact reverse order.
type Guard struct {
	reg      *Register
	cell     *cell
	prev     api.Handle
	depth    uint32
	owner    uint64
	released bool
}

// TrySet installs h as the current handle for the calling goroutine and
// returns a guard that restores the previous handle.
//
// ok is false when the register has been torn down; that is the
// non-fatal "no context" condition, not a fault. Exhausting the nesting
// depth panics: runaway recursive installs are a programming error.
func (r *Register) TrySet(h api.Handle) (g *Guard, ok bool) {
	if r.closed.Load() {
		return nil, false
	}
	id := gid.ID()
	c := r.cellFor(id)
	if c.depth == math.MaxUint32 {
		panic("current: reached max handle nesting depth")
	}
	prev := c.handle
	c.handle = h
	c.depth++
	return &Guard{reg: r, cell: c, prev: prev, depth: c.depth, owner: id}, true
}

// With invokes f with the handle currently installed on the calling
// goroutine. It returns api.ErrNoContext when nothing is installed and
// api.ErrContextDestroyed when the register has been torn down; callers
// distinguish "nothing here" from "shutting down".
func (r *Register) With(f func(api.Handle)) error {
	if r.closed.Load() {
		return api.ErrContextDestroyed
	}
	v, ok := r.cells.Load(gid.ID())
	if !ok {
		return api.ErrNoContext
	}
	c := v.(*cell)
	if c.handle == nil {
		return api.ErrNoContext
	}
	f(c.handle)
	return nil
}

// Current returns the installed handle, or the same errors as With.
func (r *Register) Current() (api.Handle, error) {
	var h api.Handle
	if err := r.With(func(x api.Handle) { h = x }); err != nil {
		return nil, err
	}
	return h, nil
}

func (r *Register) cellFor(id uint64) *cell {
	if v, ok := r.cells.Load(id); ok {
		return v.(*cell)
	}
	// Only the owning goroutine creates its cell, so the store cannot
	// race with another writer for the same key.
	c := &cell{}
	r.cells.Store(id, c)
	return c
}

// Release restores the previous handle and decrements the nesting depth.
// Releasing twice is a no-op; the first release is the one well-defined
// teardown path.
//
// An out-of-order release poisons the cell and panics. If the cell is
// already poisoned a release is silently skipped: the original fault is
// still unwinding through outer guards' deferred releases, and a second
// panic would only mask it.
func (g *Guard) Release() {
	if g.released {
		return
	}
	if gid.ID() != g.owner {
		panic("current: guard released on a different goroutine than it was created on")
	}
	g.released = true

	c := g.cell
	if c.poisoned {
		return
	}
	if c.depth != g.depth {
		c.poisoned = true
		panic("current: guards released out of order; release must mirror install in reverse order")
	}

	c.handle = g.prev
	c.depth--
	if c.depth == 0 && c.handle == nil {
		g.reg.cells.Delete(g.owner)
	}
}

var def = NewRegister()

// Default returns the process-wide register.
func Default() *Register { return def }

// TrySet installs h on the default register.
func TrySet(h api.Handle) (*Guard, bool) { return def.TrySet(h) }

// With reads the current handle from the default register.
func With(f func(api.Handle)) error { return def.With(f) }

// Current returns the handle installed on the default register.
func Current() (api.Handle, error) { return def.Current() }
