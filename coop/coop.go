// File: coop/coop.go
// Package coop implements the cooperative budget gate contract.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// A gate decides whether a resumable operation may keep running inside
// the current resumption or must yield back to its driver. Budget is the
// production gate; Unconstrained is the no-op default for callers that
// drive an operation to completion themselves.

package coop

import (
	"sync/atomic"

	"github.com/momentics/hioload-io/api"
)

// DefaultBudget is the number of drive iterations a task may run per
// resumption before it is forced to yield.
const DefaultBudget = 128

// Unconstrained always allows progress. Its zero value is ready to use.
type Unconstrained struct {
	progress int64
}

func (u *Unconstrained) Proceed() bool { return true }

func (u *Unconstrained) MadeProgress() { atomic.AddInt64(&u.progress, 1) }

// Progress returns the number of completed work units observed.
func (u *Unconstrained) Progress() int64 { return atomic.LoadInt64(&u.progress) }

// Budget is a token-bucket gate: each Proceed consumes one token and
// denies once the bucket is empty, until Reset refills it. The driver
// calls Reset before every task resumption.
//
// Budget is owned by a single driver goroutine; no synchronization.
type Budget struct {
	size      int
	remaining int
	progress  int64
	denials   int64
}

// NewBudget creates a gate with n tokens per resumption.
// n <= 0 falls back to DefaultBudget.
func NewBudget(n int) *Budget {
	if n <= 0 {
		n = DefaultBudget
	}
	return &Budget{size: n, remaining: n}
}

func (b *Budget) Proceed() bool {
	if b.remaining == 0 {
		b.denials++
		return false
	}
	b.remaining--
	return true
}

func (b *Budget) MadeProgress() { b.progress++ }

// Reset refills the bucket for the next resumption.
func (b *Budget) Reset() { b.remaining = b.size }

// Progress returns the number of completed work units observed.
func (b *Budget) Progress() int64 { return b.progress }

// Denials returns how many times the gate forced a yield.
func (b *Budget) Denials() int64 { return b.denials }

var (
	_ api.CoopGate = (*Unconstrained)(nil)
	_ api.CoopGate = (*Budget)(nil)
)
