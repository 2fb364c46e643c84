// File: driver/options.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package driver

import (
	"github.com/momentics/hioload-io/coop"
	"github.com/momentics/hioload-io/current"
)

// Option configures a Driver at construction.
type Option func(*Driver)

// WithName sets the driver name reported by its handle and stats.
func WithName(name string) Option {
	return func(d *Driver) { d.name = name }
}

// WithBudget sets the per-resumption cooperative budget.
func WithBudget(n int) Option {
	return func(d *Driver) { d.budget = n }
}

// WithPinnedCPU pins the driver goroutine's OS thread to cpu.
func WithPinnedCPU(cpu int) Option {
	return func(d *Driver) { d.pinCPU = cpu }
}

// WithRegister installs the driver handle on reg instead of the default
// register. Mainly for tests that need an isolated register.
func WithRegister(reg *current.Register) Option {
	return func(d *Driver) { d.reg = reg }
}

func defaultOptions(d *Driver) {
	d.name = "hioload-io"
	d.budget = coop.DefaultBudget
	d.pinCPU = -1
	d.reg = current.Default()
}
