// File: api/coop.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

// CoopGate is the cooperative budget gate consulted by long-running
// operations so that no single operation starves the driver.
//
// Proceed is called at the top of each drive iteration; a false return
// tells the operation to suspend before doing any work this turn.
// MadeProgress is called after each completed unit of work.
type CoopGate interface {
	Proceed() bool
	MadeProgress()
}
