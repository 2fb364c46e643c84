// File: driver/copy.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package driver

import (
	"github.com/momentics/hioload-io/api"
	"github.com/momentics/hioload-io/relay"
)

// Copy relays src into dst on d and waits for completion, returning the
// total bytes the sink accepted. On failure the partial total is still
// returned alongside the error.
func Copy(d *Driver, src api.PollReader, dst api.PollWriter) (uint64, error) {
	op := relay.NewCopy(src, dst)
	t, err := d.Submit(op)
	if err != nil {
		return 0, err
	}
	err = t.Wait()
	return op.Total(), err
}
