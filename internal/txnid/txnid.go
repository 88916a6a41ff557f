// Package txnid labels confirmed payments. The ids feed receipt filenames,
// so generators must not repeat within a run; a 4-digit random space is too
// collision-prone to qualify.
package txnid

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// Sequential issues monotonically increasing ids: 1000, 1001, ...
// Collision-free for the life of the process.
type Sequential struct {
	last atomic.Int64
}

// NewSequential starts the counter so the first id is 1000, keeping the
// familiar 4-digit look of printed receipts.
func NewSequential() *Sequential {
	g := &Sequential{}
	g.last.Store(999)
	return g
}

// Next returns the next id.
func (g *Sequential) Next() string {
	return fmt.Sprintf("%d", g.last.Add(1))
}

// Random issues ids from a 122-bit random space.
type Random struct{}

// Next returns a random id.
func (Random) Next() string {
	return uuid.NewString()
}
