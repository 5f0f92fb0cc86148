// Package panel implements the four screen controllers. Each panel
// loads its data concurrently, publishes an immutable snapshot, and
// keeps the previous snapshot whenever a load fails. Activating a panel
// again cancels the in-flight load; a superseded load can never publish.
package panel

import (
	"context"
	"sync"
)

// activation tracks which load is current. begin cancels the previous
// load's context and hands out a generation number; publish-side code
// calls current to decide whether its result is still wanted.
type activation struct {
	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

func (a *activation) begin(parent context.Context) (context.Context, uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cancel != nil {
		a.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	a.cancel = cancel
	a.gen++
	return ctx, a.gen
}

func (a *activation) current(gen uint64) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.gen == gen
}

// deactivate cancels any in-flight load and bumps the generation so a
// racing load cannot publish afterwards.
func (a *activation) deactivate() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	a.gen++
}
