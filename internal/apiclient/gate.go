package apiclient

import (
	"context"
	"sync"
	"time"
)

// DefaultReadyTimeout bounds how long a request waits for the identity layer.
const DefaultReadyTimeout = 3 * time.Second

// Gate holds requests back until the identity layer has finished loading.
// The ready flag only ever moves from false to true.
type Gate struct {
	mu      sync.Mutex
	ready   bool
	waiters []*waiter
}

// waiter is a one-shot latch released either by SetReady or by its own timer.
type waiter struct {
	once  sync.Once
	done  chan struct{}
	timer *time.Timer
}

func (w *waiter) release() {
	w.once.Do(func() { close(w.done) })
}

// NewGate returns a gate in the not-ready state.
func NewGate() *Gate {
	return &Gate{}
}

// Ready reports whether the identity layer has signalled readiness.
func (g *Gate) Ready() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.ready
}

// Pending returns the number of queued waiters.
func (g *Gate) Pending() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.waiters)
}

// SetReady marks the gate ready and releases every queued waiter.
// SetReady(false) is ignored: there is no way back to not-ready.
func (g *Gate) SetReady(ready bool) {
	if !ready {
		return
	}

	g.mu.Lock()
	if g.ready {
		g.mu.Unlock()
		return
	}
	g.ready = true
	waiters := g.waiters
	g.waiters = nil
	g.mu.Unlock()

	for _, w := range waiters {
		w.timer.Stop()
		w.release()
	}
}

// Wait blocks until the gate is ready, timeout elapses, or ctx is done.
// Running out of time is not an error; the caller proceeds anyway.
// A non-positive timeout means DefaultReadyTimeout.
func (g *Gate) Wait(ctx context.Context, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = DefaultReadyTimeout
	}

	g.mu.Lock()
	if g.ready {
		g.mu.Unlock()
		return nil
	}
	w := &waiter{done: make(chan struct{})}
	w.timer = time.AfterFunc(timeout, func() {
		g.remove(w)
		w.release()
	})
	g.waiters = append(g.waiters, w)
	g.mu.Unlock()

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		select {
		case <-w.done:
			return nil
		default:
		}
		w.timer.Stop()
		g.remove(w)
		w.release()
		return ctx.Err()
	}
}

func (g *Gate) remove(w *waiter) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i, q := range g.waiters {
		if q == w {
			g.waiters = append(g.waiters[:i], g.waiters[i+1:]...)
			return
		}
	}
}
