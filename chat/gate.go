// Copyright 2026 The ChatNet Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package chat

import (
	"context"
	"sync"
	"time"
)

type gateState int

const (
	gatePending gateState = iota
	gateRunning
	gateEvicted
)

// Gate is the handle callers actually hold: it presents Send/Disconnect/Info
// regardless of whether a listener has been attached yet, and guarantees
// the pending-to-running promotion happens exactly once.
//
// Gate uses a multiple-reader/single-writer discipline: the writer lock is
// taken exactly once, for the duration of AttachListener's promotion (which
// does no I/O), and every other operation is a reader. gateEvicted is a
// transient state that must never be observed outside the write-locked
// promotion critical section.
type Gate struct {
	mu      sync.RWMutex
	state   gateState
	pending *PendingConnection
	running *RunningConnection
}

// NewGate wraps a just-established PendingConnection in a Gate.
func NewGate(pending *PendingConnection) *Gate {
	return &Gate{state: gatePending, pending: pending}
}

// AttachListener promotes the gate from pending to running, wiring listener
// to receive all subsequent server-initiated events. Calling it a second
// time is a programming error and panics, matching the "attach listener
// twice" fatal precondition.
func (g *Gate) AttachListener(listener Listener) {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch g.state {
	case gateRunning:
		panic("chat: listener already attached")
	case gateEvicted:
		panic("chat: gate reentered during promotion")
	}

	pending := g.pending
	g.pending = nil
	g.state = gateEvicted

	g.running = newRunningConnection(pending, listener)
	g.state = gateRunning
}

// Send writes req and waits for its response, a timeout, or connection
// termination. Calling Send before AttachListener is a programming error
// and panics.
func (g *Gate) Send(ctx context.Context, req Request, timeout time.Duration) (Response, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if g.state != gateRunning {
		panic("chat: send before listener attached")
	}
	return g.running.Send(ctx, req, timeout)
}

// Disconnect is always safe and idempotent, in either phase.
func (g *Gate) Disconnect() {
	g.mu.RLock()
	defer g.mu.RUnlock()

	switch g.state {
	case gateRunning:
		g.running.Disconnect()
	case gatePending:
		_ = g.pending.Disconnect()
	}
}

// Info returns a snapshot of the connection's route, valid in either phase.
func (g *Gate) Info() ConnectionInfo {
	g.mu.RLock()
	defer g.mu.RUnlock()

	switch g.state {
	case gateRunning:
		return g.running.ConnectionInfo()
	case gatePending:
		return g.pending.ConnectionInfo()
	default:
		panic("unreachable: evicted state observed outside promotion")
	}
}
