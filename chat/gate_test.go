// Copyright 2026 The ChatNet Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package chat

import (
	"context"
	"testing"
	"time"
)

func newPendingForTest() (*PendingConnection, *fakeTransport) {
	transport := newFakeTransport()
	pending := &PendingConnection{transport: transport, cfg: Config{}}
	return pending, transport
}

func TestGateSendBeforeAttachPanics(t *testing.T) {
	pending, _ := newPendingForTest()
	gate := NewGate(pending)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic sending before AttachListener")
		}
	}()
	gate.Send(context.Background(), Request{Method: "GET", URI: "/x"}, time.Second)
}

func TestGateDoubleAttachPanics(t *testing.T) {
	pending, _ := newPendingForTest()
	gate := NewGate(pending)
	gate.AttachListener(ListenerFunc{})

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on second AttachListener")
		}
	}()
	gate.AttachListener(ListenerFunc{})
}

func TestGateDisconnectIdempotentPending(t *testing.T) {
	pending, transport := newPendingForTest()
	gate := NewGate(pending)

	gate.Disconnect()
	gate.Disconnect()

	transport.mu.Lock()
	closed := transport.closed
	transport.mu.Unlock()
	if !closed {
		t.Fatal("expected transport closed after Disconnect")
	}
}

func TestGateDisconnectIdempotentRunning(t *testing.T) {
	pending, _ := newPendingForTest()
	gate := NewGate(pending)
	gate.AttachListener(ListenerFunc{})

	gate.Disconnect()
	gate.Disconnect()
}

func TestGateInfoValidInEitherPhase(t *testing.T) {
	pending, transport := newPendingForTest()
	transport.info = ConnectionInfo{Route: "wss://example.test"}
	gate := NewGate(pending)

	if got := gate.Info(); got.Route != "wss://example.test" {
		t.Fatalf("pending-phase Info: got route %q", got.Route)
	}

	gate.AttachListener(ListenerFunc{})
	if got := gate.Info(); got.Route != "wss://example.test" {
		t.Fatalf("running-phase Info: got route %q", got.Route)
	}
}
