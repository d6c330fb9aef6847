// Copyright 2026 The ChatNet Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package chat

import "context"

// ConnectAndAttach is a convenience for the common case where the caller
// already has a listener ready at connect time (e.g. the registration flow,
// which only cares about being told when the connection ends). It is
// equivalent to calling Connect followed by NewGate and AttachListener.
func ConnectAndAttach(ctx context.Context, dialer Dialer, cfg Config, listener Listener) (*Gate, error) {
	pending, err := Connect(ctx, dialer, cfg)
	if err != nil {
		return nil, err
	}
	gate := NewGate(pending)
	gate.AttachListener(listener)
	return gate, nil
}

// noopListener ignores every event except ConnectionInterrupted, which it
// reports through done. It's the shape of listener a short-lived session
// (like registration) needs: nothing to forward, just "are we still
// connected".
type noopListener struct {
	done chan<- DisconnectCause
}

func (l noopListener) ReceivedIncomingMessage([]byte, uint64, *AckHandle) {}
func (l noopListener) ReceivedQueueEmpty()                                {}
func (l noopListener) ReceivedAlerts([]string)                            {}
func (l noopListener) ConnectionInterrupted(cause DisconnectCause) {
	select {
	case l.done <- cause:
	default:
	}
}

// ConnectEphemeral establishes and fully wires a connection meant for a
// short request/response session with no server-initiated traffic of
// interest (registration, pre-auth verification). The returned channel
// receives the single terminal DisconnectCause and is then never written to
// again.
func ConnectEphemeral(ctx context.Context, dialer Dialer, cfg Config) (*Gate, <-chan DisconnectCause, error) {
	done := make(chan DisconnectCause, 1)
	gate, err := ConnectAndAttach(ctx, dialer, cfg, noopListener{done: done})
	if err != nil {
		return nil, nil, err
	}
	return gate, done, nil
}
