// Copyright 2026 The ChatNet Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package chat

import "sync/atomic"

// ackSender sends a status code back to the server for one specific
// incoming request.
type ackSender func(status int) error

// AckHandle is a single-use token delivered alongside an
// [IncomingMessageEvent]. Calling Take a second time is a safe no-op that
// returns ok=false; never calling it is also safe, in the sense that the
// server will simply redeliver the message after its own timeout — that is
// correct behavior, not a bug, so a consumer that can't ack (e.g. a
// malformed envelope it couldn't decrypt) should still call Take and fire
// some status to prevent redelivery storms, but isn't required to.
type AckHandle struct {
	fn atomic.Pointer[ackSender]
}

func newAckHandle(fn ackSender) *AckHandle {
	h := &AckHandle{}
	h.fn.Store(&fn)
	return h
}

// Take removes and returns the underlying sender. It succeeds at most once
// across the lifetime of the handle; the second and subsequent calls return
// ok=false.
func (h *AckHandle) Take() (send func(status int) error, ok bool) {
	p := h.fn.Swap(nil)
	if p == nil {
		return nil, false
	}
	return *p, true
}
