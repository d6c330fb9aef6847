// Copyright 2026 The ChatNet Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package chat implements the connection core of a chat client's network
// layer: establishing a long-lived duplex channel to a chat server,
// multiplexing request/response pairs over it by request id, and
// translating server-initiated frames into a typed event stream.
//
// The two-phase lifecycle is central: [Connect] yields a [PendingConnection]
// that has completed its handshake but has no listener, and therefore cannot
// deliver server-initiated events. A consumer promotes it to a running
// connection by calling [Gate.AttachListener]. [Gate] is the type that
// callers actually hold; it hides the pending/running distinction behind a
// single set of methods and guarantees the promotion happens exactly once.
package chat
