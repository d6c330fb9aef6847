// Copyright 2026 The ChatNet Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package chat

import "context"

// RequestFrame is the logical representation of one request carried over a
// [Transport], whether it originates locally (outbound to the server) or
// remotely (a server-initiated request delivered to the listener).
//
// Frame encoding is delegated entirely to the Transport implementation; the
// core only reads and writes these logical fields.
type RequestFrame struct {
	ID      uint64
	Method  string
	URI     string
	Headers []string // "name: value" pairs, in wire order
	Body    []byte
}

// ResponseFrame is the logical representation of one response carried over
// a [Transport].
type ResponseFrame struct {
	ID      uint64
	Status  int
	Reason  string
	Headers []string
	Body    []byte
}

// Transport is the framed duplex stream the core consumes. It is an
// external collaborator: establishing one (DNS, TLS, proxying, domain
// fronting) is out of scope for this package. See internal/wsconn for a
// concrete implementation over a websocket.
type Transport interface {
	// SendRequest writes an outbound request frame.
	SendRequest(ctx context.Context, frame RequestFrame) error
	// SendResponse writes a response to a previously received server
	// request frame, correlated by id.
	SendResponse(ctx context.Context, frame ResponseFrame) error
	// Receive blocks until a server-initiated request frame arrives, a
	// response to an outstanding outbound request arrives, or the transport
	// ends. The caller (the read loop) discriminates the two by which of
	// Incoming.Request and Incoming.Response is set.
	Receive(ctx context.Context) (Incoming, error)
	// Ping sends a transport-level keepalive. It carries no application
	// payload and has no response frame.
	Ping(ctx context.Context) error
	// Disconnect closes the transport gracefully. Idempotent.
	Disconnect() error
	// ConnectionInfo returns a snapshot of the negotiated route.
	ConnectionInfo() ConnectionInfo
}

// Incoming is one frame read off a Transport: either a server-initiated
// request or a response to a request this side sent.
type Incoming struct {
	Request  *RequestFrame
	Response *ResponseFrame
}

// ConnectionInfo is an opaque, clonable snapshot of a connection's route and
// negotiated parameters.
type ConnectionInfo struct {
	Route                string
	DomainFrontingEnabled bool
	LocalIdleTimeoutMS    int64
}

// Clone returns a value copy of the info.
func (c ConnectionInfo) Clone() ConnectionInfo { return c }

// Dialer resolves routes and establishes a framed Transport, yielding the
// transport and the negotiated connection info. It is the core's connector
// collaborator; concrete dialing (DNS, TLS, proxy configuration, domain
// fronting route enumeration) lives outside this package.
type Dialer interface {
	Dial(ctx context.Context, cfg Config) (Transport, ConnectionInfo, error)
}
