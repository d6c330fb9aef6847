// Copyright 2026 The ChatNet Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package chat

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/chatproto/chatnet/internal/envdebug"
)

// PendingConnection is a transport that has completed its handshake but has
// no attached listener. It cannot deliver server-initiated events; it can
// only be disconnected or queried for connection info. Callers normally
// don't hold one of these directly — see [Gate] — but it is exposed for
// connectors and tests that need to inspect the pre-listener state.
type PendingConnection struct {
	transport Transport
	cfg       Config
	info      ConnectionInfo

	mu         sync.Mutex
	disconnect bool
}

// Connect establishes a transport via dialer and returns the resulting
// PendingConnection. Callers attach a listener (promoting it to a running
// connection) via a [Gate].
func Connect(ctx context.Context, dialer Dialer, cfg Config) (*PendingConnection, error) {
	transport, info, err := dialer.Dial(ctx, cfg)
	if err != nil {
		return nil, &ConnectError{Err: err}
	}
	return &PendingConnection{transport: transport, cfg: cfg, info: info}, nil
}

// Disconnect gracefully closes the underlying transport. Idempotent.
func (p *PendingConnection) Disconnect() error {
	p.mu.Lock()
	already := p.disconnect
	p.disconnect = true
	p.mu.Unlock()
	if already {
		return nil
	}
	return p.transport.Disconnect()
}

// ConnectionInfo returns a snapshot of the connection's route.
func (p *PendingConnection) ConnectionInfo() ConnectionInfo {
	return p.transport.ConnectionInfo()
}

type requestOutcome struct {
	response ResponseFrame
}

// RunningConnection is a fully wired connection with an attached listener:
// it multiplexes outbound requests and drives a background read loop that
// demultiplexes responses by request id and translates server-initiated
// frames into events delivered to the listener.
//
// Callers don't construct one directly; see [Gate.AttachListener].
type RunningConnection struct {
	transport Transport
	cfg       Config
	listener  Listener

	nextID atomic.Uint64
	mu     sync.Mutex
	// outstanding tracks requests awaiting a response, keyed by id.
	outstanding map[uint64]chan requestOutcome

	closed    chan struct{}
	closeOnce sync.Once
	cause     DisconnectCause
	causeOnce sync.Once

	keepalive *rate.Limiter
	idleReset chan struct{}

	remoteIdleReset chan struct{}
}

func newRunningConnection(pending *PendingConnection, listener Listener) *RunningConnection {
	c := &RunningConnection{
		transport:   pending.transport,
		cfg:         pending.cfg,
		listener:    listener,
		outstanding:     make(map[uint64]chan requestOutcome),
		closed:          make(chan struct{}),
		idleReset:       make(chan struct{}, 1),
		remoteIdleReset: make(chan struct{}, 1),
	}
	c.nextID.Store(pending.cfg.InitialRequestID)
	if pending.cfg.LocalIdleTimeout > 0 {
		c.keepalive = rate.NewLimiter(rate.Every(pending.cfg.LocalIdleTimeout), 1)
	}
	go c.readLoop()
	if pending.cfg.LocalIdleTimeout > 0 && envdebug.Value("disablekeepalive") == "" {
		go c.idleLoop()
	}
	if pending.cfg.RemoteIdleDisconnectTimeout > 0 {
		go c.remoteIdleLoop()
	}
	return c
}

// Send assigns a monotonically increasing request id, writes the request,
// and parks until a matching response arrives, timeout elapses, or the
// connection terminates.
func (c *RunningConnection) Send(ctx context.Context, req Request, timeout time.Duration) (Response, error) {
	select {
	case <-c.closed:
		return Response{}, newSendError(SendErrorKindChannelClosed, nil)
	default:
	}

	id := c.nextID.Add(1) - 1
	outcome := make(chan requestOutcome, 1)
	c.mu.Lock()
	c.outstanding[id] = outcome
	c.mu.Unlock()

	c.noteOutboundActivity()

	frame := RequestFrame{
		ID:      id,
		Method:  req.Method,
		URI:     req.URI,
		Headers: headerLines(req.Header),
		Body:    req.Body,
	}
	if err := c.transport.SendRequest(ctx, frame); err != nil {
		c.dropOutstanding(id)
		return Response{}, newSendError(SendErrorKindTransport, err)
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case o := <-outcome:
		return Response{
			Status: o.response.Status,
			Reason: o.response.Reason,
			Header: parseHeaderLines(o.response.Headers),
			Body:   o.response.Body,
		}, nil
	case <-timer.C:
		// Abandoned: no cancellation is sent to the server. If a response
		// arrives later it will find no outstanding entry and be discarded.
		c.dropOutstanding(id)
		return Response{}, newSendError(SendErrorKindTimeout, nil)
	case <-ctx.Done():
		c.dropOutstanding(id)
		return Response{}, newSendError(SendErrorKindTimeout, ctx.Err())
	case <-c.closed:
		return Response{}, newSendError(SendErrorKindChannelClosed, c.cause.Err)
	}
}

func (c *RunningConnection) dropOutstanding(id uint64) {
	c.mu.Lock()
	delete(c.outstanding, id)
	c.mu.Unlock()
}

func (c *RunningConnection) noteOutboundActivity() {
	select {
	case c.idleReset <- struct{}{}:
	default:
	}
}

func (c *RunningConnection) noteInboundActivity() {
	select {
	case c.remoteIdleReset <- struct{}{}:
	default:
	}
}

// Disconnect initiates graceful shutdown: it records LocalDisconnect as the
// cause and closes the transport, so the read loop observes termination with
// LocalDisconnect, and all outstanding requests resolve with a
// channel-closed error.
func (c *RunningConnection) Disconnect() {
	c.finish(DisconnectCause{Kind: LocalDisconnect}, true)
}

func (c *RunningConnection) finish(cause DisconnectCause, closeTransport bool) DisconnectCause {
	c.causeOnce.Do(func() {
		c.cause = cause
	})
	if closeTransport {
		if err := c.transport.Disconnect(); err != nil {
			slog.Debug("chat: transport disconnect error", "error", err)
		}
	}
	c.closeOnce.Do(func() {
		close(c.closed)
	})
	return c.cause
}

// ConnectionInfo returns a snapshot of the connection's route.
func (c *RunningConnection) ConnectionInfo() ConnectionInfo {
	return c.transport.ConnectionInfo()
}

func (c *RunningConnection) readLoop() {
	ctx := context.Background()
	for {
		incoming, err := c.transport.Receive(ctx)
		if err != nil {
			c.terminate(err)
			return
		}
		c.noteInboundActivity()
		switch {
		case incoming.Response != nil:
			c.resolve(*incoming.Response)
		case incoming.Request != nil:
			c.handleServerRequest(*incoming.Request)
		default:
			// Neither a frame nor an error: the "unknown exit" shape.
			c.terminate(nil)
			return
		}
	}
}

func (c *RunningConnection) resolve(frame ResponseFrame) {
	c.mu.Lock()
	ch, ok := c.outstanding[frame.ID]
	if ok {
		delete(c.outstanding, frame.ID)
	}
	c.mu.Unlock()
	if !ok {
		// No outstanding request (already timed out, or a stray frame);
		// the response is discarded per spec.
		return
	}
	select {
	case ch <- requestOutcome{response: frame}:
	default:
	}
}

func (c *RunningConnection) handleServerRequest(frame RequestFrame) {
	sendAck := func(status int) error {
		c.noteOutboundActivity()
		return c.transport.SendResponse(context.Background(), ResponseFrame{
			ID:     frame.ID,
			Status: status,
		})
	}
	event, err := translate(frame, sendAck)
	if err != nil {
		slog.Error("chat: dropping unrecognized server request", "error", err)
		return
	}
	dispatch(c.listener, event)
}

// terminate is called once from the read loop when the transport's Receive
// returns an error (remote close, idle timeout, protocol error), or returns
// neither a frame nor an error (err is then nil). If a local
// Disconnect already raced ahead and recorded LocalDisconnect, that cause
// wins; classifyTermination's result is only used when no cause was
// recorded yet.
func (c *RunningConnection) terminate(err error) {
	candidate := classifyTermination(err)
	final := c.finish(candidate, false)
	c.failOutstanding()
	dispatch(c.listener, stoppedFromDisconnect(final))
}

// failOutstanding clears the outstanding-request table. It does not need to
// wake blocked Send calls itself: closing c.closed (done by finish) already
// does that, and Send reads the terminal error from c.cause rather than
// from a fabricated response.
func (c *RunningConnection) failOutstanding() {
	c.mu.Lock()
	c.outstanding = make(map[uint64]chan requestOutcome)
	c.mu.Unlock()
}

func (c *RunningConnection) idleLoop() {
	timer := time.NewTimer(c.cfg.LocalIdleTimeout)
	defer timer.Stop()
	for {
		select {
		case <-c.closed:
			return
		case <-c.idleReset:
			if !timer.Stop() {
				<-timer.C
			}
			timer.Reset(c.cfg.LocalIdleTimeout)
		case <-timer.C:
			if c.keepalive.Allow() {
				if err := c.transport.Ping(context.Background()); err != nil {
					slog.Debug("chat: keepalive ping failed", "error", err)
				}
			}
			timer.Reset(c.cfg.LocalIdleTimeout)
		}
	}
}

// remoteIdleLoop watches for inbound silence: if no frame arrives within
// RemoteIdleDisconnectTimeout, the connection is treated as disconnected
// even though the transport never reported an error itself (a wedged
// remote, not a closed one). It mirrors Disconnect's shutdown path rather
// than terminate's: the transport hasn't failed, so closing it here is what
// produces the Receive error that unwinds readLoop and delivers the single
// terminal StoppedEvent.
func (c *RunningConnection) remoteIdleLoop() {
	timer := time.NewTimer(c.cfg.RemoteIdleDisconnectTimeout)
	defer timer.Stop()
	for {
		select {
		case <-c.closed:
			return
		case <-c.remoteIdleReset:
			if !timer.Stop() {
				<-timer.C
			}
			timer.Reset(c.cfg.RemoteIdleDisconnectTimeout)
		case <-timer.C:
			c.finish(DisconnectCause{Kind: RemoteError, Err: errRemoteIdleTimeout}, true)
			return
		}
	}
}
