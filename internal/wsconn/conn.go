// Copyright 2026 The ChatNet Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package wsconn

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/chatproto/chatnet/chat"
	"github.com/chatproto/chatnet/internal/netutil"
)

// Conn adapts a *websocket.Conn to chat.Transport.
type Conn struct {
	conn *websocket.Conn
	info chat.ConnectionInfo

	writeMu   sync.Mutex
	closeOnce sync.Once
}

var _ chat.Transport = (*Conn)(nil)

// New wraps an already-established websocket connection.
func New(conn *websocket.Conn, info chat.ConnectionInfo) *Conn {
	return &Conn{conn: conn, info: info}
}

func (c *Conn) SendRequest(ctx context.Context, f chat.RequestFrame) error {
	data, err := encodeRequest(f)
	if err != nil {
		return err
	}
	return c.write(ctx, data)
}

func (c *Conn) SendResponse(ctx context.Context, f chat.ResponseFrame) error {
	data, err := encodeResponse(f)
	if err != nil {
		return err
	}
	return c.write(ctx, data)
}

func (c *Conn) write(ctx context.Context, data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if deadline, ok := ctx.Deadline(); ok {
		_ = c.conn.SetWriteDeadline(deadline)
		defer c.conn.SetWriteDeadline(time.Time{})
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("wsconn: write: %w", err)
	}
	return nil
}

func (c *Conn) Ping(ctx context.Context) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	deadline := time.Now().Add(10 * time.Second)
	if d, ok := ctx.Deadline(); ok {
		deadline = d
	}
	if err := c.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
		return fmt.Errorf("wsconn: ping: %w", err)
	}
	return nil
}

func (c *Conn) Receive(ctx context.Context) (chat.Incoming, error) {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			c.conn.Close()
		case <-done:
		}
	}()

	messageType, data, err := c.conn.ReadMessage()
	if err != nil {
		if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
			return chat.Incoming{}, chat.ErrRemoteDisconnect
		}
		return chat.Incoming{}, fmt.Errorf("wsconn: read: %w", err)
	}
	if messageType != websocket.TextMessage {
		return chat.Incoming{}, fmt.Errorf("wsconn: unexpected message type %d", messageType)
	}
	return decode(data)
}

func (c *Conn) Disconnect() error {
	var err error
	c.closeOnce.Do(func() {
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		err = c.conn.Close()
	})
	return err
}

func (c *Conn) ConnectionInfo() chat.ConnectionInfo {
	return c.info.Clone()
}

// Dialer dials one of a list of candidate routes (direct routes first,
// domain-fronted alternates after, if enabled) and returns the first
// established Conn. It is the out-of-core collaborator responsible for
// everything chat.Dialer leaves unspecified: TLS, proxying, and route
// selection.
type Dialer struct {
	// DirectRoutes are WebSocket URLs tried first.
	DirectRoutes []string
	// FrontedRoutes are tried only when cfg.EnableDomainFronting is true and
	// every direct route has failed.
	FrontedRoutes []string
	// WSDialer is the underlying gorilla/websocket dialer; a default is used
	// if nil.
	WSDialer *websocket.Dialer
	// Header carries additional handshake headers (e.g. authentication for
	// an authenticated chat connection).
	Header http.Header
}

var _ chat.Dialer = (*Dialer)(nil)

func (d *Dialer) Dial(ctx context.Context, cfg Config) (chat.Transport, chat.ConnectionInfo, error) {
	dialer := d.WSDialer
	if dialer == nil {
		dialer = websocket.DefaultDialer
	}

	routes := d.DirectRoutes
	if cfg.EnableDomainFronting {
		routes = append(append([]string{}, routes...), d.FrontedRoutes...)
	}
	if len(routes) == 0 {
		return nil, chat.ConnectionInfo{}, chat.ErrInvalidConnectionConfiguration
	}

	var lastErr error
	for _, route := range routes {
		// Loopback routes (local test servers) are exempt from the minimum
		// TLS policy: enforcing wss:// there would make it impossible to
		// dial a plain-ws:// server started in-process for a test.
		loopback := isLoopbackRoute(route)
		if cfg.EnforceMinimumTLS && !loopback && !strings.HasPrefix(route, "wss://") {
			lastErr = fmt.Errorf("wsconn: route %q does not meet minimum TLS policy", route)
			continue
		}
		if !loopback && dialer.TLSClientConfig != nil && dialer.TLSClientConfig.MinVersion < tls.VersionTLS12 && cfg.EnforceMinimumTLS {
			lastErr = errors.New("wsconn: dialer TLS config below minimum policy")
			continue
		}
		conn, _, err := dialer.DialContext(ctx, route, d.Header)
		if err != nil {
			lastErr = err
			continue
		}
		info := chat.ConnectionInfo{
			Route:                 route,
			DomainFrontingEnabled: cfg.EnableDomainFronting,
			LocalIdleTimeoutMS:    cfg.LocalIdleTimeout.Milliseconds(),
		}
		return New(conn, info), info, nil
	}
	if lastErr == nil {
		lastErr = errors.New("wsconn: no route available")
	}
	return nil, chat.ConnectionInfo{}, lastErr
}

// Config is a type alias: it is exactly chat.Config, named here only so
// Dial's signature reads without a package-qualified parameter type for the
// common case.
type Config = chat.Config

// isLoopbackRoute reports whether route's host is a loopback address,
// stripping the scheme first since netutil.IsLoopback expects a bare
// "host" or "host:port".
func isLoopbackRoute(route string) bool {
	host := route
	if i := strings.Index(host, "://"); i >= 0 {
		host = host[i+3:]
	}
	if i := strings.IndexAny(host, "/?#"); i >= 0 {
		host = host[:i]
	}
	return netutil.IsLoopback(host)
}
