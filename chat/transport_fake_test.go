// Copyright 2026 The ChatNet Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package chat

import (
	"context"
	"errors"
	"sync"
)

// fakeTransport is an in-memory Transport for exercising RunningConnection
// without a real socket. Tests push responses/server-requests onto incoming
// and observe what was written onto sent.
type fakeTransport struct {
	mu     sync.Mutex
	closed bool

	incoming chan Incoming
	sent     chan RequestFrame
	acked    chan ResponseFrame

	pingErr error
	info    ConnectionInfo
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		incoming: make(chan Incoming, 16),
		sent:     make(chan RequestFrame, 16),
		acked:    make(chan ResponseFrame, 16),
	}
}

func (f *fakeTransport) SendRequest(ctx context.Context, frame RequestFrame) error {
	f.mu.Lock()
	closed := f.closed
	f.mu.Unlock()
	if closed {
		return errors.New("fakeTransport: closed")
	}
	f.sent <- frame
	return nil
}

func (f *fakeTransport) SendResponse(ctx context.Context, frame ResponseFrame) error {
	f.acked <- frame
	return nil
}

func (f *fakeTransport) Receive(ctx context.Context) (Incoming, error) {
	select {
	case in, ok := <-f.incoming:
		if !ok {
			return Incoming{}, ErrRemoteDisconnect
		}
		return in, nil
	case <-ctx.Done():
		return Incoming{}, ctx.Err()
	}
}

func (f *fakeTransport) Ping(ctx context.Context) error { return f.pingErr }

func (f *fakeTransport) Disconnect() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.closed {
		f.closed = true
		close(f.incoming)
	}
	return nil
}

func (f *fakeTransport) ConnectionInfo() ConnectionInfo { return f.info.Clone() }

// pushResponse delivers a response frame as if read off the wire.
func (f *fakeTransport) pushResponse(frame ResponseFrame) {
	f.incoming <- Incoming{Response: &frame}
}

// pushRequest delivers a server-initiated request frame as if read off the
// wire.
func (f *fakeTransport) pushRequest(frame RequestFrame) {
	f.incoming <- Incoming{Request: &frame}
}

var _ Transport = (*fakeTransport)(nil)
