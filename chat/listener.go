// Copyright 2026 The ChatNet Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package chat

// Listener is the consumer contract for server-initiated events. Its
// methods are called in the order the translator produced the underlying
// events, which itself preserves wire order. ConnectionInterrupted is
// always the last call made to a given Listener; nothing is called on it
// afterward.
//
// Implementations should return quickly: the read loop calls these methods
// synchronously and does not read the next frame until the current call
// returns.
type Listener interface {
	ReceivedIncomingMessage(envelope []byte, timestamp uint64, ack *AckHandle)
	ReceivedQueueEmpty()
	ReceivedAlerts(alerts []string)
	ConnectionInterrupted(cause DisconnectCause)
}

// dispatch delivers one ServerEvent to l using the appropriate method.
func dispatch(l Listener, event ServerEvent) {
	switch e := event.(type) {
	case IncomingMessageEvent:
		l.ReceivedIncomingMessage(e.Envelope, e.ServerDeliveryTimestamp, e.Ack)
	case QueueEmptyEvent:
		l.ReceivedQueueEmpty()
	case AlertsEvent:
		l.ReceivedAlerts(e.Alerts)
	case StoppedEvent:
		l.ConnectionInterrupted(e.Cause)
	}
}

// ListenerFunc adapts four plain functions to the Listener interface, for
// callers that don't want to define a named type. A nil field is a no-op
// for that event kind.
type ListenerFunc struct {
	OnIncomingMessage func(envelope []byte, timestamp uint64, ack *AckHandle)
	OnQueueEmpty      func()
	OnAlerts          func(alerts []string)
	OnInterrupted     func(cause DisconnectCause)
}

func (f ListenerFunc) ReceivedIncomingMessage(envelope []byte, timestamp uint64, ack *AckHandle) {
	if f.OnIncomingMessage != nil {
		f.OnIncomingMessage(envelope, timestamp, ack)
	}
}

func (f ListenerFunc) ReceivedQueueEmpty() {
	if f.OnQueueEmpty != nil {
		f.OnQueueEmpty()
	}
}

func (f ListenerFunc) ReceivedAlerts(alerts []string) {
	if f.OnAlerts != nil {
		f.OnAlerts(alerts)
	}
}

func (f ListenerFunc) ConnectionInterrupted(cause DisconnectCause) {
	if f.OnInterrupted != nil {
		f.OnInterrupted(cause)
	}
}
