// Copyright 2026 The ChatNet Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package chat

import (
	"log/slog"
	"strconv"
	"strings"
)

// TimestampHeaderName is the fixed, case-insensitively matched header that
// carries the server's delivery timestamp for an incoming message.
const TimestampHeaderName = "x-signal-timestamp"

// ServerEvent is a typed, server-initiated occurrence delivered to a
// [Listener]. It is one of [QueueEmptyEvent], [IncomingMessageEvent],
// [AlertsEvent], or [StoppedEvent].
type ServerEvent interface {
	isServerEvent()
}

// QueueEmptyEvent signals that the server has delivered everything it had
// queued at connect time.
type QueueEmptyEvent struct{}

func (QueueEmptyEvent) isServerEvent() {}

// IncomingMessageEvent carries an opaque envelope delivered by the server.
// Envelope is delivered even when empty or otherwise malformed, so the
// consumer can still ack it and avoid redelivery; decryption happens
// outside this package.
type IncomingMessageEvent struct {
	RequestID               uint64
	Envelope                []byte
	ServerDeliveryTimestamp uint64
	Ack                     *AckHandle
}

func (IncomingMessageEvent) isServerEvent() {}

// AlertsEvent carries a batch of server-originated alert strings.
type AlertsEvent struct {
	Alerts []string
}

func (AlertsEvent) isServerEvent() {}

// StoppedEvent is the terminal event: no event is ever delivered to a
// [Listener] after this one.
type StoppedEvent struct {
	Cause DisconnectCause
}

func (StoppedEvent) isServerEvent() {}

// translate converts one raw server-request frame into a ServerEvent. It
// returns an error only for frames that can't be classified at all; per the
// routing table, that error is meant to be logged and the frame dropped,
// never to tear down the listener.
func translate(frame RequestFrame, sendAck ackSender) (ServerEvent, error) {
	if frame.Method != "PUT" {
		return nil, errUnexpectedVerb(frame.Method)
	}
	switch frame.URI {
	case "/api/v1/queue/empty":
		return QueueEmptyEvent{}, nil
	case "/api/v1/message":
		return incomingMessageFromFrame(frame, sendAck), nil
	case "":
		return nil, errMissingPath()
	default:
		return nil, errUnrecognizedPath(frame.URI)
	}
}

func incomingMessageFromFrame(frame RequestFrame, sendAck ackSender) IncomingMessageEvent {
	timestamp, found := lastTimestampHeader(frame.Headers)
	if !found {
		slog.Warn("server delivered message with no timestamp header", "header", TimestampHeaderName)
	}
	return IncomingMessageEvent{
		RequestID:               frame.ID,
		Envelope:                frame.Body,
		ServerDeliveryTimestamp: timestamp,
		Ack:                     newAckHandle(sendAck),
	}
}

// lastTimestampHeader returns the value of the *last* header matching
// TimestampHeaderName (case-insensitively), not the first. This is
// intentional: see the open question in the design notes about whether
// "latest redelivery wins" was deliberate. We preserve it rather than
// guessing otherwise.
func lastTimestampHeader(headers []string) (uint64, bool) {
	var (
		value uint64
		found bool
	)
	for _, h := range headers {
		name, v, ok := strings.Cut(h, ":")
		if !ok {
			continue
		}
		if !strings.EqualFold(strings.TrimSpace(name), TimestampHeaderName) {
			continue
		}
		parsed, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
		if err != nil {
			value, found = 0, false
			continue
		}
		value, found = parsed, true
	}
	return value, found
}

func stoppedFromDisconnect(cause DisconnectCause) StoppedEvent {
	return StoppedEvent{Cause: cause}
}
