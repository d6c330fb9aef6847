// Copyright 2026 The ChatNet Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package chat

import "testing"

func TestTranslateRoutingTable(t *testing.T) {
	noop := ackSender(func(int) error { return nil })

	cases := []struct {
		name    string
		frame   RequestFrame
		wantErr bool
		wantType ServerEvent
	}{
		{name: "queue empty", frame: RequestFrame{Method: "PUT", URI: "/api/v1/queue/empty"}, wantType: QueueEmptyEvent{}},
		{name: "incoming message", frame: RequestFrame{Method: "PUT", URI: "/api/v1/message"}, wantType: IncomingMessageEvent{}},
		{name: "missing path", frame: RequestFrame{Method: "PUT", URI: ""}, wantErr: true},
		{name: "unrecognized path", frame: RequestFrame{Method: "PUT", URI: "/api/v1/unknown"}, wantErr: true},
		{name: "unexpected verb", frame: RequestFrame{Method: "GET", URI: "/api/v1/message"}, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			event, err := translate(tc.frame, noop)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			switch tc.wantType.(type) {
			case QueueEmptyEvent:
				if _, ok := event.(QueueEmptyEvent); !ok {
					t.Fatalf("got %T, want QueueEmptyEvent", event)
				}
			case IncomingMessageEvent:
				if _, ok := event.(IncomingMessageEvent); !ok {
					t.Fatalf("got %T, want IncomingMessageEvent", event)
				}
			}
		})
	}
}

func TestLastTimestampHeaderWins(t *testing.T) {
	headers := []string{
		"X-Signal-Timestamp: 100",
		"Other-Header: ignored",
		"x-signal-timestamp: 200",
	}
	got, found := lastTimestampHeader(headers)
	if !found {
		t.Fatal("expected a timestamp to be found")
	}
	if got != 200 {
		t.Fatalf("expected the *last* matching header to win, got %d", got)
	}
}

func TestLastTimestampHeaderMissing(t *testing.T) {
	if _, found := lastTimestampHeader([]string{"Other: 1"}); found {
		t.Fatal("expected not found")
	}
}

func TestIncomingMessageFromFrameWarnsButStillDelivers(t *testing.T) {
	frame := RequestFrame{ID: 7, Body: []byte("envelope"), Method: "PUT", URI: "/api/v1/message"}
	event, err := translate(frame, func(int) error { return nil })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	msg, ok := event.(IncomingMessageEvent)
	if !ok {
		t.Fatalf("got %T, want IncomingMessageEvent", event)
	}
	if msg.ServerDeliveryTimestamp != 0 {
		t.Fatalf("expected zero timestamp with no header, got %d", msg.ServerDeliveryTimestamp)
	}
	if msg.Ack == nil {
		t.Fatal("expected a non-nil ack handle even with no timestamp")
	}
}
