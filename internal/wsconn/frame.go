// Copyright 2026 The ChatNet Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package wsconn is a concrete framed duplex [chat.Transport] implementation
// over a websocket, the way the teacher SDK's own WebSocketClientTransport
// carries JSON-RPC messages as websocket text frames. DNS resolution, TLS
// setup, and proxy configuration are handled by the caller-supplied
// gorilla/websocket Dialer; this package only owns frame encoding and the
// request/response-vs-server-request discrimination chat.Transport needs.
package wsconn

import (
	"encoding/json"
	"fmt"

	"github.com/chatproto/chatnet/chat"
)

type frameKind string

const (
	kindRequest  frameKind = "request"
	kindResponse frameKind = "response"
)

// wireFrame is the JSON envelope carried by each websocket text frame.
type wireFrame struct {
	ID      uint64    `json:"id"`
	Kind    frameKind `json:"kind"`
	Method  string    `json:"method,omitempty"`
	URI     string    `json:"uri,omitempty"`
	Status  int       `json:"status,omitempty"`
	Reason  string    `json:"reason,omitempty"`
	Headers []string  `json:"headers,omitempty"`
	Body    []byte    `json:"body,omitempty"`
}

func encodeRequest(f chat.RequestFrame) ([]byte, error) {
	return json.Marshal(wireFrame{
		ID: f.ID, Kind: kindRequest, Method: f.Method, URI: f.URI,
		Headers: f.Headers, Body: f.Body,
	})
}

func encodeResponse(f chat.ResponseFrame) ([]byte, error) {
	return json.Marshal(wireFrame{
		ID: f.ID, Kind: kindResponse, Status: f.Status, Reason: f.Reason,
		Headers: f.Headers, Body: f.Body,
	})
}

func decode(data []byte) (chat.Incoming, error) {
	var f wireFrame
	if err := json.Unmarshal(data, &f); err != nil {
		return chat.Incoming{}, fmt.Errorf("wsconn: decoding frame: %w", err)
	}
	switch f.Kind {
	case kindRequest:
		return chat.Incoming{Request: &chat.RequestFrame{
			ID: f.ID, Method: f.Method, URI: f.URI, Headers: f.Headers, Body: f.Body,
		}}, nil
	case kindResponse:
		return chat.Incoming{Response: &chat.ResponseFrame{
			ID: f.ID, Status: f.Status, Reason: f.Reason, Headers: f.Headers, Body: f.Body,
		}}, nil
	default:
		return chat.Incoming{}, fmt.Errorf("wsconn: unknown frame kind %q", f.Kind)
	}
}
