// Copyright 2026 The ChatNet Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package chat

import (
	"encoding/base64"
	"time"
)

// Config holds the parameters a connector negotiates before a connection is
// established. None of it is persisted across process restarts.
type Config struct {
	// LocalIdleTimeout is how long the connection can go without sending
	// anything before a keepalive ping is sent.
	LocalIdleTimeout time.Duration
	// RemoteIdleDisconnectTimeout is how long the connection can go without
	// receiving anything before it is treated as disconnected.
	RemoteIdleDisconnectTimeout time.Duration
	// InitialRequestID is the first id assigned to an outbound request,
	// typically 0.
	InitialRequestID uint64
	// EnableDomainFronting selects an alternate route family; opaque to the
	// core beyond route selection.
	EnableDomainFronting bool
	// EnforceMinimumTLS rejects routes that don't meet the minimum TLS
	// version policy.
	EnforceMinimumTLS bool
	// ConfirmationHeaderName is an optional per-environment header name used
	// by the transport handshake; empty means "none".
	ConfirmationHeaderName string
}

// AuthenticatedChatHeaders carries the credentials and feature flags used to
// establish an authenticated connection.
type AuthenticatedChatHeaders struct {
	Auth           Auth
	ReceiveStories bool
}

// Auth is a username/password pair sent as HTTP Basic authentication.
type Auth struct {
	Username string
	Password string
}

// Header returns the "Authorization" header name and its "Basic ..." value.
func (a Auth) Header() (name, value string) {
	token := base64.StdEncoding.EncodeToString([]byte(a.Username + ":" + a.Password))
	return "Authorization", "Basic " + token
}
