// Copyright 2026 The ChatNet Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package registration implements the registration/verification request
// codec: it serializes the fixed set of registration operations (creating a
// session, requesting and submitting a verification code, checking SVR2
// credentials, and registering an account) into chat.Request values and
// decodes chat.Response values per a strict, ordered rule set.
package registration

import (
	"fmt"
	"net/url"
)

// SessionID is an opaque, server-issued identifier for a registration
// attempt. It is reused across requests until the session reaches a
// terminal state.
type SessionID string

// ParseSessionID validates that s is safe to use as a URL path segment, the
// way it will be when interpolated into a request path. An invalid session
// id is a programming error upstream (the server never issues one), so
// ParseSessionID returning an error on a server-supplied value should be
// treated as a bug report, not routine validation.
func ParseSessionID(s string) (SessionID, error) {
	if s == "" {
		return "", fmt.Errorf("registration: empty session id")
	}
	if url.PathEscape(s) != s {
		return "", fmt.Errorf("registration: session id %q is not URL-segment-safe", s)
	}
	return SessionID(s), nil
}

// asURLPathSegment returns id pre-escaped for interpolation into a path.
func (id SessionID) asURLPathSegment() string {
	return url.PathEscape(string(id))
}

func (id SessionID) String() string { return string(id) }
