// Copyright 2026 The ChatNet Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package chat

import (
	"errors"
	"net/http"
	"sort"
	"strings"
)

// ErrRemoteDisconnect is the sentinel a [Transport] should wrap (via
// errors.Is) when it can positively identify that the remote end closed the
// connection cleanly, as opposed to an ambiguous read failure.
var ErrRemoteDisconnect = errors.New("chat: remote disconnected")

// errUnknownExit is used when a Transport's Receive returns a nil error but
// no frame either — a shape that should not happen, mirroring the source
// implementation's "unknown exit" finish reason.
var errUnknownExit = errors.New("chat: unexpected exit")

func classifyTermination(err error) DisconnectCause {
	switch {
	case errors.Is(err, ErrRemoteDisconnect):
		return DisconnectCause{Kind: RemoteError, Err: newSendError(SendErrorKindChannelClosed, nil)}
	case err == nil:
		return DisconnectCause{Kind: RemoteError, Err: newSendError(SendErrorKindTransport, errUnknownExit)}
	default:
		return DisconnectCause{Kind: RemoteError, Err: newSendError(SendErrorKindTransport, err)}
	}
}

// headerLines flattens an http.Header multimap into "name: value" wire
// lines, one per value, in a deterministic order.
func headerLines(h http.Header) []string {
	if len(h) == 0 {
		return nil
	}
	names := make([]string, 0, len(h))
	for name := range h {
		names = append(names, name)
	}
	sort.Strings(names)
	lines := make([]string, 0, len(h))
	for _, name := range names {
		for _, v := range h[name] {
			lines = append(lines, name+": "+v)
		}
	}
	return lines
}

// parseHeaderLines is the inverse of headerLines.
func parseHeaderLines(lines []string) http.Header {
	h := make(http.Header, len(lines))
	for _, line := range lines {
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		h.Add(strings.TrimSpace(name), strings.TrimSpace(value))
	}
	return h
}
