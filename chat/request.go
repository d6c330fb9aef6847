// Copyright 2026 The ChatNet Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package chat

import (
	"fmt"
	"net/http"
	"net/url"
)

// Request is an application-level request sent over a [Gate]. It is
// immutable once handed to Send: callers should not mutate Header or Body
// concurrently with a Send call.
type Request struct {
	// Method is an HTTP verb, e.g. "GET", "PUT", "POST", "PATCH".
	Method string
	// URI is a syntactically valid path-and-query, e.g.
	// "/v1/verification/session/abc?x=1".
	URI string
	// Header is a case-insensitive, possibly-repeated header multimap.
	Header http.Header
	// Body is the optional request body.
	Body []byte
}

// NewRequest builds a Request, validating that method is a syntactically
// valid HTTP verb and uri is a syntactically valid path-and-query.
func NewRequest(method, uri string, header http.Header, body []byte) (Request, error) {
	if !validMethod(method) {
		return Request{}, fmt.Errorf("chat: invalid method %q", method)
	}
	if _, err := url.ParseRequestURI(uri); err != nil && uri != "" {
		return Request{}, fmt.Errorf("chat: invalid path-and-query %q: %w", uri, err)
	}
	if header == nil {
		header = make(http.Header)
	}
	return Request{Method: method, URI: uri, Header: header, Body: body}, nil
}

func validMethod(m string) bool {
	switch m {
	case http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
		http.MethodPatch, http.MethodDelete, http.MethodConnect,
		http.MethodOptions, http.MethodTrace:
		return true
	default:
		return false
	}
}

// Response is the server's reply to a [Request], or a server-initiated
// request's reply sent via an [AckHandle].
type Response struct {
	// Status is the HTTP-style status code, 100-599.
	Status int
	// Reason is an optional human-readable reason phrase.
	Reason string
	Header http.Header
	Body   []byte
}

// IsSuccess reports whether the status is in the 2xx range.
func (r Response) IsSuccess() bool {
	return r.Status >= 200 && r.Status < 300
}
