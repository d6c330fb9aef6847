// Copyright 2026 The ChatNet Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package registration

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	json "github.com/segmentio/encoding/json"

	"github.com/chatproto/chatnet/chat"
	"github.com/chatproto/chatnet/internal/schema"
)

// ResponseErrorKind discriminates the ways a registration response can fail
// to decode into the expected type. Timeouts and transport failures are
// chat.SendError values and never reach this type: ResponseError only
// covers responses the server actually sent.
type ResponseErrorKind int

const (
	ResponseErrorRetryLater ResponseErrorKind = iota
	ResponseErrorInvalidRequest
	ResponseErrorUnexpectedContentType
	ResponseErrorUnrecognizedStatus
	ResponseErrorMissingBody
	ResponseErrorInvalidJSON
	ResponseErrorUnexpectedData
)

// ResponseError is returned by Decode when a chat.Response could not be
// interpreted as the expected registration response type.
type ResponseError struct {
	Kind ResponseErrorKind

	RetryAfter     time.Duration // set only for ResponseErrorRetryLater
	ContentType    string        // set only for ResponseErrorUnexpectedContentType
	Status         int           // set for ResponseErrorUnrecognizedStatus
	Header         http.Header   // set for ResponseErrorUnrecognizedStatus
	Body           []byte        // set for ResponseErrorUnrecognizedStatus
	Err            error         // set for ResponseErrorInvalidJSON, wraps the decode error
}

func (e *ResponseError) Error() string {
	switch e.Kind {
	case ResponseErrorRetryLater:
		return fmt.Sprintf("registration: retry later (after %s)", e.RetryAfter)
	case ResponseErrorInvalidRequest:
		return "registration: request did not pass server validation"
	case ResponseErrorUnexpectedContentType:
		return fmt.Sprintf("registration: unexpected content-type %q", e.ContentType)
	case ResponseErrorUnrecognizedStatus:
		return fmt.Sprintf("registration: unrecognized response status %d", e.Status)
	case ResponseErrorMissingBody:
		return "registration: response had no body"
	case ResponseErrorInvalidJSON:
		return fmt.Sprintf("registration: response body was not valid JSON: %v", e.Err)
	case ResponseErrorUnexpectedData:
		return "registration: response body didn't match the expected shape"
	default:
		return "registration: unrecognized response error"
	}
}

func (e *ResponseError) Unwrap() error { return e.Err }

// Decode interprets resp as a registration response of type T, following a
// fixed precedence: a 429 with a parseable Retry-After header always
// produces ResponseErrorRetryLater even before the generic non-2xx handling
// runs; a 422 always produces ResponseErrorInvalidRequest; any other
// non-2xx produces ResponseErrorUnrecognizedStatus carrying the raw headers
// and body for the caller to inspect (VerificationCodeNotDeliverable and
// RegistrationLockError are opportunistically parsed from exactly this
// path, see TryParseVerificationCodeNotDeliverable and
// TryParseRegistrationLock). Only after all of that does Decode check
// content-type, body presence, and finally attempt the JSON decode itself.
func Decode[T any](resp chat.Response) (T, error) {
	var zero T

	if !resp.IsSuccess() {
		if resp.Status == http.StatusTooManyRequests {
			if d, ok := parseRetryAfter(resp.Header.Get("Retry-After")); ok {
				return zero, &ResponseError{Kind: ResponseErrorRetryLater, RetryAfter: d}
			}
		}
		if resp.Status == http.StatusUnprocessableEntity {
			return zero, &ResponseError{Kind: ResponseErrorInvalidRequest}
		}
		return zero, &ResponseError{
			Kind:   ResponseErrorUnrecognizedStatus,
			Status: resp.Status,
			Header: resp.Header,
			Body:   resp.Body,
		}
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType != contentTypeJSON {
		return zero, &ResponseError{Kind: ResponseErrorUnexpectedContentType, ContentType: contentType}
	}

	if len(resp.Body) == 0 {
		return zero, &ResponseError{Kind: ResponseErrorMissingBody}
	}

	// Unknown fields are ignored rather than rejected: a forward-compatible
	// server response carrying a field this client doesn't know about yet
	// must still decode successfully.
	dec := json.NewDecoder(bytes.NewReader(resp.Body))
	var value T
	if err := dec.Decode(&value); err != nil {
		if isSyntaxOrIOError(err) {
			return zero, &ResponseError{Kind: ResponseErrorInvalidJSON, Err: err}
		}
		return zero, &ResponseError{Kind: ResponseErrorUnexpectedData, Err: err}
	}
	if err := schema.Validate[T](value); err != nil {
		return zero, &ResponseError{Kind: ResponseErrorUnexpectedData, Err: err}
	}
	return value, nil
}

// isSyntaxOrIOError reports whether err reflects malformed JSON or a
// truncated body (as opposed to well-formed JSON that doesn't match the Go
// type, which is a data mismatch).
func isSyntaxOrIOError(err error) bool {
	switch err.(type) {
	case *json.UnmarshalTypeError:
		return false
	case *json.SyntaxError:
		return true
	}
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}

func parseRetryAfter(header string) (time.Duration, bool) {
	if header == "" {
		return 0, false
	}
	seconds, err := strconv.Atoi(header)
	if err != nil || seconds < 0 {
		return 0, false
	}
	return time.Duration(seconds) * time.Second, true
}

// TryParseVerificationCodeNotDeliverable opportunistically parses the body
// of an unsuccessful response as a VerificationCodeNotDeliverable; it
// returns nil unless the content-type is exactly application/json and the
// body decodes cleanly. Use this when ResponseErrorUnrecognizedStatus's
// Status is the dedicated "code not deliverable" status the server uses.
func TryParseVerificationCodeNotDeliverable(header http.Header, body []byte) *VerificationCodeNotDeliverable {
	if header.Get("Content-Type") != contentTypeJSON {
		return nil
	}
	var v VerificationCodeNotDeliverable
	if err := json.Unmarshal(body, &v); err != nil {
		return nil
	}
	return &v
}

// TryParseRegistrationLock opportunistically parses the body of an
// unsuccessful response as a RegistrationLockError, under the same
// content-type condition as TryParseVerificationCodeNotDeliverable.
func TryParseRegistrationLock(header http.Header, body []byte) *RegistrationLockError {
	if header.Get("Content-Type") != contentTypeJSON {
		return nil
	}
	var v RegistrationLockError
	if err := json.Unmarshal(body, &v); err != nil {
		return nil
	}
	return &v
}
