// Copyright 2026 The ChatNet Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package registration

import (
	"errors"
	"net/http"
	"testing"

	"github.com/chatproto/chatnet/chat"
)

func jsonResponse(status int, body string) chat.Response {
	h := make(http.Header)
	h.Set("Content-Type", contentTypeJSON)
	return chat.Response{Status: status, Header: h, Body: []byte(body)}
}

func TestDecodeSuccessfulRegistrationSession(t *testing.T) {
	resp := jsonResponse(200, `{"id":"sess-1","allowedToRequestCode":true,"requestedInformation":["captcha"],"verified":false}`)
	session, err := Decode[RegistrationSession](resp)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if session.ID != "sess-1" || !session.AllowedToRequestCode {
		t.Fatalf("got %+v", session)
	}
	if len(session.RequestedInformation) != 1 || session.RequestedInformation[0] != RequestedInformationCaptcha {
		t.Fatalf("got requestedInformation %v", session.RequestedInformation)
	}
}

func TestDecode429WithRetryAfterIsRetryLater(t *testing.T) {
	h := make(http.Header)
	h.Set("Retry-After", "30")
	resp := chat.Response{Status: 429, Header: h}
	_, err := Decode[RegistrationSession](resp)
	var respErr *ResponseError
	if !errors.As(err, &respErr) || respErr.Kind != ResponseErrorRetryLater {
		t.Fatalf("expected RetryLater, got %v", err)
	}
	if respErr.RetryAfter.Seconds() != 30 {
		t.Fatalf("got retry-after %v", respErr.RetryAfter)
	}
}

func TestDecode429WithoutRetryAfterIsUnrecognizedStatus(t *testing.T) {
	resp := chat.Response{Status: 429}
	_, err := Decode[RegistrationSession](resp)
	var respErr *ResponseError
	if !errors.As(err, &respErr) || respErr.Kind != ResponseErrorUnrecognizedStatus {
		t.Fatalf("expected UnrecognizedStatus when Retry-After is absent, got %v", err)
	}
}

func TestDecode422IsInvalidRequest(t *testing.T) {
	resp := chat.Response{Status: 422}
	_, err := Decode[RegistrationSession](resp)
	var respErr *ResponseError
	if !errors.As(err, &respErr) || respErr.Kind != ResponseErrorInvalidRequest {
		t.Fatalf("expected InvalidRequest, got %v", err)
	}
}

func TestDecodeWrongContentType(t *testing.T) {
	h := make(http.Header)
	h.Set("Content-Type", "text/plain")
	resp := chat.Response{Status: 200, Header: h, Body: []byte("hi")}
	_, err := Decode[RegistrationSession](resp)
	var respErr *ResponseError
	if !errors.As(err, &respErr) || respErr.Kind != ResponseErrorUnexpectedContentType {
		t.Fatalf("expected UnexpectedContentType, got %v", err)
	}
}

func TestDecodeMissingBody(t *testing.T) {
	h := make(http.Header)
	h.Set("Content-Type", contentTypeJSON)
	resp := chat.Response{Status: 200, Header: h}
	_, err := Decode[RegistrationSession](resp)
	var respErr *ResponseError
	if !errors.As(err, &respErr) || respErr.Kind != ResponseErrorMissingBody {
		t.Fatalf("expected MissingBody, got %v", err)
	}
}

func TestDecodeInvalidJSON(t *testing.T) {
	resp := jsonResponse(200, `{not json`)
	_, err := Decode[RegistrationSession](resp)
	var respErr *ResponseError
	if !errors.As(err, &respErr) || respErr.Kind != ResponseErrorInvalidJSON {
		t.Fatalf("expected InvalidJSON, got %v", err)
	}
}

func TestDecodeUnexpectedData(t *testing.T) {
	resp := jsonResponse(200, `{"id": 12345}`)
	_, err := Decode[RegistrationSession](resp)
	var respErr *ResponseError
	if !errors.As(err, &respErr) || respErr.Kind != ResponseErrorUnexpectedData {
		t.Fatalf("expected UnexpectedData for a type mismatch, got %v", err)
	}
}

func TestTryParseVerificationCodeNotDeliverable(t *testing.T) {
	h := make(http.Header)
	h.Set("Content-Type", contentTypeJSON)
	body := []byte(`{"reason":"no_provider","permanentFailure":true}`)
	got := TryParseVerificationCodeNotDeliverable(h, body)
	if got == nil || got.Reason != "no_provider" || !got.PermanentFailure {
		t.Fatalf("got %+v", got)
	}

	h2 := make(http.Header)
	h2.Set("Content-Type", "text/plain")
	if got := TryParseVerificationCodeNotDeliverable(h2, body); got != nil {
		t.Fatalf("expected nil for non-JSON content-type, got %+v", got)
	}
}
