// Copyright 2026 The ChatNet Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package registration

import (
	"strings"
	"testing"
)

func TestGetSessionRequestShape(t *testing.T) {
	id, err := ParseSessionID("abc123")
	if err != nil {
		t.Fatalf("ParseSessionID: %v", err)
	}
	req, err := GetSession(id)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if req.Method != "GET" {
		t.Fatalf("got method %q, want GET", req.Method)
	}
	if req.URI != "/v1/verification/session/abc123" {
		t.Fatalf("got uri %q", req.URI)
	}
	if len(req.Body) != 0 {
		t.Fatalf("expected no body, got %q", req.Body)
	}
}

func TestUpdateRegistrationSessionWithCaptcha(t *testing.T) {
	id, _ := ParseSessionID("sess-1")
	captcha := "captcha-token"
	params := UpdateRegistrationSessionParams{Captcha: &captcha}

	req, err := params.ToRequest(id)
	if err != nil {
		t.Fatalf("ToRequest: %v", err)
	}
	if req.Method != "PATCH" {
		t.Fatalf("got method %q, want PATCH", req.Method)
	}
	if req.URI != "/v1/verification/session/sess-1" {
		t.Fatalf("got uri %q", req.URI)
	}
	body := string(req.Body)
	if !strings.Contains(body, `"captcha":"captcha-token"`) {
		t.Fatalf("body missing captcha field: %s", body)
	}
	if strings.Contains(body, "pushToken") {
		t.Fatalf("absent fields should be omitted entirely: %s", body)
	}
}

func TestRequestVerificationCodeWithAcceptLanguage(t *testing.T) {
	id, _ := ParseSessionID("sess-2")
	params := RequestVerificationCodeParams{
		Transport:      VerificationTransportSMS,
		Client:         "test-client",
		AcceptLanguage: "en-US",
	}
	req, err := params.ToRequest(id)
	if err != nil {
		t.Fatalf("ToRequest: %v", err)
	}
	if req.URI != "/v1/verification/session/sess-2/code" {
		t.Fatalf("got uri %q", req.URI)
	}
	if got := req.Header.Get("Accept-Language"); got != "en-US" {
		t.Fatalf("got accept-language %q", got)
	}
	if strings.Contains(string(req.Body), "language") {
		t.Fatalf("language must travel as a header, not a body field: %s", req.Body)
	}
}

func TestCheckSvr2CredentialsRequestShape(t *testing.T) {
	params := CheckSvr2CredentialsParams{Number: "+15550100", Tokens: []string{"t1", "t2"}}
	req, err := params.ToRequest()
	if err != nil {
		t.Fatalf("ToRequest: %v", err)
	}
	if req.Method != "POST" || req.URI != "/v2/backup/auth/check" {
		t.Fatalf("got %s %s", req.Method, req.URI)
	}
	body := string(req.Body)
	if !strings.Contains(body, `"number":"+15550100"`) || !strings.Contains(body, `"t1"`) {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestParseSessionIDRejectsUnsafeSegments(t *testing.T) {
	if _, err := ParseSessionID(""); err == nil {
		t.Fatal("expected error for empty session id")
	}
	if _, err := ParseSessionID("has/slash"); err == nil {
		t.Fatal("expected error for a session id that isn't URL-segment-safe")
	}
}
