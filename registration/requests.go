// Copyright 2026 The ChatNet Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package registration

import (
	"net/http"

	json "github.com/segmentio/encoding/json"
	"github.com/yosida95/uritemplate/v3"

	"github.com/chatproto/chatnet/chat"
)

const contentTypeJSON = "application/json"

var (
	sessionPathTemplate     = uritemplate.MustNew("/v1/verification/session/{session_id}")
	sessionCodePathTemplate = uritemplate.MustNew("/v1/verification/session/{session_id}/code")
)

func expandSessionPath(tmpl *uritemplate.Template, id SessionID) string {
	values := uritemplate.Values{}
	values.Set("session_id", uritemplate.String(string(id)))
	return tmpl.Expand(values)
}

func jsonHeader() http.Header {
	h := make(http.Header, 1)
	h.Set("Content-Type", contentTypeJSON)
	return h
}

// CreateSessionParams are the caller-supplied parameters for starting a new
// registration session.
type CreateSessionParams struct {
	Number string `json:"number"`
	PushToken string `json:"pushToken,omitempty"`
	PushTokenType *PushTokenType `json:"pushTokenType,omitempty"`
	MCC string `json:"mcc,omitempty"`
	MNC string `json:"mnc,omitempty"`
}

// ToRequest serializes a CreateSession operation: POST /v1/verification/session.
func (p CreateSessionParams) ToRequest() (chat.Request, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return chat.Request{}, err
	}
	return chat.NewRequest(http.MethodPost, "/v1/verification/session", jsonHeader(), body)
}

// GetSession serializes a GetSession operation: GET
// /v1/verification/session/{session_id}, with no headers and no body.
func GetSession(id SessionID) (chat.Request, error) {
	return chat.NewRequest(http.MethodGet, expandSessionPath(sessionPathTemplate, id), nil, nil)
}

// PushTokenType discriminates the push notification service a client
// registered a push token with.
type PushTokenType string

const (
	PushTokenTypeApn PushTokenType = "apn"
	PushTokenTypeFCM PushTokenType = "fcm"
)

// UpdateRegistrationSessionParams patches fields of an in-progress session.
// Absent (nil) fields are omitted from the request body entirely, not sent
// as JSON null.
type UpdateRegistrationSessionParams struct {
	Captcha       *string        `json:"captcha,omitempty"`
	PushToken     *string        `json:"pushToken,omitempty"`
	PushTokenType *PushTokenType `json:"pushTokenType,omitempty"`
	PushChallenge *string        `json:"pushChallenge,omitempty"`
}

// ToRequest serializes an UpdateRegistrationSession operation: PATCH
// /v1/verification/session/{session_id}.
func (p UpdateRegistrationSessionParams) ToRequest(id SessionID) (chat.Request, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return chat.Request{}, err
	}
	return chat.NewRequest(http.MethodPatch, expandSessionPath(sessionPathTemplate, id), jsonHeader(), body)
}

// VerificationTransport is the channel a verification code is delivered
// over.
type VerificationTransport string

const (
	VerificationTransportSMS  VerificationTransport = "sms"
	VerificationTransportVoice VerificationTransport = "voice"
)

// RequestVerificationCodeParams asks the server to send a verification code.
type RequestVerificationCodeParams struct {
	Transport VerificationTransport `json:"transport"`
	Client    string                `json:"client"`
	// AcceptLanguage, if non-empty, is sent as the accept-language header
	// rather than as a body field.
	AcceptLanguage string `json:"-"`
}

// ToRequest serializes a RequestVerificationCode operation: POST
// /v1/verification/session/{session_id}/code.
func (p RequestVerificationCodeParams) ToRequest(id SessionID) (chat.Request, error) {
	body, err := json.Marshal(struct {
		Transport VerificationTransport `json:"transport"`
		Client    string                `json:"client"`
	}{p.Transport, p.Client})
	if err != nil {
		return chat.Request{}, err
	}
	header := jsonHeader()
	if p.AcceptLanguage != "" {
		header.Set("Accept-Language", p.AcceptLanguage)
	}
	return chat.NewRequest(http.MethodPost, expandSessionPath(sessionCodePathTemplate, id), header, body)
}

// SubmitVerificationCodeParams submits the code a user received.
type SubmitVerificationCodeParams struct {
	Code string `json:"code"`
}

// ToRequest serializes a SubmitVerificationCode operation: PUT
// /v1/verification/session/{session_id}/code.
func (p SubmitVerificationCodeParams) ToRequest(id SessionID) (chat.Request, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return chat.Request{}, err
	}
	return chat.NewRequest(http.MethodPut, expandSessionPath(sessionCodePathTemplate, id), jsonHeader(), body)
}

// CheckSvr2CredentialsParams checks a batch of SVR2 auth tokens.
type CheckSvr2CredentialsParams struct {
	Number string   `json:"number"`
	Tokens []string `json:"tokens"`
}

// ToRequest serializes a CheckSvr2Credentials operation: POST
// /v2/backup/auth/check.
func (p CheckSvr2CredentialsParams) ToRequest() (chat.Request, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return chat.Request{}, err
	}
	return chat.NewRequest(http.MethodPost, "/v2/backup/auth/check", jsonHeader(), body)
}

// Svr2CredentialsResult is the server's verdict on one SVR2 token.
type Svr2CredentialsResult string

const (
	Svr2Match        Svr2CredentialsResult = "match"
	Svr2NoMatch      Svr2CredentialsResult = "no-match"
	Svr2Invalid      Svr2CredentialsResult = "invalid"
	Svr2RateLimited  Svr2CredentialsResult = "rate-limited"
)

// CheckSvr2CredentialsResponse is the decoded body of a successful
// CheckSvr2Credentials response.
type CheckSvr2CredentialsResponse struct {
	Matches map[string]Svr2CredentialsResult `json:"matches"`
}
