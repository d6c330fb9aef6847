// Copyright 2026 The ChatNet Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package registration

import (
	"net/http"

	json "github.com/segmentio/encoding/json"

	"github.com/chatproto/chatnet/chat"
)

const registerAccountPath = "/v1/registration"

// RegisterAccountParams are the caller-supplied parameters for registering a
// new account. Exactly one of SessionID or AccountAttributes.RecoveryPassword
// authenticates the request at the root level; see ToRequest.
type RegisterAccountParams struct {
	Number          string
	AccountPassword string

	// SessionID, if non-empty, authenticates the request via a completed
	// verification session. If empty, AccountAttributes.RecoveryPassword is
	// promoted to the request root as the session-less authentication
	// selector instead.
	SessionID SessionID

	MessageNotification NewMessageNotification
	AccountAttributes    ProvidedAccountAttributes
	SkipDeviceTransfer   bool
	Keys                 AccountKeys
}

type signedPreKeyWire struct {
	KeyID     uint32 `json:"keyId"`
	PublicKey []byte `json:"publicKey"`
	Signature []byte `json:"signature"`
}

func signedPreKeyBody(b SignedPreKeyBody) signedPreKeyWire {
	return signedPreKeyWire{KeyID: b.KeyID, PublicKey: b.PublicKey, Signature: b.Signature}
}

// accountAttributesWire always carries RecoveryPassword: it travels inside
// accountAttributes on every request, independent of whether the request
// root authenticates via SessionID or via this same value. Only Name and
// RegistrationLock are genuinely optional on the wire (omitempty); every
// other field here is always emitted, matching the original's non-Option
// fields (skip_serializing_none there only ever drops the two Option ones).
type accountAttributesWire struct {
	FetchesMessages                bool            `json:"fetchesMessages"`
	RecoveryPassword                []byte          `json:"recoveryPassword"`
	RegistrationID                 uint16           `json:"registrationId"`
	PNIRegistrationID              uint16           `json:"pniRegistrationId"`
	Name                            []byte          `json:"name,omitempty"`
	RegistrationLock                string          `json:"registrationLock,omitempty"`
	UnidentifiedAccessKey           []int           `json:"unidentifiedAccessKey"`
	UnrestrictedUnidentifiedAccess bool             `json:"unrestrictedUnidentifiedAccess"`
	Capabilities                   map[string]bool  `json:"capabilities"`
	DiscoverableByPhoneNumber       bool            `json:"discoverableByPhoneNumber"`
}

func capabilitiesSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}

// pushTokenWire is nested under the "pushToken" key and omitted entirely
// when the client holds its own connection open to fetch messages.
type pushTokenWire struct {
	ApnRegistrationID string `json:"apnRegistrationId,omitempty"`
	GcmRegistrationID string `json:"gcmRegistrationId,omitempty"`
}

// registerAccountBody is the exact JSON shape of a RegisterAccount request.
// Field order mirrors the decode order a server-side schema would expect;
// Go's encoding/json (and the drop-in segmentio encoder used here) emits
// struct fields in declaration order.
type registerAccountBody struct {
	// Exactly one of these two is populated; the other is omitted by both
	// being declared with omitempty and left zero-valued.
	SessionID        string `json:"sessionId,omitempty"`
	RecoveryPassword []byte `json:"recoveryPassword,omitempty"`

	AccountAttributes  accountAttributesWire `json:"accountAttributes"`
	SkipDeviceTransfer bool                  `json:"skipDeviceTransfer"`

	ACIIdentityKey []byte `json:"aciIdentityKey"`
	PNIIdentityKey []byte `json:"pniIdentityKey"`

	ACISignedPreKey       signedPreKeyWire `json:"aciSignedPreKey"`
	PNISignedPreKey       signedPreKeyWire `json:"pniSignedPreKey"`
	ACIPqLastResortPreKey signedPreKeyWire `json:"aciPqLastResortPreKey"`
	PNIPqLastResortPreKey signedPreKeyWire `json:"pniPqLastResortPreKey"`

	PushToken *pushTokenWire `json:"pushToken,omitempty"`
}

// ToRequest serializes a RegisterAccount operation: POST /v1/registration,
// authenticated with HTTP Basic over Number/AccountPassword (registration
// has no chat-connection-level auth header of its own; this one goes on the
// request itself).
func (p RegisterAccountParams) ToRequest() (chat.Request, error) {
	body := registerAccountBody{
		AccountAttributes: accountAttributesWire{
			RecoveryPassword:               p.AccountAttributes.RecoveryPassword,
			RegistrationID:                 p.AccountAttributes.RegistrationID,
			PNIRegistrationID:              p.AccountAttributes.PNIRegistrationID,
			Name:                           p.AccountAttributes.Name,
			RegistrationLock:               p.AccountAttributes.RegistrationLock,
			UnidentifiedAccessKey:          numberArray(p.AccountAttributes.UnidentifiedAccessKey),
			UnrestrictedUnidentifiedAccess: p.AccountAttributes.UnrestrictedUnidentifiedAccess,
			Capabilities:                   capabilitiesSet(p.AccountAttributes.Capabilities),
			DiscoverableByPhoneNumber:      p.AccountAttributes.DiscoverableByPhoneNumber,
		},
		SkipDeviceTransfer:    p.SkipDeviceTransfer,
		ACIIdentityKey:        p.Keys.ACI.IdentityKey,
		PNIIdentityKey:        p.Keys.PNI.IdentityKey,
		ACISignedPreKey:       signedPreKeyBody(p.Keys.ACI.SignedPreKey),
		PNISignedPreKey:       signedPreKeyBody(p.Keys.PNI.SignedPreKey),
		ACIPqLastResortPreKey: signedPreKeyBody(p.Keys.ACI.PQLastResortPreKey),
		PNIPqLastResortPreKey: signedPreKeyBody(p.Keys.PNI.PQLastResortPreKey),
	}

	if p.SessionID != "" {
		body.SessionID = string(p.SessionID)
	} else {
		body.RecoveryPassword = p.AccountAttributes.RecoveryPassword
	}

	switch p.MessageNotification.Kind {
	case NewMessageNotificationWillFetch:
		body.AccountAttributes.FetchesMessages = true
	case NewMessageNotificationApn:
		body.PushToken = &pushTokenWire{ApnRegistrationID: p.MessageNotification.Token}
	case NewMessageNotificationGcm:
		body.PushToken = &pushTokenWire{GcmRegistrationID: p.MessageNotification.Token}
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return chat.Request{}, err
	}

	header := jsonHeader()
	name, value := chat.Auth{Username: p.Number, Password: p.AccountPassword}.Header()
	header.Set(name, value)

	return chat.NewRequest(http.MethodPost, registerAccountPath, header, raw)
}
