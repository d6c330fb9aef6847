// Copyright 2026 The ChatNet Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package registration

// ProvidedAccountAttributes are the account properties a client asserts at
// registration time. RecoveryPassword travels inside accountAttributes on
// every RegisterAccount request regardless of how the request authenticates
// itself; when the request has no SessionID, this same value is also
// promoted to the request root as the session-less authentication selector
// (see register.go).
type ProvidedAccountAttributes struct {
	RecoveryPassword               []byte
	RegistrationID                 uint16
	PNIRegistrationID              uint16
	// Name is an opaque, client-encrypted device name; it travels base64 on
	// the wire like any other []byte field here.
	Name                           []byte
	RegistrationLock               string
	UnidentifiedAccessKey           []byte
	UnrestrictedUnidentifiedAccess bool
	// Capabilities is a set of feature names the client advertises; the wire
	// form is a JSON object mapping each name to true, not an array.
	Capabilities              []string
	DiscoverableByPhoneNumber bool
}

// numberArray converts a byte slice to the []int form that encoding/json
// marshals as a JSON array of numbers (e.g. [1,2,3]), rather than the
// base64 string it gives a plain []byte. unidentifiedAccessKey is the one
// field in this request shape the wire format requires this way; every
// other byte slice here travels base64.
func numberArray(b []byte) []int {
	out := make([]int, len(b))
	for i, v := range b {
		out[i] = int(v)
	}
	return out
}

// SignedPreKeyBody is the wire shape of a signed pre-key: its id, the public
// key bytes, and the signature over them.
type SignedPreKeyBody struct {
	KeyID     uint32 `json:"keyId"`
	PublicKey []byte `json:"publicKey"`
	Signature []byte `json:"signature"`
}

// IdentityKeys carries the per-service-id key material RegisterAccount
// submits for one of the account's two identities (ACI or PNI).
type IdentityKeys struct {
	IdentityKey           []byte
	SignedPreKey          SignedPreKeyBody
	PQLastResortPreKey    SignedPreKeyBody
}

// AccountKeys bundles the ACI and PNI identity key material a new account
// registers with.
type AccountKeys struct {
	ACI IdentityKeys
	PNI IdentityKeys
}

// NewMessageNotificationKind discriminates how RegisterAccount expects to
// learn about new messages: a mobile push token, or by polling/holding the
// connection open itself.
type NewMessageNotificationKind int

const (
	// NewMessageNotificationWillFetch means the client itself will fetch
	// messages (e.g. by holding an authenticated chat connection open); no
	// push token is sent.
	NewMessageNotificationWillFetch NewMessageNotificationKind = iota
	NewMessageNotificationApn
	NewMessageNotificationGcm
)

// NewMessageNotification is the push-token half of RegisterAccount: exactly
// one of Apn/Gcm token is meaningful, selected by Kind.
type NewMessageNotification struct {
	Kind  NewMessageNotificationKind
	Token string
}
