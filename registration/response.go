// Copyright 2026 The ChatNet Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package registration

import "time"

// RequestedInformation names a piece of information the server still needs
// before a registration session can proceed.
type RequestedInformation string

const (
	RequestedInformationCaptcha       RequestedInformation = "captcha"
	RequestedInformationPushChallenge RequestedInformation = "pushChallenge"
)

// RegistrationSession is the decoded body of a successful session create,
// get, or update response.
type RegistrationSession struct {
	ID                       string                  `json:"id"`
	AllowedToRequestCode     bool                    `json:"allowedToRequestCode"`
	RequestedInformation     []RequestedInformation  `json:"requestedInformation"`
	VerificationCodeExpiresIn *int64                 `json:"verificationCodeExpiresSeconds,omitempty"`
	NextSMS                  *int64                  `json:"nextSms,omitempty"`
	NextCall                 *int64                  `json:"nextCall,omitempty"`
	NextVerificationAttempt  *int64                  `json:"nextVerificationAttempt,omitempty"`
	Verified                 bool                    `json:"verified"`
}

// NextSMSDelay returns how long the caller must wait before requesting
// another SMS code, if the server reported one.
func (s RegistrationSession) NextSMSDelay() (time.Duration, bool) {
	if s.NextSMS == nil {
		return 0, false
	}
	return time.Duration(*s.NextSMS) * time.Second, true
}

// VerificationCodeNotDeliverable is returned by the server (HTTP 440) when
// it accepted a verification request but could not deliver the code through
// any available channel.
type VerificationCodeNotDeliverable struct {
	Reason           string `json:"reason"`
	PermanentFailure bool   `json:"permanentFailure"`
}

func (e *VerificationCodeNotDeliverable) Error() string {
	return "registration: verification code not deliverable: " + e.Reason
}

// RegistrationLockError is the decoded body of an HTTP 423 response: the
// account is registration-lock protected and the request must be retried
// with svr2Credentials or, after TimeRemaining elapses, without a PIN.
type RegistrationLockError struct {
	TimeRemaining int64  `json:"timeRemaining"`
	SVR2Tries     int    `json:"svr2Tries,omitempty"`
}

func (e *RegistrationLockError) Error() string {
	return "registration: account is registration-lock protected"
}

// RegisterAccountResponse is the decoded body of a successful
// RegisterAccount response.
type RegisterAccountResponse struct {
	UUID                    string `json:"uuid"`
	Number                  string `json:"number"`
	PNI                     string `json:"pni,omitempty"`
	StorageCapable          bool   `json:"storageCapable"`
	UsernameHash            string `json:"usernameHash,omitempty"`
	ReregistrationRequested bool   `json:"reregistration,omitempty"`
}
