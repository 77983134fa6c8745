package models

import (
	"errors"
	"strings"
)

// SignatureDataPrefix is the only data URL form the backend accepts.
const SignatureDataPrefix = "data:image/png;base64,"

var ErrInvalidSignature = errors.New("signature must be a PNG base64 data URL")

// SaveSignaturePayload is the body of POST /users/me/signature.
type SaveSignaturePayload struct {
	Signature string `json:"signature"`
}

// Validate checks the data URL prefix.
func (p SaveSignaturePayload) Validate() error {
	if !strings.HasPrefix(p.Signature, SignatureDataPrefix) || len(p.Signature) == len(SignatureDataPrefix) {
		return ErrInvalidSignature
	}
	return nil
}

// Signature is one stored handwritten signature of the current user.
type Signature struct {
	ID        string    `json:"id"`
	Data      string    `json:"signature_data"`
	CreatedAt NaiveTime `json:"created_at"`
}
