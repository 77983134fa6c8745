package models

import (
	"errors"
	"fmt"
)

var ErrUnknownSignResponse = errors.New("unknown sign response")

// SignResponse is the per-user outcome of a bulk signing request.
type SignResponse string

const (
	SignSuccess            SignResponse = "success"
	SignTokenExpired       SignResponse = "tokenExpired"
	SignTokenNotFound      SignResponse = "tokenNotFound"
	SignAlreadySigned      SignResponse = "alreadySigned"
	SignUnknownError       SignResponse = "unknownError"
	SignServiceUnavailable SignResponse = "serviceUnavailable"
)

func (r SignResponse) Valid() bool {
	switch r {
	case SignSuccess, SignTokenExpired, SignTokenNotFound,
		SignAlreadySigned, SignUnknownError, SignServiceUnavailable:
		return true
	}
	return false
}

func (r SignResponse) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSignResponse, string(r))
	}
	return []byte(r), nil
}

func (r *SignResponse) UnmarshalText(b []byte) error {
	v := SignResponse(b)
	if !v.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownSignResponse, string(b))
	}
	*r = v
	return nil
}

// SignPayload is the body of POST /sign: the ULIDs of the users to sign for
// and the attendance URL.
type SignPayload struct {
	ULIDs []string `json:"ulids"`
	URL   string   `json:"url"`
}

// UserSignResponse pairs a user id with its signing outcome.
type UserSignResponse struct {
	ULID     string       `json:"ulid"`
	Response SignResponse `json:"response"`
}
