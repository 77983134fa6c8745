package models

import "time"

// User is the full record of the authenticated account, as returned by
// GET /users/me. It is replaced wholesale on every fetch or update.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`

	// TokenExpiresAt is the expiry of the stored intranet token, if any.
	TokenExpiresAt *NaiveTime `json:"jwtExpiresAt,omitempty"`
	// IntraToken is the stored third-party (intranet) token.
	IntraToken *string `json:"jwtIntraEpitech,omitempty"`
	// Signature is the handwritten signature as a PNG data URL.
	Signature *string `json:"signatureManuscrite,omitempty"`
}

// TokenExpired reports whether the stored intranet token is missing or expired.
func (u User) TokenExpired(now time.Time) bool {
	return expired(u.TokenExpiresAt, now)
}

// Clone returns a deep copy of u.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	if u.TokenExpiresAt != nil {
		exp := *u.TokenExpiresAt
		c.TokenExpiresAt = &exp
	}
	if u.IntraToken != nil {
		tok := *u.IntraToken
		c.IntraToken = &tok
	}
	if u.Signature != nil {
		sig := *u.Signature
		c.Signature = &sig
	}
	return &c
}

// PublicUser is the redacted view of another account returned by GET /users.
type PublicUser struct {
	ID             string     `json:"id"`
	Username       string     `json:"username"`
	TokenExpiresAt *NaiveTime `json:"jwtExpiresAt,omitempty"`

	// TokenIsExpired is derived by the dashboard loader and never sent by the backend.
	TokenIsExpired bool `json:"jwtIsExpired,omitempty"`
}

// Expired reports whether the user's intranet token is missing or expired at now.
func (u PublicUser) Expired(now time.Time) bool {
	return expired(u.TokenExpiresAt, now)
}

// LoginPayload is the body of POST /auth/login.
type LoginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterPayload is the body of POST /auth/register. Key is the invite key.
type RegisterPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Key      string `json:"key"`
}

// UpdateUserPayload is the body of PATCH /users/me. Nil fields are left unchanged.
type UpdateUserPayload struct {
	Username    *string `json:"username,omitempty"`
	OldPassword *string `json:"old_password,omitempty"`
	NewPassword *string `json:"new_password,omitempty"`
}

// JWTPayload is the body of POST /users/me/update-jwt.
type JWTPayload struct {
	JWT string `json:"jwt"`
}
