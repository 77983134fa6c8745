package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNaiveTime(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{"naive seconds", "2023-10-01T12:00:00", time.Date(2023, 10, 1, 12, 0, 0, 0, time.UTC)},
		{"naive micros", "2023-10-01T12:00:00.123456", time.Date(2023, 10, 1, 12, 0, 0, 123456000, time.UTC)},
		{"rfc3339 zulu", "2023-10-01T12:00:00Z", time.Date(2023, 10, 1, 12, 0, 0, 0, time.UTC)},
		{"rfc3339 offset", "2023-10-01T14:00:00+02:00", time.Date(2023, 10, 1, 12, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseNaiveTime(tt.in)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %v got %v", tt.want, got)
		})
	}

	_, err := ParseNaiveTime("yesterday")
	require.Error(t, err)
}

func TestNaiveTime_JSONKeepsZonelessForm(t *testing.T) {
	var nt NaiveTime
	require.NoError(t, json.Unmarshal([]byte(`"2023-10-01T12:00:00.5"`), &nt))

	b, err := json.Marshal(nt)
	require.NoError(t, err)
	assert.Equal(t, `"2023-10-01T12:00:00.5"`, string(b))

	require.Error(t, json.Unmarshal([]byte(`42`), &nt))
}

func TestUser_RoundTrip(t *testing.T) {
	in := `{"id":"01F8MECHZX3TBDSZ7XK4F5G9ZQ","username":"johndoe","jwtExpiresAt":"2023-10-01T12:00:00","jwtIntraEpitech":"a.b.c","signatureManuscrite":"data:image/png;base64,AAAA"}`

	var u User
	require.NoError(t, json.Unmarshal([]byte(in), &u))
	require.NotNil(t, u.TokenExpiresAt)
	require.NotNil(t, u.IntraToken)
	assert.Equal(t, "a.b.c", *u.IntraToken)

	out, err := json.Marshal(u)
	require.NoError(t, err)
	assert.JSONEq(t, in, string(out))

	var again User
	require.NoError(t, json.Unmarshal(out, &again))
	assert.Equal(t, u, again)
}

func TestUser_NullOptionalFields(t *testing.T) {
	var u User
	require.NoError(t, json.Unmarshal([]byte(`{"id":"x","username":"y","jwtExpiresAt":null,"jwtIntraEpitech":null}`), &u))
	assert.Nil(t, u.TokenExpiresAt)
	assert.Nil(t, u.IntraToken)
	assert.True(t, u.TokenExpired(time.Now()))
}

func TestUser_CloneIsDeep(t *testing.T) {
	tok := "tok"
	exp := NewNaiveTime(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC))
	u := &User{ID: "1", Username: "a", IntraToken: &tok, TokenExpiresAt: &exp}

	c := u.Clone()
	*c.IntraToken = "changed"
	c.TokenExpiresAt.Time = time.Time{}

	assert.Equal(t, "tok", *u.IntraToken)
	assert.Equal(t, 2030, u.TokenExpiresAt.Year())
	assert.Nil(t, (*User)(nil).Clone())
}

func TestPublicUser_Expired(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	past := NewNaiveTime(now.Add(-time.Hour))
	future := NewNaiveTime(now.Add(time.Hour))

	assert.True(t, PublicUser{}.Expired(now))
	assert.True(t, PublicUser{TokenExpiresAt: &past}.Expired(now))
	assert.False(t, PublicUser{TokenExpiresAt: &future}.Expired(now))
}

func TestUpdateUserPayload_OmitsNilFields(t *testing.T) {
	name := "new"
	b, err := json.Marshal(UpdateUserPayload{Username: &name})
	require.NoError(t, err)
	assert.JSONEq(t, `{"username":"new"}`, string(b))
}

func TestSignResponse_ClosedSet(t *testing.T) {
	var got []UserSignResponse
	body := `[{"ulid":"a","response":"success"},{"ulid":"b","response":"tokenExpired"},{"ulid":"c","response":"serviceUnavailable"}]`
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	assert.Equal(t, SignSuccess, got[0].Response)
	assert.Equal(t, SignTokenExpired, got[1].Response)
	assert.Equal(t, SignServiceUnavailable, got[2].Response)

	err := json.Unmarshal([]byte(`[{"ulid":"a","response":"badToken"}]`), &got)
	require.ErrorIs(t, err, ErrUnknownSignResponse)

	_, err = json.Marshal(UserSignResponse{ULID: "a", Response: "nope"})
	require.Error(t, err)
}

func TestSaveSignaturePayload_Validate(t *testing.T) {
	require.NoError(t, SaveSignaturePayload{Signature: SignatureDataPrefix + "iVBORw0KGgo="}.Validate())
	require.ErrorIs(t, SaveSignaturePayload{Signature: SignatureDataPrefix}.Validate(), ErrInvalidSignature)
	require.ErrorIs(t, SaveSignaturePayload{Signature: "data:image/jpeg;base64,AA"}.Validate(), ErrInvalidSignature)
}

func TestValidateEdsquareMultiPayload_OmitsEmptyOverrides(t *testing.T) {
	b, err := json.Marshal(ValidateEdsquareMultiPayload{Code: "000000", PlanningEventID: "1", UserIDs: []string{"u1"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":"000000","planning_event_id":"1","user_ids":["u1"]}`, string(b))
}
