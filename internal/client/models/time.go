// Package models defines the client-side data model of the SignKeeper API:
// user records, request payloads, signing outcomes and EDSquare types.
package models

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	naiveParseLayout  = "2006-01-02T15:04:05"
	naiveFormatLayout = "2006-01-02T15:04:05.999999999"
)

// NaiveTime is a timestamp the backend stores without a zone.
// Values are always interpreted and emitted as UTC.
type NaiveTime struct {
	time.Time
}

// NewNaiveTime wraps t, normalized to UTC.
func NewNaiveTime(t time.Time) NaiveTime {
	return NaiveTime{Time: t.UTC()}
}

// ParseNaiveTime accepts both zone-less values ("2023-10-01T12:00:00[.ffffff]")
// and RFC 3339 values.
func ParseNaiveTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(naiveParseLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse naive time %q: %w", s, err)
	}
	return t, nil
}

func (t NaiveTime) String() string {
	return t.UTC().Format(naiveFormatLayout)
}

func (t NaiveTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *NaiveTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("naive time: %w", err)
	}
	parsed, err := ParseNaiveTime(s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// expired reports whether a token expiry is absent or already in the past.
func expired(at *NaiveTime, now time.Time) bool {
	return at == nil || at.Before(now)
}
