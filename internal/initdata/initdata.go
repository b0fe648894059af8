// Package initdata parses and verifies the launch payload a Telegram Mini-App
// receives from the host platform. The payload is untrusted client input until
// Verify has checked its signature against the bot token.
package initdata

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"vitrina/internal/sentinel"
)

// Identity is the platform-asserted user for the current session. It is created
// by Telegram, never by this service, and lives only as long as the session.
type Identity struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	Username  string `json:"username,omitempty"`
}

// Key returns the identity id in the string form used by the session cache and
// the access policy store.
func (i Identity) Key() string {
	return strconv.FormatInt(i.ID, 10)
}

// DisplayName returns the human-readable name for the denial view.
func (i Identity) DisplayName() string {
	if i.LastName == "" {
		return i.FirstName
	}
	return i.FirstName + " " + i.LastName
}

// InitData is the parsed launch payload. Fields holds every key except user,
// which is decoded separately; the hash field stays in Fields so Verify can
// extract it.
type InitData struct {
	Raw      string
	Fields   map[string]string
	User     *Identity
	AuthDate time.Time
}

// Parse decodes the query-string-shaped payload blob. It does not check the
// signature; callers must verify before trusting any field.
func Parse(raw string) (*InitData, error) {
	if raw == "" {
		return nil, fmt.Errorf("empty payload: %w", sentinel.ErrInvalidInput)
	}

	values, err := url.ParseQuery(raw)
	if err != nil {
		return nil, fmt.Errorf("parse payload: %w", sentinel.ErrInvalidInput)
	}

	data := &InitData{
		Raw:    raw,
		Fields: make(map[string]string, len(values)),
	}
	for key := range values {
		data.Fields[key] = values.Get(key)
	}

	if userJSON, ok := data.Fields["user"]; ok {
		var user Identity
		if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
			return nil, fmt.Errorf("decode user field: %w", sentinel.ErrInvalidInput)
		}
		if user.ID != 0 {
			data.User = &user
		}
	}

	if authDate, ok := data.Fields["auth_date"]; ok {
		if unix, err := strconv.ParseInt(authDate, 10, 64); err == nil {
			data.AuthDate = time.Unix(unix, 0).UTC()
		}
	}

	return data, nil
}

// Identity returns the caller identity carried in the payload, or
// sentinel.ErrNoIdentity when the user field is absent. Callers must treat the
// absence as unauthorized.
func (d *InitData) Identity() (*Identity, error) {
	if d == nil || d.User == nil {
		return nil, sentinel.ErrNoIdentity
	}
	return d.User, nil
}
