package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// UserID identifies a user. Backends send it as a JSON number or a JSON
// string; both decode to the same textual form.
type UserID string

// UnmarshalJSON accepts a string or a number. null leaves the id empty.
func (id *UserID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = UserID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("user id must be a string or a number: %w", err)
	}
	*id = UserID(n.String())
	return nil
}

// MarshalJSON writes integer ids as numbers and everything else as strings
func (id UserID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// User represents the profile returned by the backend at login time.
// A decoded User keeps the profile exactly as received and marshals back
// to it, so fields the client does not know about survive persistence.
type User struct {
	ID     UserID `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Mobile string `json:"mobile,omitempty" yaml:"mobile,omitempty"`
	Role   string `json:"role,omitempty" yaml:"role,omitempty"`

	raw json.RawMessage
}

type plainUser User

// UnmarshalJSON decodes the known fields and remembers the whole object
func (u *User) UnmarshalJSON(data []byte) error {
	var p plainUser
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return err
	}
	p.raw = buf.Bytes()

	*u = User(p)
	return nil
}

// MarshalJSON returns the profile as received, or the known fields for a
// User built in code
func (u User) MarshalJSON() ([]byte, error) {
	if len(u.raw) > 0 {
		return u.raw, nil
	}
	return json.Marshal(plainUser(u))
}

// HasID reports whether the profile carries an identifier
func (u User) HasID() bool {
	return u.ID != ""
}

// DisplayName returns the user's name, or a placeholder when the backend sent none
func (u User) DisplayName() string {
	if u.Name == "" {
		return "User"
	}
	return u.Name
}

// Session pairs a bearer token with the profile it was issued for.
// A session is only meaningful when both halves are present.
type Session struct {
	Token string `json:"token" yaml:"token"`
	User  User   `json:"user" yaml:"user"`
}

// Valid reports whether the session carries a token
func (s *Session) Valid() bool {
	return s != nil && s.Token != ""
}

// SendOTPRequest is the body of POST /api/auth/send-otp
type SendOTPRequest struct {
	Mobile string `json:"mobile"`
}

// OTPLoginRequest is the body of POST /api/auth/login
type OTPLoginRequest struct {
	Mobile string `json:"mobile"`
	OTP    string `json:"otp"`
}

// PINLoginRequest is the body of POST /api/auth/pin-login
type PINLoginRequest struct {
	PIN string `json:"pin"`
}

// LoginResponse is the success body of both login endpoints
type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
