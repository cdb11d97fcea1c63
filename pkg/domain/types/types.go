package types

import (
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// SessionID identifies one live onboarding form session
type SessionID string

// String returns the string representation
func (id SessionID) String() string {
	return string(id)
}

// Validate checks if the session ID is a well-formed UUID
func (id SessionID) Validate() error {
	if id == "" {
		return goerr.New("session ID cannot be empty")
	}
	if _, err := uuid.Parse(string(id)); err != nil {
		return goerr.Wrap(err, "malformed session ID", goerr.V("id", string(id)))
	}
	return nil
}

// NewSessionID creates a new SessionID using UUID v7
func NewSessionID() (SessionID, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return SessionID(id.String()), nil
}

// FieldName identifies a user-editable form field
type FieldName string

const (
	FieldSlackWebhook FieldName = "slackWebhook"
	FieldEmail        FieldName = "email"
)

// String returns the string representation
func (n FieldName) String() string {
	return string(n)
}

// IsValid checks if the field name is one of the known form fields
func (n FieldName) IsValid() bool {
	switch n {
	case FieldSlackWebhook, FieldEmail:
		return true
	default:
		return false
	}
}
