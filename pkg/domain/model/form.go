package model

import (
	"github.com/hatchway/onboard/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// FormFields holds the user-editable onboarding values.
// It is a plain value type; passing it by value hands out a snapshot,
// which keeps in-flight submissions isolated from later edits.
type FormFields struct {
	SlackWebhook string `json:"slackWebhook"`
	Email        string `json:"email"`
}

// Get returns the value of the named field
func (f FormFields) Get(name types.FieldName) string {
	switch name {
	case types.FieldSlackWebhook:
		return f.SlackWebhook
	case types.FieldEmail:
		return f.Email
	default:
		return ""
	}
}

// FormState is the full observable state of one onboarding form
type FormState struct {
	Fields  FormFields             `json:"fields"`
	Status  types.SubmissionStatus `json:"status"`
	Message string                 `json:"message,omitempty"`
}

// NewFormState creates the initial form state
func NewFormState() FormState {
	return FormState{
		Status: types.StatusIdle,
	}
}

// Validate checks the state invariants: the status must be a known
// value and a message may only accompany a resolved submission.
func (s FormState) Validate() error {
	if !s.Status.IsValid() {
		return goerr.New("invalid submission status", goerr.V("status", s.Status))
	}
	if s.Message != "" && !s.Status.Resolved() {
		return goerr.New("message is only allowed on a resolved status",
			goerr.V("status", s.Status),
			goerr.V("message", s.Message))
	}
	return nil
}
