package interfaces

import (
	"context"

	"github.com/hatchway/onboard/pkg/domain/model"
	"github.com/hatchway/onboard/pkg/domain/types"
)

// SubmitFunc performs the actual onboarding work for one snapshot of
// form fields. It is supplied by the host; the form state machine has
// no opinion on transport. A failed operation is reported either as a
// SubmitResult with Success=false or as a non-nil error.
type SubmitFunc func(ctx context.Context, fields model.FormFields) (model.SubmitResult, error)

// FormController is what hosts need from one onboarding form instance
type FormController interface {
	// UpdateField overwrites the named field. It never changes the
	// submission status and ignores unknown field names.
	UpdateField(name types.FieldName, value string)

	// Submit starts one submission attempt. It reports whether an
	// attempt actually started along with a state snapshot taken
	// right after the call; a false return means the call was a
	// silent no-op (already loading, or email empty).
	Submit(ctx context.Context) (bool, model.FormState)

	// Wait blocks until the in-flight submission resolves, or until
	// ctx is done. It returns immediately when nothing is in flight.
	Wait(ctx context.Context) error

	// State returns a snapshot of the current form state
	State() model.FormState
}

// SessionRegistry tracks live form controllers by session ID
type SessionRegistry interface {
	Create(ctx context.Context, ctrl FormController) (types.SessionID, error)
	Get(ctx context.Context, id types.SessionID) (FormController, error)
	Delete(ctx context.Context, id types.SessionID) error
	Close()
}
