package usecase

import (
	"context"

	"github.com/hatchway/onboard/pkg/domain/interfaces"
	"github.com/hatchway/onboard/pkg/domain/model"
	"github.com/hatchway/onboard/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Onboarding manages onboarding form sessions: one form controller per
// rendered page, tracked in a session registry. All controllers share
// the same injected submit operation.
type Onboarding struct {
	sessions interfaces.SessionRegistry
	submit   interfaces.SubmitFunc
}

// NewOnboarding creates a new Onboarding use case
func NewOnboarding(sessions interfaces.SessionRegistry, submit interfaces.SubmitFunc) *Onboarding {
	return &Onboarding{
		sessions: sessions,
		submit:   submit,
	}
}

var _ OnboardingUseCase = (*Onboarding)(nil)

// CreateSession creates a fresh form session and returns its initial state
func (uc *Onboarding) CreateSession(ctx context.Context) (types.SessionID, model.FormState, error) {
	ctrl := NewForm(uc.submit)

	id, err := uc.sessions.Create(ctx, ctrl)
	if err != nil {
		return "", model.FormState{}, goerr.Wrap(err, "failed to create form session")
	}

	return id, ctrl.State(), nil
}

// State returns the current state of the session's form
func (uc *Onboarding) State(ctx context.Context, id types.SessionID) (model.FormState, error) {
	ctrl, err := uc.sessions.Get(ctx, id)
	if err != nil {
		return model.FormState{}, err
	}
	return ctrl.State(), nil
}

// UpdateField overwrites one field of the session's form and returns
// the resulting state. Field name validity is checked by the caller;
// the controller ignores unknown names.
func (uc *Onboarding) UpdateField(ctx context.Context, id types.SessionID, name types.FieldName, value string) (model.FormState, error) {
	ctrl, err := uc.sessions.Get(ctx, id)
	if err != nil {
		return model.FormState{}, err
	}

	ctrl.UpdateField(name, value)
	return ctrl.State(), nil
}

// Submit starts one submission attempt on the session's form and
// returns immediately with the loading state. A false started value
// means the attempt was a silent no-op.
func (uc *Onboarding) Submit(ctx context.Context, id types.SessionID) (bool, model.FormState, error) {
	ctrl, err := uc.sessions.Get(ctx, id)
	if err != nil {
		return false, model.FormState{}, err
	}

	started, state := ctrl.Submit(ctx)
	return started, state, nil
}

// SubmitAndWait starts one submission attempt and blocks until it
// resolves, returning the final state
func (uc *Onboarding) SubmitAndWait(ctx context.Context, id types.SessionID) (bool, model.FormState, error) {
	ctrl, err := uc.sessions.Get(ctx, id)
	if err != nil {
		return false, model.FormState{}, err
	}

	started, state := ctrl.Submit(ctx)
	if !started {
		return false, state, nil
	}

	if err := ctrl.Wait(ctx); err != nil {
		return true, ctrl.State(), err
	}
	return true, ctrl.State(), nil
}

// EndSession removes the session. An in-flight submission is not
// interrupted; its resolution lands on the orphaned controller.
func (uc *Onboarding) EndSession(ctx context.Context, id types.SessionID) error {
	return uc.sessions.Delete(ctx, id)
}
