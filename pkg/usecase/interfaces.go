package usecase

import (
	"context"

	"github.com/hatchway/onboard/pkg/domain/model"
	"github.com/hatchway/onboard/pkg/domain/types"
)

// OnboardingUseCase defines the interface for onboarding session operations
type OnboardingUseCase interface {
	// CreateSession creates a fresh form session
	CreateSession(ctx context.Context) (types.SessionID, model.FormState, error)

	// State returns the current state of the session's form
	State(ctx context.Context, id types.SessionID) (model.FormState, error)

	// UpdateField overwrites one field and returns the resulting state
	UpdateField(ctx context.Context, id types.SessionID, name types.FieldName, value string) (model.FormState, error)

	// Submit starts one submission attempt without waiting for resolution
	Submit(ctx context.Context, id types.SessionID) (bool, model.FormState, error)

	// SubmitAndWait starts one submission attempt and waits for the outcome
	SubmitAndWait(ctx context.Context, id types.SessionID) (bool, model.FormState, error)

	// EndSession removes the session
	EndSession(ctx context.Context, id types.SessionID) error
}
