package usecase

import (
	"context"
	"errors"
	"runtime/debug"
	"strings"
	"sync"

	"github.com/hatchway/onboard/pkg/domain/interfaces"
	"github.com/hatchway/onboard/pkg/domain/model"
	"github.com/hatchway/onboard/pkg/domain/types"
	"github.com/hatchway/onboard/pkg/utils/async"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Form owns the state of one onboarding form: the editable fields, the
// submission status and the user-facing message. All state changes go
// through its methods; at most one submission is in flight at a time.
type Form struct {
	submit interfaces.SubmitFunc

	mu       sync.Mutex
	fields   model.FormFields
	status   types.SubmissionStatus
	message  string
	inflight chan struct{}
}

// NewForm creates a form controller around the given submit operation
func NewForm(submit interfaces.SubmitFunc) *Form {
	return &Form{
		submit: submit,
		status: types.StatusIdle,
	}
}

var _ interfaces.FormController = (*Form)(nil)

// UpdateField overwrites the named field. Status and message are left
// untouched, so edits are allowed in any status, including while a
// submission is pending. Unknown field names are ignored.
func (f *Form) UpdateField(name types.FieldName, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch name {
	case types.FieldSlackWebhook:
		f.fields.SlackWebhook = value
	case types.FieldEmail:
		f.fields.Email = value
	}
}

// State returns a snapshot of the current form state
func (f *Form) State() model.FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

// Submit starts one submission attempt. The call is a silent no-op
// when a submission is already in flight or when email is empty; in
// that case it returns false and the unchanged state. Otherwise the
// form transitions to loading synchronously, the submit operation is
// dispatched with a copy of the current fields, and the method returns
// true with the loading state.
func (f *Form) Submit(ctx context.Context) (bool, model.FormState) {
	f.mu.Lock()

	if f.status.InFlight() {
		state := f.snapshotLocked()
		f.mu.Unlock()
		return false, state
	}
	if f.fields.Email == "" {
		state := f.snapshotLocked()
		f.mu.Unlock()
		return false, state
	}

	f.status = types.StatusLoading
	f.message = ""
	f.inflight = make(chan struct{})
	snapshot := f.fields
	state := f.snapshotLocked()
	f.mu.Unlock()

	// The operation runs on a background context that keeps the
	// logger but drops deadlines: once dispatched, a submission
	// cannot be cancelled. The resolution always lands on the form,
	// even if no host ever reads it again.
	async.Dispatch(ctx, func(ctx context.Context) error {
		result, err := f.invoke(ctx, snapshot)
		f.resolve(result, err)
		return nil
	})

	return true, state
}

// Wait blocks until the in-flight submission resolves. It returns
// immediately when nothing is in flight. Waiting is read-only: a
// cancelled wait does not affect the submission itself.
func (f *Form) Wait(ctx context.Context) error {
	f.mu.Lock()
	ch := f.inflight
	f.mu.Unlock()

	if ch == nil {
		return nil
	}

	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return goerr.Wrap(ctx.Err(), "interrupted while waiting for submission")
	}
}

// errSubmitPanicked marks a submit operation that panicked. The panic
// payload is logged, never shown to the user.
var errSubmitPanicked = goerr.New("submit operation panicked")

// invoke runs the submit operation, converting a panic into an error
// so a misbehaving collaborator can never crash the host
func (f *Form) invoke(ctx context.Context, fields model.FormFields) (result model.SubmitResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			ctxlog.From(ctx).Error("Panic in submit operation",
				"recover", r,
				"stack", string(debug.Stack()),
			)
			result = model.SubmitResult{}
			err = errSubmitPanicked
		}
	}()

	return f.submit(ctx, fields)
}

// resolve applies the outcome of a submission. An explicit failure and
// a returned error produce the same transition to error status; only
// the fallback message differs when no specific text is available.
func (f *Form) resolve(result model.SubmitResult, err error) {
	status := types.StatusSuccess
	message := model.MessageSetupCompleted

	switch {
	case err != nil:
		status = types.StatusError
		message = model.MessageSetupFailed
		if !errors.Is(err, errSubmitPanicked) {
			if text := strings.TrimSpace(err.Error()); text != "" {
				message = text
			}
		}
	case !result.Success:
		status = types.StatusError
		message = result.Error
		if strings.TrimSpace(message) == "" {
			message = model.MessageSomethingWrong
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.status = status
	f.message = message
	if f.inflight != nil {
		close(f.inflight)
		f.inflight = nil
	}
}

func (f *Form) snapshotLocked() model.FormState {
	return model.FormState{
		Fields:  f.fields,
		Status:  f.status,
		Message: f.message,
	}
}
