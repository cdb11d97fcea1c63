package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/hatchway/onboard/pkg/domain/model"
	"github.com/hatchway/onboard/pkg/domain/types"
	"github.com/hatchway/onboard/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
)

// fakeSubmit records every invocation and optionally blocks on a gate
// until the test releases it
type fakeSubmit struct {
	mu     sync.Mutex
	calls  []model.FormFields
	gate   chan struct{}
	result model.SubmitResult
	err    error
}

func (f *fakeSubmit) fn(ctx context.Context, fields model.FormFields) (model.SubmitResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, fields)
	f.mu.Unlock()

	if f.gate != nil {
		<-f.gate
	}
	return f.result, f.err
}

func (f *fakeSubmit) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeSubmit) call(i int) model.FormFields {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[i]
}

func waitCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestFormUpdateField(t *testing.T) {
	t.Run("last write per field wins", func(t *testing.T) {
		form := usecase.NewForm((&fakeSubmit{}).fn)

		form.UpdateField(types.FieldEmail, "first@example.com")
		form.UpdateField(types.FieldSlackWebhook, "https://hooks.slack.com/services/a")
		form.UpdateField(types.FieldEmail, "second@example.com")

		state := form.State()
		gt.Equal(t, state.Fields.Email, "second@example.com")
		gt.Equal(t, state.Fields.SlackWebhook, "https://hooks.slack.com/services/a")
	})

	t.Run("never changes status or message", func(t *testing.T) {
		form := usecase.NewForm((&fakeSubmit{}).fn)

		form.UpdateField(types.FieldEmail, "user@example.com")

		state := form.State()
		gt.Equal(t, state.Status, types.StatusIdle)
		gt.Equal(t, state.Message, "")
	})

	t.Run("unknown field name is ignored", func(t *testing.T) {
		form := usecase.NewForm((&fakeSubmit{}).fn)

		form.UpdateField(types.FieldName("phone"), "555-0100")

		state := form.State()
		gt.Equal(t, state.Fields, model.FormFields{})
	})
}

func TestFormSubmitGuards(t *testing.T) {
	t.Run("empty email never invokes the operation", func(t *testing.T) {
		fake := &fakeSubmit{result: model.SubmitOK()}
		form := usecase.NewForm(fake.fn)

		before := form.State()
		started, after := form.Submit(context.Background())

		gt.False(t, started)
		gt.Equal(t, after, before)
		gt.Equal(t, fake.callCount(), 0)
	})

	t.Run("second submit while loading is a no-op", func(t *testing.T) {
		fake := &fakeSubmit{result: model.SubmitOK(), gate: make(chan struct{})}
		form := usecase.NewForm(fake.fn)
		form.UpdateField(types.FieldEmail, "user@example.com")

		started, first := form.Submit(context.Background())
		gt.True(t, started)
		gt.Equal(t, first.Status, types.StatusLoading)

		started, second := form.Submit(context.Background())
		gt.False(t, started)
		gt.Equal(t, second, first)

		close(fake.gate)
		gt.NoError(t, form.Wait(waitCtx(t)))
		gt.Equal(t, fake.callCount(), 1)
	})
}

func TestFormSubmitSuccess(t *testing.T) {
	fake := &fakeSubmit{result: model.SubmitOK(), gate: make(chan struct{})}
	form := usecase.NewForm(fake.fn)
	form.UpdateField(types.FieldEmail, "user@example.com")

	started, state := form.Submit(context.Background())
	gt.True(t, started)

	// Loading is observable synchronously, before the operation resolves
	gt.Equal(t, state.Status, types.StatusLoading)
	gt.Equal(t, state.Message, "")

	close(fake.gate)
	gt.NoError(t, form.Wait(waitCtx(t)))

	state = form.State()
	gt.Equal(t, state.Status, types.StatusSuccess)
	gt.Equal(t, state.Message, model.MessageSetupCompleted)
}

func TestFormSubmitFailure(t *testing.T) {
	t.Run("explicit failure surfaces the reason verbatim", func(t *testing.T) {
		fake := &fakeSubmit{result: model.SubmitRejected(model.MessageInvalidWebhook)}
		form := usecase.NewForm(fake.fn)
		form.UpdateField(types.FieldEmail, "user@example.com")

		started, _ := form.Submit(context.Background())
		gt.True(t, started)
		gt.NoError(t, form.Wait(waitCtx(t)))

		state := form.State()
		gt.Equal(t, state.Status, types.StatusError)
		gt.Equal(t, state.Message, model.MessageInvalidWebhook)
	})

	t.Run("explicit failure without reason falls back to generic message", func(t *testing.T) {
		fake := &fakeSubmit{result: model.SubmitResult{Success: false}}
		form := usecase.NewForm(fake.fn)
		form.UpdateField(types.FieldEmail, "user@example.com")

		form.Submit(context.Background())
		gt.NoError(t, form.Wait(waitCtx(t)))

		state := form.State()
		gt.Equal(t, state.Status, types.StatusError)
		gt.Equal(t, state.Message, model.MessageSomethingWrong)
	})

	t.Run("returned error surfaces its description", func(t *testing.T) {
		fake := &fakeSubmit{err: goerr.New("connection refused")}
		form := usecase.NewForm(fake.fn)
		form.UpdateField(types.FieldEmail, "user@example.com")

		form.Submit(context.Background())
		gt.NoError(t, form.Wait(waitCtx(t)))

		state := form.State()
		gt.Equal(t, state.Status, types.StatusError)
		gt.Equal(t, state.Message, "connection refused")
	})

	t.Run("error without description falls back to fault message", func(t *testing.T) {
		fake := &fakeSubmit{err: errors.New("")}
		form := usecase.NewForm(fake.fn)
		form.UpdateField(types.FieldEmail, "user@example.com")

		form.Submit(context.Background())
		gt.NoError(t, form.Wait(waitCtx(t)))

		state := form.State()
		gt.Equal(t, state.Status, types.StatusError)
		gt.Equal(t, state.Message, model.MessageSetupFailed)
	})

	t.Run("fields survive a failed submission", func(t *testing.T) {
		fake := &fakeSubmit{result: model.SubmitRejected("nope")}
		form := usecase.NewForm(fake.fn)
		form.UpdateField(types.FieldEmail, "user@example.com")
		form.UpdateField(types.FieldSlackWebhook, "https://hooks.slack.com/services/a")

		form.Submit(context.Background())
		gt.NoError(t, form.Wait(waitCtx(t)))

		state := form.State()
		gt.Equal(t, state.Fields.Email, "user@example.com")
		gt.Equal(t, state.Fields.SlackWebhook, "https://hooks.slack.com/services/a")
	})
}

func TestFormSubmitPanic(t *testing.T) {
	t.Run("panic resolves to error with fault fallback message", func(t *testing.T) {
		panicky := func(ctx context.Context, fields model.FormFields) (model.SubmitResult, error) {
			panic("boom")
		}
		form := usecase.NewForm(panicky)
		form.UpdateField(types.FieldEmail, "user@example.com")

		started, _ := form.Submit(context.Background())
		gt.True(t, started)
		gt.NoError(t, form.Wait(waitCtx(t)))

		state := form.State()
		gt.Equal(t, state.Status, types.StatusError)
		gt.Equal(t, state.Message, model.MessageSetupFailed)
	})

	t.Run("form remains usable after a panic", func(t *testing.T) {
		count := 0
		var mu sync.Mutex
		flaky := func(ctx context.Context, fields model.FormFields) (model.SubmitResult, error) {
			mu.Lock()
			count++
			first := count == 1
			mu.Unlock()
			if first {
				panic("boom")
			}
			return model.SubmitOK(), nil
		}
		form := usecase.NewForm(flaky)
		form.UpdateField(types.FieldEmail, "user@example.com")

		form.Submit(context.Background())
		gt.NoError(t, form.Wait(waitCtx(t)))
		gt.Equal(t, form.State().Status, types.StatusError)

		started, _ := form.Submit(context.Background())
		gt.True(t, started)
		gt.NoError(t, form.Wait(waitCtx(t)))
		gt.Equal(t, form.State().Status, types.StatusSuccess)
	})
}

func TestFormResubmission(t *testing.T) {
	fake := &fakeSubmit{result: model.SubmitOK()}
	form := usecase.NewForm(fake.fn)
	form.UpdateField(types.FieldEmail, "user@example.com")

	form.Submit(context.Background())
	gt.NoError(t, form.Wait(waitCtx(t)))
	gt.Equal(t, form.State().Status, types.StatusSuccess)

	// Success is not terminal: submit transitions back to loading
	started, state := form.Submit(context.Background())
	gt.True(t, started)
	gt.Equal(t, state.Status, types.StatusLoading)
	gt.Equal(t, state.Message, "")

	gt.NoError(t, form.Wait(waitCtx(t)))
	gt.Equal(t, fake.callCount(), 2)
}

func TestFormSnapshotIsolation(t *testing.T) {
	fake := &fakeSubmit{result: model.SubmitOK(), gate: make(chan struct{})}
	form := usecase.NewForm(fake.fn)
	form.UpdateField(types.FieldEmail, "a@x.com")

	started, _ := form.Submit(context.Background())
	gt.True(t, started)

	// Edit while the submission is pending
	form.UpdateField(types.FieldEmail, "b@x.com")

	close(fake.gate)
	gt.NoError(t, form.Wait(waitCtx(t)))

	// The in-flight operation saw the snapshot, not the edit
	gt.Equal(t, fake.call(0).Email, "a@x.com")
	gt.Equal(t, form.State().Fields.Email, "b@x.com")
}

func TestFormWait(t *testing.T) {
	t.Run("returns immediately when nothing is in flight", func(t *testing.T) {
		form := usecase.NewForm((&fakeSubmit{}).fn)
		gt.NoError(t, form.Wait(context.Background()))
	})

	t.Run("cancelled wait does not affect the submission", func(t *testing.T) {
		fake := &fakeSubmit{result: model.SubmitOK(), gate: make(chan struct{})}
		form := usecase.NewForm(fake.fn)
		form.UpdateField(types.FieldEmail, "user@example.com")
		form.Submit(context.Background())

		cancelled, cancel := context.WithCancel(context.Background())
		cancel()
		gt.Error(t, form.Wait(cancelled))

		close(fake.gate)
		gt.NoError(t, form.Wait(waitCtx(t)))
		gt.Equal(t, form.State().Status, types.StatusSuccess)
	})
}
