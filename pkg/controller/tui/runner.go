package tui

import (
	"context"
	"errors"

	"github.com/hatchway/onboard/pkg/domain/interfaces"
	"github.com/hatchway/onboard/pkg/domain/types"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Runner walks one onboarding form through the terminal: prompt for
// the fields, submit, report the outcome, and offer edit-and-resubmit.
type Runner struct {
	driver PromptDriver
	ctrl   interfaces.FormController
}

// NewRunner creates a terminal form runner
func NewRunner(driver PromptDriver, ctrl interfaces.FormController) *Runner {
	return &Runner{
		driver: driver,
		ctrl:   ctrl,
	}
}

// Run executes the form flow until the user is done or interrupts.
// An interrupted prompt ends the flow quietly.
func (r *Runner) Run(ctx context.Context) error {
	for {
		if err := r.editFields(ctx); err != nil {
			if errors.Is(err, ErrAborted) {
				return nil
			}
			return err
		}

		started, _ := r.ctrl.Submit(ctx)
		if !started {
			// Only reachable when email is empty despite the prompt guard
			if err := r.driver.Info(ctx, "Nothing to submit yet."); err != nil {
				return err
			}
			continue
		}

		if err := r.driver.Info(ctx, "Submitting..."); err != nil {
			return err
		}
		if err := r.ctrl.Wait(ctx); err != nil {
			return goerr.Wrap(err, "failed waiting for submission")
		}

		state := r.ctrl.State()
		if err := r.driver.Info(ctx, state.Message); err != nil {
			return err
		}

		again, err := r.confirmNextRound(ctx, state.Status)
		if err != nil {
			if errors.Is(err, ErrAborted) {
				return nil
			}
			return err
		}
		if !again {
			return nil
		}
	}
}

// editFields prompts for the two form fields. The webhook is optional;
// email is required and re-prompted while empty, mirroring the page's
// disabled submit button.
func (r *Runner) editFields(ctx context.Context) error {
	current := r.ctrl.State().Fields

	webhook, err := r.driver.Input(ctx, InputConfig{
		Message: "Slack webhook URL (optional)",
		Default: current.SlackWebhook,
		Help:    "Incoming webhook from your Slack workspace, e.g. https://hooks.slack.com/services/...",
	})
	if err != nil {
		return err
	}
	r.ctrl.UpdateField(types.FieldSlackWebhook, webhook)

	for {
		email, err := r.driver.Input(ctx, InputConfig{
			Message: "Email",
			Default: current.Email,
		})
		if err != nil {
			return err
		}
		if email == "" {
			if err := r.driver.Info(ctx, "Email is required to continue."); err != nil {
				return err
			}
			continue
		}
		r.ctrl.UpdateField(types.FieldEmail, email)
		return nil
	}
}

func (r *Runner) confirmNextRound(ctx context.Context, status types.SubmissionStatus) (bool, error) {
	switch status {
	case types.StatusError:
		return r.driver.Confirm(ctx, ConfirmConfig{
			Message: "Edit the fields and try again?",
			Default: true,
		})
	case types.StatusSuccess:
		return r.driver.Confirm(ctx, ConfirmConfig{
			Message: "Submit again?",
			Default: false,
		})
	default:
		ctxlog.From(ctx).Warn("Unexpected status after submission", "status", status)
		return false, nil
	}
}
