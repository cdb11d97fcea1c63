package slack

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/hatchway/onboard/pkg/domain/interfaces"
	"github.com/hatchway/onboard/pkg/domain/model"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
)

// DefaultMessage is posted to the submitted webhook when no custom
// message is configured
const DefaultMessage = "You're all set! This channel will now receive updates."

// DefaultTimeout bounds one webhook delivery attempt
const DefaultTimeout = 10 * time.Second

// WebhookSender is the opt-in live submit operation: after the policy
// check it posts a welcome message to the submitted Slack webhook URL.
// A policy violation is an explicit rejection; a delivery failure is
// an operation fault.
type WebhookSender struct {
	policy     model.SubmitPolicy
	message    string
	httpClient *http.Client
}

// Option configures a WebhookSender
type Option func(*WebhookSender)

// WithHTTPClient replaces the HTTP client used for delivery
func WithHTTPClient(client *http.Client) Option {
	return func(s *WebhookSender) {
		s.httpClient = client
	}
}

// WithMessage replaces the message posted to the webhook
func WithMessage(message string) Option {
	return func(s *WebhookSender) {
		if message != "" {
			s.message = message
		}
	}
}

// NewWebhookSender creates a live webhook delivery sender
func NewWebhookSender(policy model.SubmitPolicy, timeout time.Duration, opts ...Option) *WebhookSender {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	s := &WebhookSender{
		policy:     policy,
		message:    DefaultMessage,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit implements the submit operation contract. A submission
// without a webhook URL succeeds without delivery; onboarding with
// email only is allowed.
func (s *WebhookSender) Submit(ctx context.Context, fields model.FormFields) (model.SubmitResult, error) {
	if reason := s.policy.FirstViolation(fields); reason != "" {
		return model.SubmitRejected(reason), nil
	}

	if fields.SlackWebhook == "" {
		return model.SubmitOK(), nil
	}

	msg := &slack.WebhookMessage{Text: s.message}
	if err := slack.PostWebhookCustomHTTPContext(ctx, fields.SlackWebhook, s.httpClient, msg); err != nil {
		return model.SubmitResult{}, goerr.Wrap(err, "failed to deliver welcome message",
			goerr.V("webhook_host", hostOf(fields.SlackWebhook)))
	}

	ctxlog.From(ctx).Info("Delivered welcome message",
		"webhook_host", hostOf(fields.SlackWebhook),
	)
	return model.SubmitOK(), nil
}

// SubmitFunc adapts the sender to the injected operation type
func (s *WebhookSender) SubmitFunc() interfaces.SubmitFunc {
	return s.Submit
}

// hostOf extracts the host for logging; the full URL embeds a secret path
func hostOf(webhook string) string {
	u, err := url.Parse(webhook)
	if err != nil {
		return "invalid"
	}
	return u.Host
}
