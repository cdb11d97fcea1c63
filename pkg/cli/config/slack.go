package config

import (
	"log/slog"
	"time"

	"github.com/hatchway/onboard/pkg/domain/interfaces"
	"github.com/hatchway/onboard/pkg/domain/model"
	slackSvc "github.com/hatchway/onboard/pkg/service/slack"
	"github.com/urfave/cli/v3"
)

// Slack holds the opt-in live webhook delivery configuration
type Slack struct {
	Deliver bool
	Timeout time.Duration
	Message string
}

// Flags returns CLI flags for Slack configuration
func (s *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "slack-deliver",
			Usage:       "Post a welcome message to the submitted webhook instead of simulating the submission",
			Category:    "Slack",
			Sources:     cli.EnvVars("ONBOARD_SLACK_DELIVER"),
			Destination: &s.Deliver,
		},
		&cli.DurationFlag{
			Name:        "slack-timeout",
			Usage:       "Timeout for one webhook delivery",
			Category:    "Slack",
			Value:       slackSvc.DefaultTimeout,
			Sources:     cli.EnvVars("ONBOARD_SLACK_TIMEOUT"),
			Destination: &s.Timeout,
		},
		&cli.StringFlag{
			Name:        "slack-message",
			Usage:       "Message posted to the webhook on successful onboarding",
			Category:    "Slack",
			Sources:     cli.EnvVars("ONBOARD_SLACK_MESSAGE"),
			Destination: &s.Message,
		},
	}
}

// ConfigureOptional returns the live delivery submit operation when
// enabled, or nil when the simulated default should be used
func (s *Slack) ConfigureOptional(policy model.SubmitPolicy) interfaces.SubmitFunc {
	if !s.Deliver {
		return nil
	}
	sender := slackSvc.NewWebhookSender(policy, s.Timeout, slackSvc.WithMessage(s.Message))
	return sender.SubmitFunc()
}

// LogValue returns structured log value
func (s Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("deliver", s.Deliver),
		slog.Duration("timeout", s.Timeout),
		slog.Bool("has_custom_message", s.Message != ""),
	)
}
