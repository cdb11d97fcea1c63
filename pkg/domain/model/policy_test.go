package model_test

import (
	"testing"
	"time"

	"github.com/hatchway/onboard/pkg/domain/model"
	"github.com/m-mizutani/gt"
	"gopkg.in/yaml.v3"
)

func TestDefaultSubmitPolicy(t *testing.T) {
	policy := model.DefaultSubmitPolicy()

	gt.Equal(t, policy.Delay, 2*time.Second)
	gt.Equal(t, policy.AllowedHosts, []string{"hooks.slack.com"})
	gt.NoError(t, policy.Validate())
}

func TestSubmitPolicyValidate(t *testing.T) {
	t.Run("negative delay is rejected", func(t *testing.T) {
		policy := model.DefaultSubmitPolicy()
		policy.Delay = -time.Second
		gt.Error(t, policy.Validate())
	})

	t.Run("no allowed hosts is rejected", func(t *testing.T) {
		policy := model.SubmitPolicy{}
		gt.Error(t, policy.Validate())
	})

	t.Run("blank allowed host is rejected", func(t *testing.T) {
		policy := model.SubmitPolicy{AllowedHosts: []string{"  "}}
		gt.Error(t, policy.Validate())
	})
}

func TestSubmitPolicyFirstViolation(t *testing.T) {
	policy := model.DefaultSubmitPolicy()

	t.Run("empty email is reported first", func(t *testing.T) {
		reason := policy.FirstViolation(model.FormFields{
			SlackWebhook: "https://example.com/hook",
		})
		gt.Equal(t, reason, model.MessageEmailRequired)
	})

	t.Run("webhook without allowed host is rejected", func(t *testing.T) {
		reason := policy.FirstViolation(model.FormFields{
			Email:        "user@example.com",
			SlackWebhook: "https://example.com/hook",
		})
		gt.Equal(t, reason, model.MessageInvalidWebhook)
	})

	t.Run("empty webhook is allowed", func(t *testing.T) {
		reason := policy.FirstViolation(model.FormFields{
			Email: "user@example.com",
		})
		gt.Equal(t, reason, "")
	})

	t.Run("webhook on allowed host passes", func(t *testing.T) {
		reason := policy.FirstViolation(model.FormFields{
			Email:        "user@example.com",
			SlackWebhook: "https://hooks.slack.com/services/T000/B000/XXX",
		})
		gt.Equal(t, reason, "")
	})
}

func TestSubmitPolicyUnmarshalYAML(t *testing.T) {
	t.Run("overlays given keys onto defaults", func(t *testing.T) {
		policy := model.DefaultSubmitPolicy()
		gt.NoError(t, yaml.Unmarshal([]byte("delay: 500ms\n"), &policy))

		gt.Equal(t, policy.Delay, 500*time.Millisecond)
		gt.Equal(t, policy.AllowedHosts, []string{"hooks.slack.com"})
	})

	t.Run("replaces allowed hosts when given", func(t *testing.T) {
		policy := model.DefaultSubmitPolicy()
		data := "allowed_hosts:\n  - hooks.slack.com\n  - hooks.example.com\n"
		gt.NoError(t, yaml.Unmarshal([]byte(data), &policy))

		gt.Equal(t, policy.AllowedHosts, []string{"hooks.slack.com", "hooks.example.com"})
		gt.Equal(t, policy.Delay, 2*time.Second)
	})

	t.Run("bad duration is rejected", func(t *testing.T) {
		policy := model.DefaultSubmitPolicy()
		gt.Error(t, yaml.Unmarshal([]byte("delay: soon\n"), &policy))
	})
}
