package model

import (
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"gopkg.in/yaml.v3"
)

// DefaultSubmitDelay is the simulated processing time of the stand-in
// submit operation
const DefaultSubmitDelay = 2 * time.Second

// SubmitPolicy is the validation policy applied by the shipped submit
// operations: a simulated processing delay and the set of host
// substrings a non-empty webhook URL must contain.
type SubmitPolicy struct {
	Delay        time.Duration
	AllowedHosts []string
}

// DefaultSubmitPolicy returns the policy used when no policy file is given
func DefaultSubmitPolicy() SubmitPolicy {
	return SubmitPolicy{
		Delay:        DefaultSubmitDelay,
		AllowedHosts: []string{"hooks.slack.com"},
	}
}

// UnmarshalYAML decodes the policy from YAML. The delay is given in
// Go duration syntax ("2s", "500ms"); omitted keys keep their current
// values, so decoding into a default policy yields an overlay.
func (p *SubmitPolicy) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Delay        string   `yaml:"delay"`
		AllowedHosts []string `yaml:"allowed_hosts"`
	}
	if err := value.Decode(&raw); err != nil {
		return goerr.Wrap(err, "failed to decode submit policy")
	}

	if raw.Delay != "" {
		d, err := time.ParseDuration(raw.Delay)
		if err != nil {
			return goerr.Wrap(err, "invalid delay", goerr.V("delay", raw.Delay))
		}
		p.Delay = d
	}
	if raw.AllowedHosts != nil {
		p.AllowedHosts = raw.AllowedHosts
	}
	return nil
}

// Validate validates the policy
func (p SubmitPolicy) Validate() error {
	if p.Delay < 0 {
		return goerr.New("delay must not be negative", goerr.V("delay", p.Delay))
	}
	if len(p.AllowedHosts) == 0 {
		return goerr.New("at least one allowed host is required")
	}
	for _, host := range p.AllowedHosts {
		if strings.TrimSpace(host) == "" {
			return goerr.New("allowed host cannot be empty")
		}
	}
	return nil
}

// FirstViolation checks the fields against the policy and returns the
// user-facing reason of the first violation, or an empty string when
// the fields pass. Email is required; the webhook URL is optional but
// must name an allowed host when present.
func (p SubmitPolicy) FirstViolation(fields FormFields) string {
	if fields.Email == "" {
		return MessageEmailRequired
	}
	if fields.SlackWebhook != "" && !p.webhookAllowed(fields.SlackWebhook) {
		return MessageInvalidWebhook
	}
	return ""
}

func (p SubmitPolicy) webhookAllowed(url string) bool {
	for _, host := range p.AllowedHosts {
		if strings.Contains(url, host) {
			return true
		}
	}
	return false
}
