package config

import (
	"log/slog"
	"os"
	"time"

	"github.com/hatchway/onboard/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Submit holds the submit operation policy configuration
type Submit struct {
	Delay      time.Duration
	PolicyPath string
}

// Flags returns CLI flags for Submit configuration
func (s *Submit) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.DurationFlag{
			Name:        "submit-delay",
			Usage:       "Simulated processing delay of the submit operation",
			Category:    "Submit",
			Value:       model.DefaultSubmitDelay,
			Sources:     cli.EnvVars("ONBOARD_SUBMIT_DELAY"),
			Destination: &s.Delay,
		},
		&cli.StringFlag{
			Name:        "submit-policy",
			Usage:       "Path to a YAML submit policy file (delay, allowed_hosts)",
			Category:    "Submit",
			Sources:     cli.EnvVars("ONBOARD_SUBMIT_POLICY"),
			Destination: &s.PolicyPath,
		},
	}
}

// Configure builds the submit policy. A policy file, when given, wins
// over the delay flag.
func (s *Submit) Configure() (model.SubmitPolicy, error) {
	if s.PolicyPath != "" {
		return LoadSubmitPolicyFromFile(s.PolicyPath)
	}

	policy := model.DefaultSubmitPolicy()
	policy.Delay = s.Delay
	if err := policy.Validate(); err != nil {
		return model.SubmitPolicy{}, err
	}
	return policy, nil
}

// LogValue returns structured log value
func (s Submit) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Duration("delay", s.Delay),
		slog.String("policy_path", s.PolicyPath),
	)
}

// LoadSubmitPolicyFromFile loads a submit policy from a YAML file
func LoadSubmitPolicyFromFile(path string) (model.SubmitPolicy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.SubmitPolicy{}, goerr.Wrap(err, "policy file not found",
				goerr.V("path", path))
		}
		return model.SubmitPolicy{}, goerr.Wrap(err, "failed to read policy file",
			goerr.V("path", path))
	}

	policy := model.DefaultSubmitPolicy()
	if err := yaml.Unmarshal(data, &policy); err != nil {
		return model.SubmitPolicy{}, goerr.Wrap(err, "failed to parse policy file",
			goerr.V("path", path))
	}

	if err := policy.Validate(); err != nil {
		return model.SubmitPolicy{}, goerr.Wrap(err, "invalid submit policy",
			goerr.V("path", path))
	}

	return policy, nil
}
