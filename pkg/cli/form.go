package cli

import (
	"context"
	"log/slog"

	"github.com/hatchway/onboard/pkg/cli/config"
	"github.com/hatchway/onboard/pkg/controller/tui"
	"github.com/hatchway/onboard/pkg/service/submit"
	"github.com/hatchway/onboard/pkg/usecase"
	"github.com/m-mizutani/ctxlog"
	"github.com/urfave/cli/v3"
)

func cmdForm() *cli.Command {
	var (
		submitCfg config.Submit
		slackCfg  config.Slack
	)

	flags := joinFlags(
		submitCfg.Flags(),
		slackCfg.Flags(),
	)

	return &cli.Command{
		Name:  "form",
		Usage: "Run the onboarding form in the terminal",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)
			logger.Debug("Starting onboarding form",
				slog.Any("submit", submitCfg),
				slog.Any("slack", slackCfg),
			)

			policy, err := submitCfg.Configure()
			if err != nil {
				return err
			}

			submitFn := slackCfg.ConfigureOptional(policy)
			if submitFn == nil {
				submitFn = submit.NewSimulated(policy)
			}

			runner := tui.NewRunner(tui.NewSurveyDriver(), usecase.NewForm(submitFn))
			return runner.Run(ctx)
		},
	}
}
