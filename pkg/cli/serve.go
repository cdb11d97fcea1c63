package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hatchway/onboard/pkg/cli/config"
	controller "github.com/hatchway/onboard/pkg/controller/http"
	"github.com/hatchway/onboard/pkg/service/submit"
	"github.com/hatchway/onboard/pkg/usecase"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg config.Server
		submitCfg config.Submit
		slackCfg  config.Slack
	)

	flags := joinFlags(
		serverCfg.Flags(),
		submitCfg.Flags(),
		slackCfg.Flags(),
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Start HTTP server",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting onboard server",
				slog.Any("server", serverCfg),
				slog.Any("submit", submitCfg),
				slog.Any("slack", slackCfg),
			)

			// Build the submit policy and collaborator
			policy, err := submitCfg.Configure()
			if err != nil {
				return err
			}

			submitFn := slackCfg.ConfigureOptional(policy)
			if submitFn == nil {
				logger.Info("Using simulated submit operation")
				submitFn = submit.NewSimulated(policy)
			} else {
				logger.Info("Using live Slack webhook delivery")
			}

			// Create session registry and use case
			sessions := serverCfg.Configure()
			defer sessions.Close()

			onboardingUC := usecase.NewOnboarding(sessions, submitFn)

			// Create HTTP server
			server, err := controller.NewServer(ctx, serverCfg.Addr, onboardingUC)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			// Start server in goroutine
			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			// Graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
