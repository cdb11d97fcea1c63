package config

import (
	"log/slog"
	"time"

	"github.com/hatchway/onboard/pkg/repository"
	"github.com/urfave/cli/v3"
)

// Server holds server configuration
type Server struct {
	Addr       string
	SessionTTL time.Duration
}

// Flags returns CLI flags for Server configuration
func (s *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Server address",
			Value:       "localhost:8080",
			Sources:     cli.EnvVars("ONBOARD_ADDR"),
			Destination: &s.Addr,
		},
		&cli.DurationFlag{
			Name:        "session-ttl",
			Usage:       "Idle lifetime of a form session",
			Value:       repository.DefaultSessionTTL,
			Sources:     cli.EnvVars("ONBOARD_SESSION_TTL"),
			Destination: &s.SessionTTL,
		},
	}
}

// Configure creates the session registry for this server
func (s *Server) Configure() *repository.MemorySessions {
	return repository.NewMemorySessions(s.SessionTTL)
}

// LogValue returns structured log value
func (s Server) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("addr", s.Addr),
		slog.Duration("session_ttl", s.SessionTTL),
	)
}
