package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hatchway/onboard/frontend"
	"github.com/hatchway/onboard/pkg/domain/model"
	"github.com/hatchway/onboard/pkg/usecase"
	"github.com/hatchway/onboard/pkg/utils/apperr"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Server represents the HTTP server
type Server struct {
	*http.Server
	router            chi.Router
	onboardingHandler *OnboardingHandler
}

// NewServer creates a new HTTP server serving the onboarding page and
// its JSON API
func NewServer(ctx context.Context, addr string, onboardingUC usecase.OnboardingUseCase) (*Server, error) {
	if onboardingUC == nil {
		return nil, goerr.New("onboarding use case is required")
	}

	router := chi.NewRouter()

	// Apply global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	onboardingHandler := NewOnboardingHandler(onboardingUC)

	// Health check
	router.Get("/health", handleHealth)

	// API routes
	router.Route("/api/onboarding", func(r chi.Router) {
		r.Post("/session", onboardingHandler.HandleCreateSession)
		r.Delete("/session", onboardingHandler.HandleEndSession)
		r.Get("/state", onboardingHandler.HandleState)
		r.Patch("/fields", onboardingHandler.HandleUpdateField)
		r.Post("/submit", onboardingHandler.HandleSubmit)
	})

	// Onboarding page (served from embedded files when built)
	fs, err := frontend.GetHTTPFS()
	if err != nil {
		ctxlog.From(ctx).Warn("Failed to get embedded frontend, using fallback",
			"error", err,
		)
		router.Get("/*", handleFallbackHome)
	} else {
		ctxlog.From(ctx).Info("Serving frontend from embedded files")
		fileServer := http.FileServer(fs)
		router.Handle("/*", fileServer)
	}

	server := &Server{
		Server: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
		router:            router,
		onboardingHandler: onboardingHandler,
	}

	return server, nil
}

// handleHealth handles health check requests
func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "onboard",
	}); err != nil {
		ctxlog.From(r.Context()).Error("Failed to encode health response", "error", err)
	}
}

// handleFallbackHome handles the root path when the frontend build is
// not embedded
func handleFallbackHome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(`<!DOCTYPE html>
<html>
<head>
    <title>Onboard</title>
</head>
<body>
    <h1>Onboard</h1>
    <p>The onboarding page is not embedded in this build.</p>
    <p>The JSON API is available under <code>/api/onboarding</code>.</p>
</body>
</html>`)); err != nil {
		ctxlog.From(r.Context()).Error("Failed to write fallback home page", "error", err)
	}
}

// writeError writes an error response. A missing session maps to 404.
func writeError(w http.ResponseWriter, r *http.Request, err error, status int) {
	if errors.Is(err, model.ErrSessionNotFound) {
		status = http.StatusNotFound
	}
	if status >= http.StatusInternalServerError {
		apperr.Handle(r.Context(), err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	var message string
	if goErr := goerr.Unwrap(err); goErr != nil {
		message = goErr.Error()
	} else {
		message = err.Error()
	}

	if err := json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	}); err != nil {
		ctxlog.From(r.Context()).Error("Failed to encode error response", "error", err)
	}
}
