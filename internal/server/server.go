package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/pageza/dietplan/backend/config"
	"github.com/pageza/dietplan/backend/internal/router"
	"github.com/pageza/dietplan/backend/internal/service"
)

// Server represents the HTTP server
type Server struct {
	handler         http.Handler
	http            *http.Server
	shutdownTimeout time.Duration
}

// New builds the diet plan service from cfg and wires it into an HTTP server.
func New(cfg *config.Config) (*Server, error) {
	matcher, err := service.NewMatcher(cfg.ComplianceMatchMode)
	if err != nil {
		return nil, err
	}

	completer := service.NewCompletionClient(service.CompletionConfig{
		APIKey:  cfg.CompletionAPIKey,
		APIURL:  cfg.CompletionAPIURL,
		Timeout: cfg.CompletionTimeout,
	})

	dietService := service.NewDietPlanService(completer, service.DietPlanOptions{
		Model:       cfg.CompletionModel,
		Temperature: cfg.CompletionTemperature,
		Matcher:     matcher,
	})

	return NewServer(cfg, router.SetupRouter(cfg, dietService)), nil
}

// NewServer creates a new server instance around handler
func NewServer(cfg *config.Config, handler http.Handler) *Server {
	return &Server{
		handler: handler,
		http: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
			// Writes must outlast the completion call.
			WriteTimeout: cfg.CompletionTimeout + 10*time.Second,
			IdleTimeout:  120 * time.Second,
		},
		shutdownTimeout: cfg.ShutdownTimeout,
	}
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Addr returns the listen address
func (s *Server) Addr() string {
	return s.http.Addr
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.WithField("addr", s.http.Addr).Info("Starting server")
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		return s.Stop(context.Background())
	})

	return g.Wait()
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.shutdownTimeout)
	defer cancel()

	log.Info("Shutting down server")
	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
