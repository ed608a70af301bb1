package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/pageza/dietplan/backend/config"
	"github.com/pageza/dietplan/backend/internal/logging"
	"github.com/pageza/dietplan/backend/internal/server"
)

func main() {
	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logging.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Fatalf("Failed to configure logging: %v", err)
	}

	log.WithFields(log.Fields{
		"environment": cfg.Environment,
		"model":       cfg.CompletionModel,
		"match_mode":  cfg.ComplianceMatchMode,
		"timeout":     cfg.CompletionTimeout.String(),
	}).Info("Configuration loaded")

	// Create server
	srv, err := server.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	// Cancelled on SIGINT or SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		log.Fatalf("Server error: %v", err)
	}
	log.Info("Server stopped")
}
