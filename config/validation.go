package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/pageza/dietplan/backend/internal/service"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks every field and reports all problems at once. A
// missing API key is only warned about; requests will fail upstream instead.
func ValidateConfig(cfg *Config) error {
	var errs []error

	if port, err := strconv.Atoi(cfg.ServerPort); err != nil || port < 1 || port > 65535 {
		errs = append(errs, ValidationError{"SERVER_PORT", fmt.Sprintf("invalid port %q", cfg.ServerPort)})
	}

	if u, err := url.Parse(cfg.CompletionAPIURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, ValidationError{"COMPLETION_API_URL", fmt.Sprintf("invalid URL %q", cfg.CompletionAPIURL)})
	}

	if cfg.CompletionModel == "" {
		errs = append(errs, ValidationError{"COMPLETION_MODEL", "must not be empty"})
	}

	if cfg.CompletionTemperature < 0 || cfg.CompletionTemperature > 2 {
		errs = append(errs, ValidationError{"COMPLETION_TEMPERATURE", "must be between 0 and 2"})
	}

	if cfg.CompletionTimeout <= 0 {
		errs = append(errs, ValidationError{"COMPLETION_TIMEOUT", "must be positive"})
	}

	if cfg.ShutdownTimeout <= 0 {
		errs = append(errs, ValidationError{"SHUTDOWN_TIMEOUT", "must be positive"})
	}

	switch cfg.ComplianceMatchMode {
	case service.MatchSubstring, service.MatchWord:
	default:
		errs = append(errs, ValidationError{"COMPLIANCE_MATCH_MODE", fmt.Sprintf("unknown mode %q", cfg.ComplianceMatchMode)})
	}

	if _, err := log.ParseLevel(cfg.LogLevel); err != nil {
		errs = append(errs, ValidationError{"LOG_LEVEL", err.Error()})
	}

	switch strings.ToLower(cfg.LogFormat) {
	case "text", "json":
	default:
		errs = append(errs, ValidationError{"LOG_FORMAT", fmt.Sprintf("unknown format %q", cfg.LogFormat)})
	}

	if cfg.CompletionAPIKey == "" {
		log.Warn("GROQ_API_KEY is not set; completion API requests will be rejected upstream")
	}

	return errors.Join(errs...)
}
