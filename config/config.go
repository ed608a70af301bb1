package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/pageza/dietplan/backend/internal/service"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerHost      string
	ServerPort      string
	ShutdownTimeout time.Duration

	// Completion API configuration
	CompletionAPIKey      string
	CompletionAPIURL      string
	CompletionModel       string
	CompletionTemperature float64
	CompletionTimeout     time.Duration

	// Compliance screen: "substring" or "word"
	ComplianceMatchMode string

	CORSAllowedOrigins []string

	// Logging configuration
	LogLevel  string
	LogFormat string
}

const defaultCompletionAPIURL = "https://api.groq.com/openai/v1/chat/completions"

// LoadConfig reads configuration from a .env file, an optional config file
// named by CONFIG_FILE, and the environment, in increasing precedence.
func LoadConfig() (*Config, error) {
	if err := loadDotEnv(envOr("DOTENV_PATH", ".env")); err != nil {
		return nil, err
	}

	env := GetEnvironment()
	v := newViper(env)

	if file := os.Getenv("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	cfg := &Config{
		Environment:           env,
		ServerHost:            v.GetString("server_host"),
		ServerPort:            v.GetString("server_port"),
		ShutdownTimeout:       v.GetDuration("shutdown_timeout"),
		CompletionAPIKey:      strings.TrimSpace(v.GetString("completion_api_key")),
		CompletionAPIURL:      v.GetString("completion_api_url"),
		CompletionModel:       v.GetString("completion_model"),
		CompletionTemperature: v.GetFloat64("completion_temperature"),
		CompletionTimeout:     v.GetDuration("completion_timeout"),
		ComplianceMatchMode:   strings.ToLower(v.GetString("compliance_match_mode")),
		CORSAllowedOrigins:    splitList(v.GetString("cors_allowed_origins")),
		LogLevel:              v.GetString("log_level"),
		LogFormat:             v.GetString("log_format"),
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func newViper(env Environment) *viper.Viper {
	v := viper.New()

	v.SetDefault("server_host", "0.0.0.0")
	v.SetDefault("server_port", "5000")
	v.SetDefault("shutdown_timeout", 10*time.Second)
	v.SetDefault("completion_api_url", defaultCompletionAPIURL)
	v.SetDefault("completion_model", service.DefaultModel)
	v.SetDefault("completion_temperature", service.DefaultTemperature)
	v.SetDefault("completion_timeout", 60*time.Second)
	v.SetDefault("compliance_match_mode", service.MatchSubstring)
	v.SetDefault("cors_allowed_origins", "*")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")

	switch env {
	case Development:
		v.SetDefault("log_level", "debug")
	case Production:
		v.SetDefault("log_format", "json")
	}

	v.AutomaticEnv()
	// GROQ_API_KEY takes precedence over COMPLETION_API_KEY.
	_ = v.BindEnv("completion_api_key", "GROQ_API_KEY", "COMPLETION_API_KEY")

	return v
}

// loadDotEnv loads path into the process environment without overriding
// variables that are already set. A missing file is not an error.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
