package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var ErrEmptyEnvironmentVariable = errors.New("empty environment variable")

// Config holds all application configuration
type Config struct {
	Server     ServerConfig
	MailerLite MailerLiteConfig
	CORS       CORSConfig
	RateLimit  RateLimitConfig
	Notify     NotifyConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port int
}

// MailerLiteConfig holds upstream provider credentials. The group ID is
// optional; when set, new subscribers are attached to that group.
type MailerLiteConfig struct {
	APIKey  string
	GroupID string
}

// CORSConfig holds the origin allow-list and trusted domain suffixes.
// The first allow-list entry doubles as the substitute origin for
// requests from untrusted origins.
type CORSConfig struct {
	AllowedOrigins  []string
	TrustedSuffixes []string
}

// RateLimitConfig holds per-IP throttling settings for the subscribe endpoint.
type RateLimitConfig struct {
	MaxRequests int
	WindowSecs  int
}

// NotifyConfig holds optional owner-notification email settings. All three
// values must be present for notifications to be enabled.
type NotifyConfig struct {
	ResendAPIKey string
	OwnerEmail   string
	SenderEmail  string
}

// Enabled reports whether owner notifications are fully configured.
func (n *NotifyConfig) Enabled() bool {
	return n.ResendAPIKey != "" && n.OwnerEmail != "" && n.SenderEmail != ""
}

// Load reads and validates all required environment variables
func Load() (*Config, error) {
	// Load env.local in non-production environments
	if os.Getenv("GO_ENV") != "production" {
		if err := godotenv.Load("env.local"); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load env.local: %w", err)
		}
	}

	cfg := &Config{}

	serverPort := getEnvWithDefault("SERVER_PORT", "8080")
	port, err := strconv.Atoi(serverPort)
	if err != nil {
		return nil, fmt.Errorf("failed to parse SERVER_PORT: %w", err)
	}
	cfg.Server.Port = port

	// The API key is deliberately NOT required at startup: the endpoint
	// answers 503 when it is missing, matching the upstream contract.
	cfg.MailerLite.APIKey = os.Getenv("MAILERLITE_API_KEY")
	cfg.MailerLite.GroupID = getEnvWithDefault("MAILERLITE_GROUP_ID", "174690786914338270")

	origins, err := requireEnv("ALLOWED_ORIGINS")
	if err != nil {
		return nil, err
	}
	cfg.CORS.AllowedOrigins = splitAndTrim(origins)
	cfg.CORS.TrustedSuffixes = splitAndTrim(os.Getenv("ALLOWED_ORIGIN_SUFFIXES"))

	maxRequests := getEnvWithDefault("RATE_LIMIT_MAX_REQUESTS", "5")
	cfg.RateLimit.MaxRequests, err = strconv.Atoi(maxRequests)
	if err != nil {
		return nil, fmt.Errorf("failed to parse RATE_LIMIT_MAX_REQUESTS: %w", err)
	}
	windowSecs := getEnvWithDefault("RATE_LIMIT_WINDOW_SECONDS", "60")
	cfg.RateLimit.WindowSecs, err = strconv.Atoi(windowSecs)
	if err != nil {
		return nil, fmt.Errorf("failed to parse RATE_LIMIT_WINDOW_SECONDS: %w", err)
	}

	cfg.Notify.ResendAPIKey = os.Getenv("RESEND_API_KEY")
	cfg.Notify.OwnerEmail = os.Getenv("OWNER_NOTIFY_EMAIL")
	cfg.Notify.SenderEmail = os.Getenv("DEFAULT_EMAIL_SENDER_ADDRESS")

	return cfg, nil
}

// requireEnv retrieves an environment variable or returns an error if empty
func requireEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set: %w", key, ErrEmptyEnvironmentVariable)
	}
	return value, nil
}

// getEnvWithDefault retrieves an environment variable or returns a default value
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// splitAndTrim splits a comma-separated list, dropping empty entries.
func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
