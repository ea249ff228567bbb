// Package config provides configuration for the relay.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// KnownTools is the static set of tool names the relay can forward to.
// Whether a tool is usable depends on its URL being configured.
var KnownTools = []string{"ingest", "search", "notify"}

// Config holds the relay configuration. It is built once at startup and
// read-only afterwards.
type Config struct {
	// Server settings
	HTTPPort int

	// Chat-completion capability
	LLMBaseURL string
	LLMAPIKey  string
	LLMModel   string
	LLMTimeout time.Duration

	// Workflow webhooks, tool name -> destination URL. A missing entry
	// means the tool is not configured.
	ToolURLs map[string]string

	// Optional shared secret attached to outbound webhook calls.
	WebhookSecretHeader string
	WebhookSecret       string
	WebhookTimeout      time.Duration

	// Council seats, in trace order.
	Seats []Seat

	// Optional rego file overriding the default tool policy.
	ToolPolicyFile string

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		HTTPPort:            getEnvInt("HTTP_PORT", 8085),
		LLMBaseURL:          getEnv("LLM_BASE_URL", "http://localhost:4000"),
		LLMAPIKey:           getEnv("LLM_API_KEY", ""),
		LLMModel:            getEnv("LLM_MODEL", "gpt-4o-mini"),
		LLMTimeout:          time.Duration(getEnvInt("LLM_TIMEOUT_MS", 30000)) * time.Millisecond,
		ToolURLs:            loadToolURLs(),
		WebhookSecretHeader: getEnv("WEBHOOK_SECRET_HEADER", "X-Relay-Secret"),
		WebhookSecret:       getEnv("WEBHOOK_SECRET", ""),
		WebhookTimeout:      time.Duration(getEnvInt("WEBHOOK_TIMEOUT_MS", 30000)) * time.Millisecond,
		ToolPolicyFile:      getEnv("TOOL_POLICY_FILE", ""),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
	}

	seats, err := LoadSeats(getEnv("SEATS_FILE", ""))
	if err != nil {
		return nil, fmt.Errorf("failed to load seats: %w", err)
	}
	cfg.Seats = seats

	return cfg, nil
}

// loadToolURLs builds the static tool -> URL mapping from TOOL_<NAME>_URL
// variables. Unset tools are simply absent from the map.
func loadToolURLs() map[string]string {
	urls := make(map[string]string)
	for _, tool := range KnownTools {
		key := "TOOL_" + toEnvKey(tool) + "_URL"
		if url := os.Getenv(key); url != "" {
			urls[tool] = url
		}
	}
	return urls
}

func toEnvKey(name string) string {
	out := make([]byte, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}
