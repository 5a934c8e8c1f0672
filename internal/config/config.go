package config

import (
	"errors"
	"os"
	"strconv"
)

// app config: provider, persistence, sandbox and janitor settings
type Config struct {
	Port     string
	Provider string

	// memory | sqlite | postgres
	StoreBackend string
	SQLitePath   string
	PostgresDSN  string

	// process | docker
	SandboxBackend string

	JanitorEnabled    bool
	JanitorSchedule   string
	SessionMaxAgeHour int
}

// loads configuration from environment variables
func LoadConfig() (*Config, error) {
	config := &Config{
		Port:              getEnvOrDefault("PORT", "8085"),
		Provider:          getEnvOrDefault("AI_PROVIDER", "gemini"),
		StoreBackend:      getEnvOrDefault("STORE_BACKEND", "memory"),
		SQLitePath:        getEnvOrDefault("SQLITE_PATH", "interview.db"),
		PostgresDSN:       os.Getenv("POSTGRES_DSN"),
		SandboxBackend:    getEnvOrDefault("SANDBOX_BACKEND", "process"),
		JanitorEnabled:    getEnvBool("JANITOR_ENABLED", true),
		JanitorSchedule:   getEnvOrDefault("JANITOR_SCHEDULE", "@hourly"),
		SessionMaxAgeHour: getEnvInt("SESSION_MAX_AGE_HOURS", 24),
	}
	if err := validateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Provider != "gemini" {
		return errors.New("unsupported AI provider: " + config.Provider + ". Currently supported: gemini")
	}

	switch config.StoreBackend {
	case "memory", "sqlite":
	case "postgres":
		if config.PostgresDSN == "" {
			return errors.New("POSTGRES_DSN is required when STORE_BACKEND is postgres")
		}
	default:
		return errors.New("unsupported store backend: " + config.StoreBackend + ". Supported: memory, sqlite, postgres")
	}

	switch config.SandboxBackend {
	case "process", "docker":
	default:
		return errors.New("unsupported sandbox backend: " + config.SandboxBackend + ". Supported: process, docker")
	}

	if config.SessionMaxAgeHour < 1 {
		return errors.New("SESSION_MAX_AGE_HOURS must be at least 1")
	}

	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
