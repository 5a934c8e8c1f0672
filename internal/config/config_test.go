package config

import "testing"

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("AI_PROVIDER", "")
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("SANDBOX_BACKEND", "")
	t.Setenv("SESSION_MAX_AGE_HOURS", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if cfg.Provider != "gemini" {
		t.Fatalf("expected provider gemini, got %s", cfg.Provider)
	}
	if cfg.StoreBackend != "memory" {
		t.Fatalf("expected store backend memory, got %s", cfg.StoreBackend)
	}
	if cfg.SandboxBackend != "process" {
		t.Fatalf("expected sandbox backend process, got %s", cfg.SandboxBackend)
	}
	if cfg.SessionMaxAgeHour != 24 {
		t.Fatalf("expected max age 24, got %d", cfg.SessionMaxAgeHour)
	}
	if !cfg.JanitorEnabled {
		t.Fatal("expected janitor enabled by default")
	}
}

func TestLoadConfig_UnsupportedProvider(t *testing.T) {
	t.Setenv("AI_PROVIDER", "unknown")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for unsupported provider")
	}
}

func TestLoadConfig_PostgresRequiresDSN(t *testing.T) {
	t.Setenv("AI_PROVIDER", "")
	t.Setenv("STORE_BACKEND", "postgres")
	t.Setenv("POSTGRES_DSN", "")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error when postgres backend has no DSN")
	}

	t.Setenv("POSTGRES_DSN", "host=localhost user=interview dbname=interview")
	t.Setenv("SANDBOX_BACKEND", "")
	if _, err := LoadConfig(); err != nil {
		t.Fatalf("LoadConfig returned error with DSN set: %v", err)
	}
}

func TestLoadConfig_UnsupportedSandbox(t *testing.T) {
	t.Setenv("AI_PROVIDER", "")
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("SANDBOX_BACKEND", "chroot")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for unsupported sandbox backend")
	}
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("UNIT_TEST_ENV", "value")
	if got := getEnvOrDefault("UNIT_TEST_ENV", "fallback"); got != "value" {
		t.Fatalf("expected env value, got %s", got)
	}

	t.Setenv("UNIT_TEST_ENV", "")
	if got := getEnvOrDefault("UNIT_TEST_ENV", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback value, got %s", got)
	}

	t.Setenv("UNIT_TEST_INT", "12")
	if got := getEnvInt("UNIT_TEST_INT", 5); got != 12 {
		t.Fatalf("expected 12, got %d", got)
	}
	t.Setenv("UNIT_TEST_INT", "not a number")
	if got := getEnvInt("UNIT_TEST_INT", 5); got != 5 {
		t.Fatalf("expected fallback 5, got %d", got)
	}

	t.Setenv("UNIT_TEST_BOOL", "false")
	if got := getEnvBool("UNIT_TEST_BOOL", true); got {
		t.Fatal("expected false")
	}
}
