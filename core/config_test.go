package core

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, name := range []string{"CONFIG_FILE", "PORT", "LOG_DIR", "DATABASE_URL", "POSTGRES_URL", "REDIS_URL", "JWT_SECRET", "TOKEN_TTL_SECONDS", "ALLOWED_ORIGINS"} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Port != "3000" {
		t.Fatalf("Port = %q", cfg.Port)
	}
	if cfg.TokenTTLSeconds != 3600 {
		t.Fatalf("TokenTTLSeconds = %d, want 3600", cfg.TokenTTLSeconds)
	}
	if cfg.RedisURL == "" {
		t.Fatal("RedisURL default missing")
	}

	// Secret and DSN have no defaults; startup must refuse to proceed.
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate passed without JWT_SECRET and DATABASE_URL")
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("port: \"9999\"\njwt_secret: file-secret\ndatabase_url: postgres://file/db\ntoken_ttl_seconds: 60\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "4000")
	t.Setenv("DATABASE_URL", "")
	os.Unsetenv("DATABASE_URL")
	t.Setenv("POSTGRES_URL", "")
	os.Unsetenv("POSTGRES_URL")
	t.Setenv("JWT_SECRET", "")
	os.Unsetenv("JWT_SECRET")
	t.Setenv("TOKEN_TTL_SECONDS", "")
	os.Unsetenv("TOKEN_TTL_SECONDS")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Port != "4000" {
		t.Fatalf("Port = %q, env must override file", cfg.Port)
	}
	if cfg.JWTSecret != "file-secret" {
		t.Fatalf("JWTSecret = %q, want file value", cfg.JWTSecret)
	}
	if cfg.DatabaseURL != "postgres://file/db" {
		t.Fatalf("DatabaseURL = %q, want file value", cfg.DatabaseURL)
	}
	if cfg.TokenTTLSeconds != 60 {
		t.Fatalf("TokenTTLSeconds = %d, want 60", cfg.TokenTTLSeconds)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate error: %v", err)
	}
}

func TestLoadBadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("port: [not-a-string"), 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)

	if _, err := Load(); err == nil {
		t.Fatal("expected error for malformed config file")
	}
}
