package core

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds runtime settings for the API process.
type Config struct {
	Port            string   // HTTP listen port (e.g., "3000")
	LogDir          string   // Directory to write application logs
	DatabaseURL     string   // PostgreSQL DSN
	RedisURL        string   // Redis URL (redis://host:port/db)
	JWTSecret       string   // symmetric signing secret for bearer tokens
	TokenTTLSeconds int      // lifetime of issued tokens (default 3600)
	AllowedOrigins  []string // allowed origins for CORS origin check
}

// fileConfig mirrors Config for the optional YAML config file.
// Environment variables always win over file values.
type fileConfig struct {
	Port            string   `yaml:"port"`
	LogDir          string   `yaml:"log_dir"`
	DatabaseURL     string   `yaml:"database_url"`
	RedisURL        string   `yaml:"redis_url"`
	JWTSecret       string   `yaml:"jwt_secret"`
	TokenTTLSeconds int      `yaml:"token_ttl_seconds"`
	AllowedOrigins  []string `yaml:"allowed_origins"`
}

// Load populates Config from the optional CONFIG_FILE and environment
// variables. Env values override file values; defaults fill the rest.
func Load() (Config, error) {
	var fc fileConfig
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg := Config{
		Port:            firstNonEmpty(os.Getenv("PORT"), fc.Port, "3000"),
		LogDir:          firstNonEmpty(os.Getenv("LOG_DIR"), fc.LogDir, "/var/log/matcha"),
		DatabaseURL:     firstNonEmpty(os.Getenv("DATABASE_URL"), os.Getenv("POSTGRES_URL"), fc.DatabaseURL),
		RedisURL:        firstNonEmpty(os.Getenv("REDIS_URL"), fc.RedisURL, "redis://localhost:6379/0"),
		JWTSecret:       firstNonEmpty(os.Getenv("JWT_SECRET"), fc.JWTSecret),
		TokenTTLSeconds: intFromEnv("TOKEN_TTL_SECONDS", fc.TokenTTLSeconds),
		AllowedOrigins:  parseCSV(os.Getenv("ALLOWED_ORIGINS")),
	}
	if cfg.TokenTTLSeconds <= 0 {
		cfg.TokenTTLSeconds = 3600
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = fc.AllowedOrigins
	}
	return cfg, nil
}

// Validate checks settings that must be present before the first request is
// served. Their absence is a startup failure, never a per-request error.
func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// intFromEnv reads an int from env var name, falling back to defaultVal when empty or invalid.
func intFromEnv(name string, defaultVal int) int {
	if v := os.Getenv(name); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

// parseCSV splits comma-separated list and trims spaces; empty entries are skipped.
func parseCSV(s string) []string {
	var out []string
	for _, v := range strings.Split(s, ",") {
		if t := strings.TrimSpace(v); t != "" {
			out = append(out, t)
		}
	}
	return out
}
