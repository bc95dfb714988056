package bootstrap

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	return path
}

const minimalConfig = `
service:
  id: avalanche-report-service-test
dependencies:
  postgres_url: postgres://localhost:5432/avalanches
  redis_url: redis://localhost:6379/0
identity:
  provider_url: http://localhost:54321/auth/v1
  jwt_secret: file-secret
media:
  bucket: avalanche-photos-test
`

func TestLoadConfigFromFile(t *testing.T) {
	path := writeConfigFile(t, minimalConfig)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ServiceID != "avalanche-report-service-test" {
		t.Fatalf("service id = %q", cfg.ServiceID)
	}
	if cfg.HTTPPort != 8080 || cfg.GRPCPort != 9090 {
		t.Fatalf("default ports = %d/%d", cfg.HTTPPort, cfg.GRPCPort)
	}
	if cfg.DatabaseURL != "postgres://localhost:5432/avalanches" {
		t.Fatalf("database url = %q", cfg.DatabaseURL)
	}
	if cfg.IdentityJWTSecret != "file-secret" {
		t.Fatalf("jwt secret = %q", cfg.IdentityJWTSecret)
	}
	if cfg.MediaKeyPrefix != "avalanche-photos" {
		t.Fatalf("default key prefix = %q", cfg.MediaKeyPrefix)
	}
	if cfg.ListingPageSize != 100 {
		t.Fatalf("default listing page size = %d", cfg.ListingPageSize)
	}
	if cfg.IdentityHTTPTimeout != 8*time.Second {
		t.Fatalf("default identity timeout = %s", cfg.IdentityHTTPTimeout)
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, minimalConfig)

	t.Setenv("DB_URL", "postgres://db.internal:5432/prod")
	t.Setenv("REDIS_URL", "redis://cache.internal:6379/1")
	t.Setenv("IDENTITY_JWT_SECRET", "env-secret")
	t.Setenv("MEDIA_BUCKET", "avalanche-photos-prod")
	t.Setenv("HTTP_PORT", "9999")
	t.Setenv("LISTING_PAGE_SIZE", "50")
	t.Setenv("IDENTITY_HTTP_TIMEOUT_SECONDS", "3")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.DatabaseURL != "postgres://db.internal:5432/prod" {
		t.Fatalf("database url = %q", cfg.DatabaseURL)
	}
	if cfg.RedisURL != "redis://cache.internal:6379/1" {
		t.Fatalf("redis url = %q", cfg.RedisURL)
	}
	if cfg.IdentityJWTSecret != "env-secret" {
		t.Fatalf("jwt secret = %q", cfg.IdentityJWTSecret)
	}
	if cfg.MediaBucket != "avalanche-photos-prod" {
		t.Fatalf("media bucket = %q", cfg.MediaBucket)
	}
	if cfg.HTTPPort != 9999 {
		t.Fatalf("http port = %d", cfg.HTTPPort)
	}
	if cfg.ListingPageSize != 50 {
		t.Fatalf("listing page size = %d", cfg.ListingPageSize)
	}
	if cfg.IdentityHTTPTimeout != 3*time.Second {
		t.Fatalf("identity timeout = %s", cfg.IdentityHTTPTimeout)
	}
}

func TestLoadConfigWorksWithoutFile(t *testing.T) {
	t.Setenv("POSTGRES_URL", "postgres://localhost:5432/avalanches")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("IDENTITY_JWT_SECRET", "env-secret")
	t.Setenv("MEDIA_BUCKET", "avalanche-photos")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.DatabaseURL != "postgres://localhost:5432/avalanches" {
		t.Fatalf("database url = %q", cfg.DatabaseURL)
	}
}

func TestLoadConfigMissingRequired(t *testing.T) {
	cases := []struct {
		name string
		omit string
	}{
		{"database", "DB"},
		{"redis", "REDIS"},
		{"jwt secret", "JWT"},
		{"media bucket", "BUCKET"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.omit != "DB" {
				t.Setenv("POSTGRES_URL", "postgres://localhost:5432/avalanches")
			}
			if tc.omit != "REDIS" {
				t.Setenv("REDIS_URL", "redis://localhost:6379/0")
			}
			if tc.omit != "JWT" {
				t.Setenv("IDENTITY_JWT_SECRET", "secret")
			}
			if tc.omit != "BUCKET" {
				t.Setenv("MEDIA_BUCKET", "avalanche-photos")
			}
			if _, err := LoadConfig(filepath.Join(t.TempDir(), "none.yaml")); err == nil {
				t.Fatalf("expected startup error when %s is missing", tc.name)
			}
		})
	}
}

func TestLoadConfigRejectsMalformedFile(t *testing.T) {
	path := writeConfigFile(t, "service: [not: a: mapping")
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestEnvIntFallsBackOnGarbage(t *testing.T) {
	t.Setenv("HTTP_PORT", "not-a-number")
	if got := envInt("HTTP_PORT", 8080); got != 8080 {
		t.Fatalf("envInt = %d, want fallback", got)
	}
}
