package bootstrap

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the resolved runtime configuration for the service.
// It merges file defaults and environment overrides to support both local and deployed runs.
type Config struct {
	ServiceID string

	HTTPPort int
	GRPCPort int

	DatabaseURL string
	RedisURL    string
	MaxDBConns  int32

	IdentityProviderURL string
	IdentityServiceKey  string
	IdentityJWTSecret   string
	IdentityHTTPTimeout time.Duration

	MediaBucket        string
	MediaRegion        string
	MediaEndpoint      string
	MediaPublicBaseURL string
	MediaKeyPrefix     string

	ListingPageSize int
}

// configFile mirrors the YAML schema used by configs/default.yaml.
// It is intentionally separate from Config so runtime-only fields stay internal.
type configFile struct {
	Service struct {
		ID       string `yaml:"id"`
		HTTPPort int    `yaml:"http_port"`
		GRPCPort int    `yaml:"grpc_port"`
	} `yaml:"service"`
	Dependencies struct {
		PostgresURL string `yaml:"postgres_url"`
		RedisURL    string `yaml:"redis_url"`
	} `yaml:"dependencies"`
	Identity struct {
		ProviderURL string `yaml:"provider_url"`
		ServiceKey  string `yaml:"service_key"`
		JWTSecret   string `yaml:"jwt_secret"`
	} `yaml:"identity"`
	Media struct {
		Bucket        string `yaml:"bucket"`
		Region        string `yaml:"region"`
		Endpoint      string `yaml:"endpoint"`
		PublicBaseURL string `yaml:"public_base_url"`
		KeyPrefix     string `yaml:"key_prefix"`
	} `yaml:"media"`
}

// LoadConfig resolves configuration in priority order: defaults -> file -> env.
// Missing credentials for required dependencies fail here, at startup, rather
// than on first use.
func LoadConfig(path string) (Config, error) {
	cfg := Config{
		ServiceID:           "avalanche-report-service",
		HTTPPort:            8080,
		GRPCPort:            9090,
		MaxDBConns:          20,
		IdentityHTTPTimeout: 8 * time.Second,
		MediaKeyPrefix:      "avalanche-photos",
		ListingPageSize:     100,
	}

	raw, err := os.ReadFile(path)
	if err == nil {
		var f configFile
		if unmarshalErr := yaml.Unmarshal(raw, &f); unmarshalErr != nil {
			return Config{}, fmt.Errorf("parse config file: %w", unmarshalErr)
		}
		if f.Service.ID != "" {
			cfg.ServiceID = f.Service.ID
		}
		if f.Service.HTTPPort > 0 {
			cfg.HTTPPort = f.Service.HTTPPort
		}
		if f.Service.GRPCPort > 0 {
			cfg.GRPCPort = f.Service.GRPCPort
		}
		if f.Dependencies.PostgresURL != "" {
			cfg.DatabaseURL = f.Dependencies.PostgresURL
		}
		if f.Dependencies.RedisURL != "" {
			cfg.RedisURL = f.Dependencies.RedisURL
		}
		if f.Identity.ProviderURL != "" {
			cfg.IdentityProviderURL = f.Identity.ProviderURL
		}
		if f.Identity.ServiceKey != "" {
			cfg.IdentityServiceKey = f.Identity.ServiceKey
		}
		if f.Identity.JWTSecret != "" {
			cfg.IdentityJWTSecret = f.Identity.JWTSecret
		}
		if f.Media.Bucket != "" {
			cfg.MediaBucket = f.Media.Bucket
		}
		if f.Media.Region != "" {
			cfg.MediaRegion = f.Media.Region
		}
		if f.Media.Endpoint != "" {
			cfg.MediaEndpoint = f.Media.Endpoint
		}
		if f.Media.PublicBaseURL != "" {
			cfg.MediaPublicBaseURL = f.Media.PublicBaseURL
		}
		if f.Media.KeyPrefix != "" {
			cfg.MediaKeyPrefix = f.Media.KeyPrefix
		}
	}

	cfg.DatabaseURL = envOrDefault("DB_URL", envOrDefault("POSTGRES_URL", cfg.DatabaseURL))
	cfg.RedisURL = envOrDefault("REDIS_URL", cfg.RedisURL)
	cfg.IdentityProviderURL = envOrDefault("IDENTITY_PROVIDER_URL", cfg.IdentityProviderURL)
	cfg.IdentityServiceKey = envOrDefault("IDENTITY_SERVICE_KEY", cfg.IdentityServiceKey)
	cfg.IdentityJWTSecret = envOrDefault("IDENTITY_JWT_SECRET", cfg.IdentityJWTSecret)
	cfg.MediaBucket = envOrDefault("MEDIA_BUCKET", cfg.MediaBucket)
	cfg.MediaRegion = envOrDefault("MEDIA_REGION", cfg.MediaRegion)
	cfg.MediaEndpoint = envOrDefault("MEDIA_ENDPOINT", cfg.MediaEndpoint)
	cfg.MediaPublicBaseURL = envOrDefault("MEDIA_PUBLIC_BASE_URL", cfg.MediaPublicBaseURL)
	cfg.MediaKeyPrefix = envOrDefault("MEDIA_KEY_PREFIX", cfg.MediaKeyPrefix)

	cfg.HTTPPort = envInt("HTTP_PORT", cfg.HTTPPort)
	cfg.GRPCPort = envInt("GRPC_PORT", cfg.GRPCPort)
	cfg.MaxDBConns = int32(envInt("DB_MAX_CONNS", int(cfg.MaxDBConns)))
	cfg.ListingPageSize = envInt("LISTING_PAGE_SIZE", cfg.ListingPageSize)
	cfg.IdentityHTTPTimeout = time.Duration(envInt("IDENTITY_HTTP_TIMEOUT_SECONDS", int(cfg.IdentityHTTPTimeout.Seconds()))) * time.Second

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("missing DB_URL/POSTGRES_URL")
	}
	if cfg.RedisURL == "" {
		return Config{}, fmt.Errorf("missing REDIS_URL")
	}
	if cfg.IdentityJWTSecret == "" {
		return Config{}, fmt.Errorf("missing IDENTITY_JWT_SECRET")
	}
	if cfg.MediaBucket == "" {
		return Config{}, fmt.Errorf("missing MEDIA_BUCKET")
	}

	return cfg, nil
}

// envOrDefault returns an env var when present, otherwise the provided fallback.
func envOrDefault(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

// envInt parses integer env vars with safe fallback on empty/invalid values.
func envInt(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
