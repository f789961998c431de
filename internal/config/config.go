package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/AusClimateService/gwls/internal/domain"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Reference source configuration.
	SourceBaseURL  string        // empty means the upstream raw-content host
	SourceTimeout  time.Duration // per-request timeout for the remote source
	SourceLocalDir string        // local checkout fallback; empty disables it
	DocCacheTTL    time.Duration // 0 disables the document cache

	// Background refresh configuration.
	RefreshInterval time.Duration
	RefreshPhases   []string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := envDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	sourceTimeout, err := envDuration("SOURCE_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	cacheTTL, err := envDuration("DOC_CACHE_TTL", time.Hour)
	if err != nil {
		return nil, err
	}
	refreshInterval, err := envDuration("REFRESH_INTERVAL", 6*time.Hour)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		SourceBaseURL:  os.Getenv("SOURCE_BASE_URL"),
		SourceTimeout:  sourceTimeout,
		SourceLocalDir: os.Getenv("SOURCE_LOCAL_DIR"),
		DocCacheTTL:    cacheTTL,

		RefreshInterval: refreshInterval,
		RefreshPhases:   splitAndTrim(envOrDefault("REFRESH_PHASES", "cmip5,cmip6")),
	}

	if cfg.ShutdownTimeout <= 0 {
		return nil, errors.New("SHUTDOWN_TIMEOUT must be positive")
	}
	if cfg.SourceTimeout <= 0 {
		return nil, errors.New("SOURCE_TIMEOUT must be positive")
	}
	if cfg.DocCacheTTL < 0 {
		return nil, errors.New("DOC_CACHE_TTL must not be negative")
	}
	if cfg.RefreshInterval <= 0 {
		return nil, errors.New("REFRESH_INTERVAL must be positive")
	}
	for i, phase := range cfg.RefreshPhases {
		p := strings.ToLower(phase)
		if !domain.ValidPhase(p) {
			return nil, fmt.Errorf("REFRESH_PHASES: unsupported phase %q", phase)
		}
		cfg.RefreshPhases[i] = p
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func splitAndTrim(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
