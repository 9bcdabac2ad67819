package config

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	defaultEnvFile       = ".env"
	defaultPort          = "8080"
	defaultReadTimeout   = 15 * time.Second
	defaultWriteTimeout  = 30 * time.Second
	defaultIdleTimeout   = 120 * time.Second
	defaultBaseURL       = "http://localhost:8080"
	defaultEnvironment   = "local"
	defaultLogLevel      = "info"
	defaultContactSink   = SinkLog
	defaultContactPerMin = 5
	defaultPerPage       = 6
	maxPerPage           = 48
	minSessionKeyLength  = 32
)

// Contact sink names accepted by LASWELL_CONTACT_SINK.
const (
	SinkLog  = "log"
	SinkNone = "none"
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server  ServerConfig
	Site    SiteConfig
	Log     LogConfig
	Session SessionConfig
	Contact ContactConfig
	Catalog CatalogConfig
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// SiteConfig holds the public facing settings.
type SiteConfig struct {
	BaseURL     string
	Environment string
	// Dev disables asset caching and marks cookies insecure.
	Dev bool
}

type LogConfig struct {
	Level string
}

// SessionConfig holds the cookie keys. Empty keys are generated at start,
// which is only acceptable outside production.
type SessionConfig struct {
	HashKey  string
	BlockKey string
}

// ContactConfig selects where contact and newsletter submissions go.
type ContactConfig struct {
	Sink          string
	RatePerMinute int
}

type CatalogConfig struct {
	PerPage int
}

// Production reports whether the site runs in the production environment.
func (c Config) Production() bool {
	return c.Site.Environment == "production" || c.Site.Environment == "prod"
}

// Addr returns the listen address for the HTTP server.
func (c Config) Addr() string { return ":" + c.Server.Port }

// ValidationError is returned when configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the .env file path used for local overrides.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) { o.envFile = path }
}

// WithEnvMap injects explicit key/value pairs. They win over every other source.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) { o.envMap = values }
}

// WithoutSystemEnv disables reading from the process environment.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) { o.useSystemEnv = false }
}

// Load resolves configuration from defaults, the .env file, the process
// environment and explicit overrides, in increasing precedence.
func Load(ctx context.Context, opts ...Option) (Config, error) {
	options := loaderOptions{envFile: defaultEnvFile, useSystemEnv: true}
	for _, opt := range opts {
		opt(&options)
	}
	if err := ctx.Err(); err != nil {
		return Config{}, err
	}

	dotEnvValues, err := loadDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}

	lookup := func(key string) (string, bool) {
		if value, ok := options.envMap[key]; ok {
			return value, true
		}
		if options.useSystemEnv {
			if value, ok := os.LookupEnv(key); ok {
				return value, true
			}
		}
		if value, ok := dotEnvValues[key]; ok {
			return value, true
		}
		return "", false
	}

	cfg := Config{
		Server: ServerConfig{
			// PORT is what most container platforms inject.
			Port:         stringWithDefault(lookup, "LASWELL_PORT", stringWithDefault(lookup, "PORT", defaultPort)),
			ReadTimeout:  durationWithDefault(lookup, "LASWELL_READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout: durationWithDefault(lookup, "LASWELL_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:  durationWithDefault(lookup, "LASWELL_IDLE_TIMEOUT", defaultIdleTimeout),
		},
		Site: SiteConfig{
			BaseURL:     strings.TrimRight(stringWithDefault(lookup, "LASWELL_BASE_URL", defaultBaseURL), "/"),
			Environment: strings.ToLower(stringWithDefault(lookup, "LASWELL_ENV", defaultEnvironment)),
			Dev:         boolWithDefault(lookup, "LASWELL_DEV", false),
		},
		Log: LogConfig{
			Level: strings.ToLower(stringWithDefault(lookup, "LASWELL_LOG_LEVEL", defaultLogLevel)),
		},
		Session: SessionConfig{
			HashKey:  stringWithDefault(lookup, "LASWELL_SESSION_HASH_KEY", ""),
			BlockKey: stringWithDefault(lookup, "LASWELL_SESSION_BLOCK_KEY", ""),
		},
		Contact: ContactConfig{
			Sink:          strings.ToLower(stringWithDefault(lookup, "LASWELL_CONTACT_SINK", defaultContactSink)),
			RatePerMinute: intWithDefault(lookup, "LASWELL_CONTACT_RATE_PER_MIN", defaultContactPerMin),
		},
		Catalog: CatalogConfig{
			PerPage: intWithDefault(lookup, "LASWELL_PRODUCTS_PER_PAGE", defaultPerPage),
		},
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg Config) error {
	var invalid []string

	if n, err := strconv.Atoi(cfg.Server.Port); err != nil || n <= 0 || n > 65535 {
		invalid = append(invalid, "Server.Port")
	}
	if cfg.Server.ReadTimeout <= 0 {
		invalid = append(invalid, "Server.ReadTimeout")
	}
	if cfg.Server.WriteTimeout <= 0 {
		invalid = append(invalid, "Server.WriteTimeout")
	}
	if u, err := url.Parse(cfg.Site.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		invalid = append(invalid, "Site.BaseURL")
	}
	switch cfg.Contact.Sink {
	case SinkLog, SinkNone:
	default:
		invalid = append(invalid, "Contact.Sink")
	}
	if cfg.Contact.RatePerMinute < 0 {
		invalid = append(invalid, "Contact.RatePerMinute")
	}
	if cfg.Catalog.PerPage <= 0 || cfg.Catalog.PerPage > maxPerPage {
		invalid = append(invalid, "Catalog.PerPage")
	}
	if cfg.Production() {
		if len(cfg.Session.HashKey) < minSessionKeyLength {
			invalid = append(invalid, "Session.HashKey")
		}
		if cfg.Site.Dev {
			invalid = append(invalid, "Site.Dev")
		}
	}
	if k := len(cfg.Session.BlockKey); k != 0 && k != 16 && k != 24 && k != 32 {
		invalid = append(invalid, "Session.BlockKey")
	}

	if len(invalid) > 0 {
		return &ValidationError{fields: invalid}
	}
	return nil
}

func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}
	file, err := os.Open(absPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", absPath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	values := make(map[string]string)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		key, value, ok := strings.Cut(line, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			continue
		}
		values[key] = strings.Trim(strings.TrimSpace(value), "\"'")
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("config: failed parsing %s: %w", absPath, err)
	}
	return values, nil
}

func stringWithDefault(lookup func(string) (string, bool), key, fallback string) string {
	if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func durationWithDefault(lookup func(string) (string, bool), key string, fallback time.Duration) time.Duration {
	if value, ok := lookup(key); ok && value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func intWithDefault(lookup func(string) (string, bool), key string, fallback int) int {
	if value, ok := lookup(key); ok && value != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return parsed
		}
	}
	return fallback
}

func boolWithDefault(lookup func(string) (string, bool), key string, fallback bool) bool {
	if value, ok := lookup(key); ok && value != "" {
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
	}
	return fallback
}
