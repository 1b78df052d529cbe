// Package config loads QuoteVault settings with koanf from defaults, YAML
// profiles and APP_ environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Default configuration values.
const (
	DefaultServerPort     = 8080
	DefaultMaxRequestSize = 8 << 20 // avatars arrive base64-encoded in JSON

	DefaultClientRetryMaxAttempts     = 3
	DefaultClientRetryMultiplier      = 2.0
	DefaultClientRetryJitterFactor    = 0.25
	DefaultClientCircuitMaxFailures   = 5
	DefaultClientCircuitHalfOpenLimit = 3

	DefaultTransportMaxIdleConns        = 100
	DefaultTransportMaxIdleConnsPerHost = 10

	DefaultLogFileMaxSizeMB  = 100
	DefaultLogFileMaxBackups = 3
	DefaultLogFileMaxAgeDays = 28

	DefaultDailySampleSize    = 50
	DefaultSearchResultLimit  = 30
	DefaultSearchHistorySize  = 6
	DefaultFeedSize           = 100
	DefaultMaxAvatarBytes     = 5 << 20
	DefaultDispatchWorkers    = 4
	DefaultDatabaseOpenConns  = 1
	DefaultRedisDB            = 0
	DefaultJWTSecret          = "local-development-secret-change-me-now"
	DefaultNotificationsTopic = "quotevault.events"
)

// Config is the root configuration structure.
type Config struct {
	App           AppConfig           `koanf:"app"           validate:"required"`
	Server        ServerConfig        `koanf:"server"        validate:"required"`
	Log           LogConfig           `koanf:"log"           validate:"required"`
	Telemetry     TelemetryConfig     `koanf:"telemetry"`
	Auth          AuthConfig          `koanf:"auth"          validate:"required"`
	Client        ClientConfig        `koanf:"client"        validate:"required"`
	Services      ServicesConfig      `koanf:"services"      validate:"required"`
	Database      DatabaseConfig      `koanf:"database"      validate:"required"`
	Redis         RedisConfig         `koanf:"redis"`
	Storage       StorageConfig       `koanf:"storage"       validate:"required"`
	Quotes        QuotesConfig        `koanf:"quotes"        validate:"required"`
	Notifications NotificationsConfig `koanf:"notifications" validate:"required"`
	Features      map[string]string   `koanf:"features"`
	CORS          CORSConfig          `koanf:"cors"`
	TUI           TUIConfig           `koanf:"tui"`
}

// AppConfig contains application-level settings.
type AppConfig struct {
	Name        string `koanf:"name"        validate:"required"`
	Version     string `koanf:"version"     validate:"required"`
	Environment string `koanf:"environment" validate:"required,oneof=local dev qa prod test"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"             validate:"required,min=1,max=65535"`
	Host            string        `koanf:"host"             validate:"required"`
	ReadTimeout     time.Duration `koanf:"read_timeout"     validate:"required,min=1s"`
	WriteTimeout    time.Duration `koanf:"write_timeout"    validate:"required,min=1s"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"     validate:"required,min=1s"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"required,min=1s"`
	RequestTimeout  time.Duration `koanf:"request_timeout"  validate:"required,min=100ms"`
	MaxRequestSize  int64         `koanf:"max_request_size" validate:"required,min=1"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string        `koanf:"level"  validate:"required,oneof=trace debug info warn error"`
	Format string        `koanf:"format" validate:"required,oneof=json text pretty"`
	File   LogFileConfig `koanf:"file"`
}

// LogFileConfig contains rolling log file settings.
type LogFileConfig struct {
	Enabled    bool   `koanf:"enabled"`
	Path       string `koanf:"path"        validate:"required_if=Enabled true"`
	MaxSizeMB  int    `koanf:"max_size"    validate:"omitempty,min=1,max=1024"`
	MaxBackups int    `koanf:"max_backups" validate:"omitempty,min=0,max=100"`
	MaxAgeDays int    `koanf:"max_age"     validate:"omitempty,min=0,max=365"`
	Compress   bool   `koanf:"compress"`
}

// TelemetryConfig contains OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled      bool    `koanf:"enabled"`
	Endpoint     string  `koanf:"endpoint"      validate:"required_if=Enabled true,omitempty,url"`
	ServiceName  string  `koanf:"service_name"  validate:"required_if=Enabled true"`
	SamplingRate float64 `koanf:"sampling_rate" validate:"min=0,max=1"`
}

// AuthConfig contains access token settings.
type AuthConfig struct {
	JWTSecret string        `koanf:"jwt_secret" validate:"required,min=32"`
	Issuer    string        `koanf:"issuer"     validate:"required"`
	TokenTTL  time.Duration `koanf:"token_ttl"  validate:"required,min=1m"`
	Leeway    time.Duration `koanf:"leeway"     validate:"min=0"`
}

// ClientConfig contains settings for the outbound API client.
type ClientConfig struct {
	Timeout        time.Duration        `koanf:"timeout"         validate:"required,min=100ms"`
	Retry          RetryConfig          `koanf:"retry"           validate:"required"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuit_breaker" validate:"required"`
	Transport      TransportConfig      `koanf:"transport"       validate:"required"`
}

// RetryConfig contains retry settings for HTTP clients.
type RetryConfig struct {
	MaxAttempts     int           `koanf:"max_attempts"     validate:"required,min=1,max=10"`
	InitialInterval time.Duration `koanf:"initial_interval" validate:"required,min=10ms"`
	MaxInterval     time.Duration `koanf:"max_interval"     validate:"required,min=100ms"`
	Multiplier      float64       `koanf:"multiplier"       validate:"required,min=1.1,max=10"`
	JitterFactor    float64       `koanf:"jitter_factor"    validate:"min=0,max=1"`
}

// CircuitBreakerConfig contains circuit breaker settings for HTTP clients.
type CircuitBreakerConfig struct {
	MaxFailures   int           `koanf:"max_failures"    validate:"required,min=1"`
	Timeout       time.Duration `koanf:"timeout"         validate:"required,min=1s"`
	HalfOpenLimit int           `koanf:"half_open_limit" validate:"required,min=1"`
}

// TransportConfig contains HTTP transport pool settings.
type TransportConfig struct {
	MaxIdleConns        int           `koanf:"max_idle_conns"          validate:"required,min=1"`
	MaxIdleConnsPerHost int           `koanf:"max_idle_conns_per_host" validate:"required,min=1"`
	IdleConnTimeout     time.Duration `koanf:"idle_conn_timeout"       validate:"required,min=1s"`
}

// ServicesConfig names the HTTP services the terminal client talks to.
type ServicesConfig struct {
	Vault ServiceEndpointConfig `koanf:"vault" validate:"required"`
}

// ServiceEndpointConfig contains configuration for a downstream service endpoint.
type ServiceEndpointConfig struct {
	BaseURL string `koanf:"base_url" validate:"required,url"`
	Name    string `koanf:"name"     validate:"required"`
}

// DatabaseConfig selects the relational store.
type DatabaseConfig struct {
	Driver             string        `koanf:"driver"               validate:"required,oneof=sqlite"`
	DSN                string        `koanf:"dsn"                  validate:"required"`
	Seed               bool          `koanf:"seed"`
	MaxOpenConns       int           `koanf:"max_open_conns"       validate:"min=0"`
	SlowQueryThreshold time.Duration `koanf:"slow_query_threshold" validate:"min=0"`
}

// RedisConfig configures the key-value store and event bus. When disabled
// an in-memory store is used and events are only logged.
type RedisConfig struct {
	Enabled      bool          `koanf:"enabled"`
	Addr         string        `koanf:"addr"          validate:"required_if=Enabled true,omitempty,hostname_port"`
	Password     string        `koanf:"password"`
	DB           int           `koanf:"db"            validate:"min=0,max=15"`
	Namespace    string        `koanf:"namespace"`
	DialTimeout  time.Duration `koanf:"dial_timeout"  validate:"min=0"`
	ReadTimeout  time.Duration `koanf:"read_timeout"  validate:"min=0"`
	WriteTimeout time.Duration `koanf:"write_timeout" validate:"min=0"`
}

// StorageConfig configures avatar object storage on the local filesystem.
type StorageConfig struct {
	Root           string `koanf:"root"             validate:"required"`
	PublicBaseURL  string `koanf:"public_base_url"  validate:"required,url"`
	MaxAvatarBytes int    `koanf:"max_avatar_bytes" validate:"required,min=1"`
}

// QuotesConfig bounds quote listings.
type QuotesConfig struct {
	DailySampleSize   int `koanf:"daily_sample_size"   validate:"required,min=1,max=1000"`
	SearchResultLimit int `koanf:"search_result_limit" validate:"required,min=1,max=500"`
	SearchHistorySize int `koanf:"search_history_size" validate:"required,min=1,max=50"`
	FeedSize          int `koanf:"feed_size"           validate:"required,min=1,max=1000"`
}

// NotificationsConfig drives the reminder dispatcher.
type NotificationsConfig struct {
	DispatchEnabled bool          `koanf:"dispatch_enabled"`
	Interval        time.Duration `koanf:"interval" validate:"required,min=1s"`
	Workers         int           `koanf:"workers"  validate:"required,min=1,max=64"`
	Topic           string        `koanf:"topic"    validate:"required"`
	Channel         string        `koanf:"channel"  validate:"required"`
}

// CORSConfig lists browser origins allowed to call the API.
type CORSConfig struct {
	AllowedOrigins []string      `koanf:"allowed_origins"`
	MaxAge         time.Duration `koanf:"max_age" validate:"min=0"`
}

// TUIConfig configures the terminal client.
type TUIConfig struct {
	TokenFile string `koanf:"token_file"`
	LogFile   string `koanf:"log_file"`
	ShareDir  string `koanf:"share_dir"`
	// Timezone is the IANA zone reminders fire in; TZ when empty.
	Timezone string `koanf:"timezone"`
}

// defaults returns the default configuration values.
func defaults() map[string]any {
	return map[string]any{
		"app.name":        "quotevault",
		"app.version":     "dev",
		"app.environment": "local",

		"server.port":             DefaultServerPort,
		"server.host":             "0.0.0.0",
		"server.read_timeout":     "30s",
		"server.write_timeout":    "30s",
		"server.idle_timeout":     "120s",
		"server.shutdown_timeout": "10s",
		"server.request_timeout":  "15s",
		"server.max_request_size": DefaultMaxRequestSize,

		"log.level":            "info",
		"log.format":           "json",
		"log.file.enabled":     false,
		"log.file.path":        "./logs/quotevault.log",
		"log.file.max_size":    DefaultLogFileMaxSizeMB,
		"log.file.max_backups": DefaultLogFileMaxBackups,
		"log.file.max_age":     DefaultLogFileMaxAgeDays,
		"log.file.compress":    true,

		"telemetry.enabled":       false,
		"telemetry.endpoint":      "",
		"telemetry.service_name":  "quotevault",
		"telemetry.sampling_rate": 1.0,

		"auth.jwt_secret": DefaultJWTSecret,
		"auth.issuer":     "quotevault",
		"auth.token_ttl":  "168h",
		"auth.leeway":     "30s",

		"client.timeout":                           "10s",
		"client.retry.max_attempts":                DefaultClientRetryMaxAttempts,
		"client.retry.initial_interval":            "100ms",
		"client.retry.max_interval":                "5s",
		"client.retry.multiplier":                  DefaultClientRetryMultiplier,
		"client.retry.jitter_factor":               DefaultClientRetryJitterFactor,
		"client.circuit_breaker.max_failures":      DefaultClientCircuitMaxFailures,
		"client.circuit_breaker.timeout":           "30s",
		"client.circuit_breaker.half_open_limit":   DefaultClientCircuitHalfOpenLimit,
		"client.transport.max_idle_conns":          DefaultTransportMaxIdleConns,
		"client.transport.max_idle_conns_per_host": DefaultTransportMaxIdleConnsPerHost,
		"client.transport.idle_conn_timeout":       "90s",

		"services.vault.base_url": "http://localhost:8080",
		"services.vault.name":     "quotevault-api",

		"database.driver":               "sqlite",
		"database.dsn":                  "file:quotevault.db?_busy_timeout=5000",
		"database.seed":                 true,
		"database.max_open_conns":       DefaultDatabaseOpenConns,
		"database.slow_query_threshold": "200ms",

		"redis.enabled":       false,
		"redis.addr":          "localhost:6379",
		"redis.db":            DefaultRedisDB,
		"redis.namespace":     "quotevault:",
		"redis.dial_timeout":  "5s",
		"redis.read_timeout":  "3s",
		"redis.write_timeout": "3s",

		"storage.root":             "./data/objects",
		"storage.public_base_url":  "http://localhost:8080/api/v1/objects",
		"storage.max_avatar_bytes": DefaultMaxAvatarBytes,

		"quotes.daily_sample_size":   DefaultDailySampleSize,
		"quotes.search_result_limit": DefaultSearchResultLimit,
		"quotes.search_history_size": DefaultSearchHistorySize,
		"quotes.feed_size":           DefaultFeedSize,

		"notifications.dispatch_enabled": true,
		"notifications.interval":         "1m",
		"notifications.workers":          DefaultDispatchWorkers,
		"notifications.topic":            DefaultNotificationsTopic,
		"notifications.channel":          "daily-quotes",

		"cors.allowed_origins": []string{"http://localhost:3000"},
		"cors.max_age":         "12h",

		"tui.token_file": "",
		"tui.log_file":   "./logs/quotevault-tui.log",
		"tui.share_dir":  "",
		"tui.timezone":   "",
	}
}

// Load loads configuration with the following precedence (highest to lowest):
//  1. Environment variables (APP_ prefix, "__" separates sections)
//  2. Profile config file (configs/{profile}.yaml)
//  3. Base config file (configs/base.yaml)
//  4. Default values
func Load(profile string) (*Config, error) {
	return LoadFrom("configs", profile)
}

// LoadFrom is Load with an explicit config directory.
func LoadFrom(dir, profile string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if err := loadFileIfExists(k, dir+"/base.yaml"); err != nil {
		return nil, fmt.Errorf("loading base config: %w", err)
	}

	if profile != "" {
		if err := loadFileIfExists(k, fmt.Sprintf("%s/%s.yaml", dir, profile)); err != nil {
			return nil, fmt.Errorf("loading profile config %q: %w", profile, err)
		}
	}

	if err := k.Load(env.Provider("APP_", ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return &cfg, nil
}

// envKey maps APP_AUTH__JWT_SECRET to auth.jwt_secret. A single underscore
// is kept so multi-word keys survive; single-word paths such as
// APP_SERVER_PORT still resolve because their one underscore is the section
// separator.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, "APP_"))
	if strings.Contains(s, "__") {
		return strings.ReplaceAll(s, "__", ".")
	}

	return strings.Replace(s, "_", ".", 1)
}

// loadFileIfExists loads a YAML config file if it exists.
func loadFileIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return k.Load(file.Provider(path), yaml.Parser())
}
