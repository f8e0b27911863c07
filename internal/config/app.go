package config

import (
	"fmt"
	"os"
	"time"

	pkgconfig "newsdesk/internal/pkg/config"
)

// AppConfig holds everything the API server reads from the environment.
// Credentials are never hard-coded or written to config files.
type AppConfig struct {
	// Addr is the HTTP listen address.
	// Default: ":8080"
	Addr string

	// RequestTimeout bounds request handling end to end.
	// Default: 30 seconds
	RequestTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown on SIGTERM.
	// Default: 15 seconds
	ShutdownTimeout time.Duration

	// AuthRateLimit and AuthRateWindow throttle the /auth endpoints per
	// client IP. Defaults: 10 requests per minute.
	AuthRateLimit  int
	AuthRateWindow time.Duration

	// Reset configures password reset links.
	Reset ResetConfig

	// SMTP configures the outgoing mail relay.
	SMTP SMTPConfig

	// X configures announcement posting.
	X XConfig

	// Observability configures logging and tracing.
	Observability ObservabilityConfig
}

// ResetConfig holds password reset link settings.
type ResetConfig struct {
	// URL is the absolute confirmation URL embedded in reset emails.
	// Default: "http://localhost:8080/auth/password_reset/confirm"
	URL string
	// TTL bounds how long a reset link stays valid. Default: 24h
	TTL time.Duration
}

// SMTPConfig holds mail relay settings read from SMTP_* variables.
// Username and Password stay empty for an unauthenticated relay.
type SMTPConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Timeout  time.Duration
}

// XConfig holds the OAuth 1.0a credentials for the X announcer, read from
// X_API_* variables.
type XConfig struct {
	Enabled           bool
	APIKey            string
	APIKeySecret      string
	AccessToken       string
	AccessTokenSecret string
	Timeout           time.Duration
}

// ObservabilityConfig holds logging and tracing settings.
type ObservabilityConfig struct {
	// EnableTracing enables OpenTelemetry distributed tracing.
	EnableTracing bool
	// TracingEndpoint for OTLP exporter. Default: "localhost:4317"
	TracingEndpoint string
	// LogLevel for the whole process. Default: "info"
	LogLevel string
	// EnableMetrics enables Prometheus metrics.
	EnableMetrics bool
}

// LoadAppConfig loads application configuration from environment variables.
// Invalid values fall back to defaults; every fallback produces a warning
// and a metrics sample, never an error.
func LoadAppConfig(metrics *pkgconfig.ConfigMetrics) (*AppConfig, []string) {
	var warnings []string
	collect := func(field string, result pkgconfig.ConfigLoadResult) pkgconfig.ConfigLoadResult {
		warnings = append(warnings, result.Warnings...)
		if result.FallbackApplied && metrics != nil {
			metrics.RecordFallback(field, "default")
		}
		return result
	}

	requestTimeout := collect("request_timeout", pkgconfig.LoadEnvDuration(
		"REQUEST_TIMEOUT", 30*time.Second, pkgconfig.ValidatePositiveDuration))
	shutdownTimeout := collect("shutdown_timeout", pkgconfig.LoadEnvDuration(
		"SHUTDOWN_TIMEOUT", 15*time.Second, pkgconfig.ValidatePositiveDuration))
	authLimit := collect("auth_rate_limit", pkgconfig.LoadEnvInt(
		"AUTH_RATE_LIMIT", 10, func(v int) error { return pkgconfig.ValidateIntRange(v, 1, 10000) }))
	authWindow := collect("auth_rate_window", pkgconfig.LoadEnvDuration(
		"AUTH_RATE_WINDOW", time.Minute, pkgconfig.ValidatePositiveDuration))
	resetTTL := collect("password_reset_ttl", pkgconfig.LoadEnvDuration(
		"PASSWORD_RESET_TTL", 24*time.Hour, func(d time.Duration) error {
			return pkgconfig.ValidateDuration(d, time.Minute, 7*24*time.Hour)
		}))
	smtpPort := collect("smtp_port", pkgconfig.LoadEnvInt(
		"SMTP_PORT", 587, func(v int) error { return pkgconfig.ValidateIntRange(v, 1, 65535) }))
	smtpTimeout := collect("smtp_timeout", pkgconfig.LoadEnvDuration(
		"SMTP_TIMEOUT", 10*time.Second, pkgconfig.ValidatePositiveDuration))
	smtpEnabled := collect("smtp_enabled", pkgconfig.LoadEnvBool("SMTP_ENABLED", false))
	xTimeout := collect("x_api_timeout", pkgconfig.LoadEnvDuration(
		"X_API_TIMEOUT", 10*time.Second, pkgconfig.ValidatePositiveDuration))
	xEnabled := collect("x_api_enabled", pkgconfig.LoadEnvBool("X_API_ENABLED", false))
	tracingEnabled := collect("tracing_enabled", pkgconfig.LoadEnvBool("TRACING_ENABLED", false))
	metricsEnabled := collect("metrics_enabled", pkgconfig.LoadEnvBool("METRICS_ENABLED", true))
	logLevel := collect("log_level", pkgconfig.LoadEnvWithFallback(
		"LOG_LEVEL", "info", pkgconfig.ValidateLogLevel))

	config := &AppConfig{
		Addr:            pkgconfig.LoadEnvString("HTTP_ADDR", ":8080"),
		RequestTimeout:  requestTimeout.Value.(time.Duration),
		ShutdownTimeout: shutdownTimeout.Value.(time.Duration),
		AuthRateLimit:   authLimit.Value.(int),
		AuthRateWindow:  authWindow.Value.(time.Duration),
		Reset: ResetConfig{
			URL: pkgconfig.LoadEnvString("PASSWORD_RESET_URL",
				"http://localhost:8080/auth/password_reset/confirm"),
			TTL: resetTTL.Value.(time.Duration),
		},
		SMTP: SMTPConfig{
			Enabled:  smtpEnabled.Value.(bool),
			Host:     os.Getenv("SMTP_HOST"),
			Port:     smtpPort.Value.(int),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     pkgconfig.LoadEnvString("SMTP_FROM", "no-reply@localhost"),
			Timeout:  smtpTimeout.Value.(time.Duration),
		},
		X: XConfig{
			Enabled:           xEnabled.Value.(bool),
			APIKey:            os.Getenv("X_API_KEY"),
			APIKeySecret:      os.Getenv("X_API_KEY_SECRET"),
			AccessToken:       os.Getenv("X_API_ACCESS_TOKEN"),
			AccessTokenSecret: os.Getenv("X_API_ACCESS_TOKEN_SECRET"),
			Timeout:           xTimeout.Value.(time.Duration),
		},
		Observability: ObservabilityConfig{
			EnableTracing:   tracingEnabled.Value.(bool),
			TracingEndpoint: pkgconfig.LoadEnvString("TRACING_ENDPOINT", "localhost:4317"),
			LogLevel:        logLevel.Value.(string),
			EnableMetrics:   metricsEnabled.Value.(bool),
		},
	}

	if metrics != nil {
		metrics.RecordLoadTimestamp()
		metrics.SetFallbackActive("any", len(warnings) > 0)
	}

	return config, warnings
}

// Validate checks that enabled integrations carry the credentials they need.
func (c *AppConfig) Validate() error {
	if c.SMTP.Enabled && c.SMTP.Host == "" {
		return fmt.Errorf("SMTP_ENABLED is set but SMTP_HOST is empty")
	}
	if c.X.Enabled {
		if c.X.APIKey == "" || c.X.APIKeySecret == "" ||
			c.X.AccessToken == "" || c.X.AccessTokenSecret == "" {
			return fmt.Errorf("X_API_ENABLED is set but one or more X_API_* credentials are empty")
		}
	}
	return nil
}
