package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAdminPassword    = "stadslab"
	defaultSessionCookie    = "stadslab_session"
	defaultSessionLifetime  = 12 * time.Hour
	defaultStorageNamespace = "stadslab"
	defaultMetricsNamespace = "stadslab"
)

// Config captures the runtime configuration for the application.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Logging  LoggingConfig
	Auth     AuthConfig
	Metrics  MetricsConfig
	Storage  StorageConfig
}

// ServerConfig configures the HTTP server runtime behavior.
type ServerConfig struct {
	Addr string
}

// DatabaseConfig contains the database connection settings.
type DatabaseConfig struct {
	URL             string
	UseMock         bool
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// LoggingConfig controls the global logger.
type LoggingConfig struct {
	Level  string
	Format string
}

// AuthConfig configures the admin gate.
type AuthConfig struct {
	AdminPassword string
	Session       SessionConfig
}

// SessionConfig configures the session cookie.
type SessionConfig struct {
	Lifetime     time.Duration
	CookieName   string
	CookieDomain string
	CookieSecure bool
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled   bool
	Namespace string
}

// StorageConfig names the key-value namespace the planner state lives in.
type StorageConfig struct {
	Namespace string
}

// Load inspects the environment, after applying an optional .env file, and
// builds a Config value.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{}

	cfg.Server = ServerConfig{
		Addr: firstNonEmpty(
			os.Getenv("SERVER_ADDR"),
			os.Getenv("ADDR"),
			":8080",
		),
	}

	cfg.Database = DatabaseConfig{
		URL: firstNonEmpty(
			os.Getenv("DATABASE_URL"),
			os.Getenv("DB_URL"),
			"",
		),
		MaxIdleConns:    parseIntWithDefault(os.Getenv("DATABASE_MAX_IDLE_CONNS"), 0),
		MaxOpenConns:    parseIntWithDefault(os.Getenv("DATABASE_MAX_OPEN_CONNS"), 0),
		ConnMaxLifetime: parseDurationWithDefault(os.Getenv("DATABASE_CONN_MAX_LIFETIME"), 0),
		ConnMaxIdleTime: parseDurationWithDefault(os.Getenv("DATABASE_CONN_MAX_IDLE_TIME"), 0),
	}
	cfg.Database.UseMock = parseBoolWithDefault(os.Getenv("DATABASE_USE_MOCK"), strings.TrimSpace(cfg.Database.URL) == "")

	cfg.Logging = LoggingConfig{
		Level:  firstNonEmpty(os.Getenv("LOG_LEVEL"), "info"),
		Format: firstNonEmpty(os.Getenv("LOG_FORMAT"), "text"),
	}

	cfg.Auth = AuthConfig{
		AdminPassword: firstNonEmpty(os.Getenv("ADMIN_PASSWORD"), defaultAdminPassword),
		Session: SessionConfig{
			Lifetime:     parseDurationWithDefault(os.Getenv("SESSION_LIFETIME"), defaultSessionLifetime),
			CookieName:   firstNonEmpty(os.Getenv("SESSION_COOKIE_NAME"), defaultSessionCookie),
			CookieDomain: strings.TrimSpace(os.Getenv("SESSION_COOKIE_DOMAIN")),
			CookieSecure: parseBoolWithDefault(os.Getenv("SESSION_COOKIE_SECURE"), false),
		},
	}

	cfg.Metrics = MetricsConfig{
		Enabled:   parseBoolWithDefault(os.Getenv("METRICS_ENABLED"), true),
		Namespace: firstNonEmpty(os.Getenv("METRICS_NAMESPACE"), defaultMetricsNamespace),
	}

	cfg.Storage = StorageConfig{
		Namespace: firstNonEmpty(os.Getenv("STORAGE_NAMESPACE"), defaultStorageNamespace),
	}

	if strings.TrimSpace(cfg.Server.Addr) == "" {
		return Config{}, fmt.Errorf("server address must not be empty")
	}
	if !cfg.Database.UseMock && strings.TrimSpace(cfg.Database.URL) == "" {
		return Config{}, fmt.Errorf("database URL must be set unless DATABASE_USE_MOCK is enabled")
	}

	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

func parseIntWithDefault(value string, def int) int {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func parseBoolWithDefault(value string, def bool) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return def
	}
	return parsed
}

func parseDurationWithDefault(value string, def time.Duration) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return def
	}
	return parsed
}
