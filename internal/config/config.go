// Package config handles loading application configuration from environment
// variables. All config is centralized here so no other package reads env
// vars directly. Sensible defaults are provided for development.
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
)

// Config holds all application configuration. Populated from environment
// variables at startup. Passed to other packages via dependency injection.
type Config struct {
	// Env is the runtime environment: "development" or "production".
	Env string

	// Port is the HTTP listen port (default: 8080).
	Port int

	// BaseURL is the public-facing URL used for links and redirects.
	BaseURL string

	// LogLevel controls log verbosity: "debug", "info", "warn", "error".
	LogLevel string

	// Database holds MariaDB connection settings.
	Database DatabaseConfig

	// Redis holds Redis connection settings.
	Redis RedisConfig

	// Session holds session token settings.
	Session SessionConfig

	// Catalog holds movie-catalog provider (TMDB) settings.
	Catalog CatalogConfig
}

// DatabaseConfig holds MariaDB connection parameters. Individual fields
// (Host, User, Password, Name) are read from separate env vars so container
// orchestrators can manage each independently. If DATABASE_URL is set, it
// takes precedence over the individual fields.
type DatabaseConfig struct {
	// Host is the MariaDB address in host:port format (default: "localhost:3306").
	// If no port is specified, 3306 is appended automatically.
	Host string

	// User is the MariaDB username (default: "flicktrack").
	User string

	// Password is the MariaDB password (default: "flicktrack").
	Password string

	// Name is the database name (default: "flicktrack").
	Name string

	// dsnOverride is set when DATABASE_URL is provided, bypassing individual fields.
	dsnOverride string

	// MaxOpenConns is the maximum number of open connections in the pool.
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections in the pool.
	MaxIdleConns int

	// ConnMaxLifetime is how long a connection can be reused.
	ConnMaxLifetime time.Duration
}

// DSN returns the go-sql-driver/mysql connection string. If DATABASE_URL was
// set, it is returned as-is. Otherwise the DSN is built from the individual
// Host/User/Password/Name fields using the driver's Config.FormatDSN()
// to safely handle special characters in passwords.
func (d DatabaseConfig) DSN() string {
	if d.dsnOverride != "" {
		return d.dsnOverride
	}
	cfg := mysql.NewConfig()
	cfg.User = d.User
	cfg.Passwd = d.Password
	cfg.Net = "tcp"
	cfg.Addr = ensurePort(d.Host, "3306")
	cfg.DBName = d.Name
	cfg.ParseTime = true
	return cfg.FormatDSN()
}

// ensurePort appends the default port if the host string doesn't include one.
// Allows users to set DB_HOST=mydb (gets :3306) or DB_HOST=mydb:3307 (as-is).
func ensurePort(host, defaultPort string) string {
	_, _, err := net.SplitHostPort(host)
	if err != nil {
		return net.JoinHostPort(host, defaultPort)
	}
	return host
}

// RedisConfig holds Redis connection parameters.
type RedisConfig struct {
	// URL is the Redis connection URL (e.g., "redis://localhost:6379").
	URL string
}

// SessionConfig holds session token settings.
type SessionConfig struct {
	// SecretKey signs session tokens (must be 32+ characters in production).
	SecretKey string

	// TTL is how long a session credential stays valid after issuance.
	// A new login always issues a fresh credential; existing ones are
	// never extended.
	TTL time.Duration
}

// CatalogConfig holds movie-catalog provider settings. The access token is
// only ever used server-side; it must never reach a client.
type CatalogConfig struct {
	// BaseURL is the catalog API root (default: TMDB v3).
	BaseURL string

	// AccessToken is the TMDB API read access token (Bearer).
	AccessToken string

	// Region is the watch-provider region filter (default: "US").
	Region string

	// Timeout bounds every outbound catalog request.
	Timeout time.Duration

	// CacheTTL is how long catalog responses are kept in Redis.
	CacheTTL time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
// Returns an error if required variables are missing.
func Load() (*Config, error) {
	cfg := &Config{
		Env:      getEnv("ENV", "development"),
		Port:     getEnvInt("PORT", 8080),
		BaseURL:  getEnv("BASE_URL", "http://localhost:8080"),
		LogLevel: getEnv("LOG_LEVEL", "debug"),

		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost:3306"),
			User:            getEnv("DB_USER", "flicktrack"),
			Password:        getEnv("DB_PASSWORD", "flicktrack"),
			Name:            getEnv("DB_NAME", "flicktrack"),
			dsnOverride:     getEnv("DATABASE_URL", ""),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},

		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", "redis://localhost:6379"),
		},

		Session: SessionConfig{
			SecretKey: getEnv("SESSION_SECRET", ""),
			TTL:       getEnvDuration("SESSION_TTL", 168*time.Hour), // 7 days
		},

		Catalog: CatalogConfig{
			BaseURL:     getEnv("TMDB_BASE_URL", "https://api.themoviedb.org/3"),
			AccessToken: getEnv("TMDB_ACCESS_TOKEN", ""),
			Region:      getEnv("TMDB_WATCH_REGION", "US"),
			Timeout:     getEnvDuration("TMDB_TIMEOUT", 10*time.Second),
			CacheTTL:    getEnvDuration("CATALOG_CACHE_TTL", 15*time.Minute),
		},
	}

	// Validate required fields in production. Case-insensitive check catches
	// common variants like "Production", "prod", etc.
	envLower := strings.ToLower(cfg.Env)
	if envLower == "production" || envLower == "prod" {
		if cfg.Session.SecretKey == "" {
			return nil, fmt.Errorf("SESSION_SECRET is required in production")
		}
		if len(cfg.Session.SecretKey) < 32 {
			return nil, fmt.Errorf("SESSION_SECRET must be at least 32 characters in production")
		}
		if cfg.Catalog.AccessToken == "" {
			return nil, fmt.Errorf("TMDB_ACCESS_TOKEN is required in production")
		}
	}

	// Provide a dev-only default secret so local dev works without .env.
	if cfg.Session.SecretKey == "" {
		cfg.Session.SecretKey = "dev-secret-key-do-not-use-in-production!!"
	}

	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(c.Env)
	return env == "development" || env == "dev"
}

// --- Helper functions for reading environment variables ---

// getEnv reads a string env var or returns the default.
func getEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return defaultVal
}

// getEnvInt reads an integer env var or returns the default.
func getEnvInt(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// getEnvDuration reads a duration env var (e.g., "168h") or returns the default.
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
