package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // league time zones on hosts without zoneinfo

	"pickem-app-go/logging"

	"github.com/joho/godotenv"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

// Config holds all application configuration
type Config struct {
	Server   ServerConfig   `json:"server"`
	Database DatabaseConfig `json:"database"`
	Logging  LoggingConfig  `json:"logging"`
	Auth     AuthConfig     `json:"auth"`
	League   LeagueConfig   `json:"league"`
	Redis    RedisConfig    `json:"redis"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port            string        `json:"port"`
	Host            string        `json:"host"`
	UseTLS          bool          `json:"use_tls"`
	BehindProxy     bool          `json:"behind_proxy"`
	CertFile        string        `json:"cert_file"`
	KeyFile         string        `json:"key_file"`
	Environment     string        `json:"environment"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string        `json:"host"`
	Port     string        `json:"port"`
	Username string        `json:"username"`
	Password string        `json:"password"`
	Database string        `json:"database"`
	Timeout  time.Duration `json:"timeout"`

	// WatchChanges follows change streams to drop cached standings; needs a replica set
	WatchChanges bool `json:"watch_changes"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level       string `json:"level"`
	Prefix      string `json:"prefix"`
	EnableColor bool   `json:"enable_color"`
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTSecret   string        `json:"-"`
	TokenExpiry time.Duration `json:"token_expiry"`
}

// LeagueConfig holds pool rules that vary per deployment
type LeagueConfig struct {
	Timezone  string         `json:"timezone"`
	FinalWeek int            `json:"final_week"`
	Location  *time.Location `json:"-"`
}

// RedisConfig holds the standings cache configuration. An empty Addr keeps the cache in memory.
type RedisConfig struct {
	Addr     string        `json:"addr"`
	Password string        `json:"-"`
	DB       int           `json:"db"`
	Prefix   string        `json:"prefix"`
	CacheTTL time.Duration `json:"cache_ttl"`
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// Don't treat missing .env as an error
		logging.Warnf("Could not load .env file: %v", err)
	}
	return FromEnv()
}

// FromEnv builds and validates a Config from the process environment only
func FromEnv() (*Config, error) {
	environment := getEnv("ENVIRONMENT", "development")

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", "8080"),
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			UseTLS:          getBoolEnv("USE_TLS", false),
			BehindProxy:     getBoolEnv("BEHIND_PROXY", false),
			CertFile:        getEnv("TLS_CERT_FILE", "server.crt"),
			KeyFile:         getEnv("TLS_KEY_FILE", "server.key"),
			Environment:     environment,
			ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "27017"),
			Username:     getEnv("DB_USERNAME", ""),
			Password:     getEnv("DB_PASSWORD", ""),
			Database:     getEnv("DB_NAME", "pickem"),
			Timeout:      getDurationEnv("DB_TIMEOUT", 10*time.Second),
			WatchChanges: getBoolEnv("DB_WATCH_CHANGES", false),
		},
		Logging: LoggingConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Prefix:      getEnv("LOG_PREFIX", "pickem"),
			EnableColor: getBoolEnv("LOG_COLOR", true),
		},
		Auth: AuthConfig{
			JWTSecret:   getEnv("JWT_SECRET", defaultJWTSecret),
			TokenExpiry: getDurationEnv("JWT_EXPIRY", 24*30*6*time.Hour),
		},
		League: LeagueConfig{
			Timezone:  getEnv("LEAGUE_TIMEZONE", "America/Los_Angeles"),
			FinalWeek: getIntEnv("FINAL_WEEK", 18),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
			Prefix:   getEnv("REDIS_PREFIX", "pickem"),
			CacheTTL: getDurationEnv("LEADERBOARD_CACHE_TTL", 5*time.Minute),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// IsDevelopment reports whether ENVIRONMENT is development
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Server.Environment, "development")
}

// Validate validates the configuration for required fields and sensible values.
// It also resolves the league time zone.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	if c.Server.UseTLS && !c.Server.BehindProxy {
		if c.Server.CertFile == "" || c.Server.KeyFile == "" {
			return fmt.Errorf("TLS certificate and key files are required when USE_TLS=true")
		}
		if _, err := os.Stat(c.Server.CertFile); os.IsNotExist(err) {
			return fmt.Errorf("TLS certificate file not found: %s", c.Server.CertFile)
		}
		if _, err := os.Stat(c.Server.KeyFile); os.IsNotExist(err) {
			return fmt.Errorf("TLS key file not found: %s", c.Server.KeyFile)
		}
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.Port == "" {
		return fmt.Errorf("database port is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if c.Auth.JWTSecret == defaultJWTSecret && !c.IsDevelopment() {
		return fmt.Errorf("JWT secret must be changed in production")
	}

	if c.League.FinalWeek < 0 {
		return fmt.Errorf("final week must be 0 (disabled) or positive, got: %d", c.League.FinalWeek)
	}
	loc, err := time.LoadLocation(c.League.Timezone)
	if err != nil {
		return fmt.Errorf("invalid LEAGUE_TIMEZONE %q: %w", c.League.Timezone, err)
	}
	c.League.Location = loc

	if c.Redis.CacheTTL < 0 {
		return fmt.Errorf("leaderboard cache TTL must not be negative")
	}

	return nil
}

// GetServerAddress returns the full server address
func (c *Config) GetServerAddress() string {
	return c.Server.Host + ":" + c.Server.Port
}

// UseRedis reports whether standings are cached in Redis
func (c *Config) UseRedis() bool {
	return c.Redis.Addr != ""
}

// LogConfiguration logs the current configuration (without sensitive data)
func (c *Config) LogConfiguration() {
	logging.Info("=== Application Configuration ===")
	logging.Infof("Server: %s (TLS: %t, Behind Proxy: %t, Environment: %s)",
		c.GetServerAddress(), c.Server.UseTLS, c.Server.BehindProxy, c.Server.Environment)
	logging.Infof("Database: %s:%s/%s (Username: %s, Auth: %t)",
		c.Database.Host, c.Database.Port, c.Database.Database,
		c.Database.Username, c.Database.Password != "")
	logging.Infof("Logging: Level=%s, Prefix=%s, Color=%t",
		c.Logging.Level, c.Logging.Prefix, c.Logging.EnableColor)
	logging.Infof("League: Timezone=%s, FinalWeek=%d", c.League.Timezone, c.League.FinalWeek)
	logging.Infof("Standings cache: Redis=%t, TTL=%s", c.UseRedis(), c.Redis.CacheTTL)
	logging.Info("================================")
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		switch strings.ToLower(value) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
