package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the server configuration loaded from environment variables.
type Config struct {
	// Server
	Port string `json:"port"`

	// Database
	DatabasePath string `json:"database_path"`

	// Connection pooling
	MaxOpenConns    int           `json:"max_open_conns"`
	MaxIdleConns    int           `json:"max_idle_conns"`
	ConnMaxLifetime time.Duration `json:"conn_max_lifetime"`

	// Logging
	LogLevel string `json:"log_level"`

	// API rate limiting (requests per second per client, burst size)
	RateLimitRPS   float64 `json:"rate_limit_rps"`
	RateLimitBurst int     `json:"rate_limit_burst"`

	// Export
	ExportDir string `json:"export_dir"`
}

// LoadConfig loads configuration from an optional JSON file (CONFIG_FILE,
// falling back to config.json if present), with environment variables taking
// precedence over file values and built-in defaults.
func LoadConfig() (*Config, error) {
	config := &Config{
		Port:         "8080",
		DatabasePath: "medical_lock_hospitals.db",

		MaxOpenConns:    25,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,

		LogLevel: "INFO",

		RateLimitRPS:   50,
		RateLimitBurst: 100,

		ExportDir: "exports",
	}

	if err := config.loadFile(getEnv("CONFIG_FILE", "config.json")); err != nil {
		return nil, err
	}

	config.Port = getEnv("SERVER_PORT", config.Port)
	config.DatabasePath = getEnv("DATABASE_PATH", config.DatabasePath)
	config.MaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", config.MaxOpenConns)
	config.MaxIdleConns = getEnvInt("DB_MAX_IDLE_CONNS", config.MaxIdleConns)
	config.ConnMaxLifetime = getEnvDuration("DB_CONN_MAX_LIFETIME", config.ConnMaxLifetime)
	config.LogLevel = getEnv("LOG_LEVEL", config.LogLevel)
	config.RateLimitRPS = getEnvFloat("RATE_LIMIT_RPS", config.RateLimitRPS)
	config.RateLimitBurst = getEnvInt("RATE_LIMIT_BURST", config.RateLimitBurst)
	config.ExportDir = getEnv("EXPORT_DIR", config.ExportDir)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

// loadFile overlays values from a JSON config file. A missing file is fine;
// a present but unreadable one is not.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// Validate checks the configuration for obviously broken values.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("server port must not be empty")
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("server port must be numeric, got %q", c.Port)
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("database path must not be empty")
	}
	if c.MaxOpenConns <= 0 {
		return fmt.Errorf("max_open_conns must be positive, got %d", c.MaxOpenConns)
	}
	if c.MaxIdleConns < 0 {
		return fmt.Errorf("max_idle_conns must not be negative, got %d", c.MaxIdleConns)
	}
	if c.MaxIdleConns > c.MaxOpenConns {
		return fmt.Errorf("max_idle_conns (%d) must not exceed max_open_conns (%d)", c.MaxIdleConns, c.MaxOpenConns)
	}
	if c.RateLimitRPS <= 0 {
		return fmt.Errorf("rate_limit_rps must be positive, got %v", c.RateLimitRPS)
	}
	switch c.LogLevel {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
