// Package config loads server settings from command-line flags,
// environment variables, and an optional .env file, in that order.
package config

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Config holds the application configuration.
type Config struct {
	App       AppConfig
	Logger    LoggerConfig
	Data      DataConfig
	Server    ServerConfig
	Auth      AuthConfig
	Insights  InsightsConfig
	RateLimit RateLimitConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// DataConfig holds data storage configuration.
type DataConfig struct {
	BasePath string
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Name         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// AuthConfig holds token settings. The key itself is loaded from disk
// after config parsing, not from the environment.
type AuthConfig struct {
	AccessTokenKey      []byte
	AccessTokenDuration time.Duration
}

// InsightsConfig holds reading insights configuration.
type InsightsConfig struct {
	RecommendationCacheTTL time.Duration
}

// RateLimitConfig throttles the login and register endpoints per IP.
type RateLimitConfig struct {
	AuthRequestsPerSecond float64
	AuthBurst             int
}

// LoadConfig builds the configuration. Flags win over environment
// variables, which win over the .env file, which wins over defaults.
func LoadConfig() (*Config, error) {
	env := flag.String("env", "", "Environment (development, staging, production)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	dataPath := flag.String("data-path", "", "Base path for data storage")
	serverName := flag.String("server-name", "", "Name for the server")
	serverPort := flag.String("port", "", "Server port (default: 8080)")
	readTimeout := flag.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := flag.String("write-timeout", "", "HTTP write timeout (default: 15s)")
	idleTimeout := flag.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")
	accessTokenDuration := flag.String("access-token-duration", "", "Access token lifetime (default: 720h)")
	recommendationTTL := flag.String("recommendation-cache-ttl", "", "Recommendation cache lifetime (default: 1h)")
	authRateLimit := flag.String("auth-rate-limit", "", "Auth endpoint requests per second per IP (default: 1)")
	authBurst := flag.String("auth-burst", "", "Auth endpoint burst size per IP (default: 5)")
	envFile := flag.String("env-file", ".env", "Path to .env file")
	flag.Parse()

	// A missing .env file is not an error.
	_ = loadEnvFile(*envFile)

	cfg := &Config{
		App:    AppConfig{Environment: stringOpt(*env, "ENV", "development")},
		Logger: LoggerConfig{Level: stringOpt(*logLevel, "LOG_LEVEL", "info")},
		Data:   DataConfig{BasePath: stringOpt(*dataPath, "DATA_PATH", "")},
		Server: ServerConfig{
			Name: stringOpt(*serverName, "SERVER_NAME", "Book Space Server"),
			Port: stringOpt(*serverPort, "SERVER_PORT", "8080"),
		},
		RateLimit: RateLimitConfig{
			AuthRequestsPerSecond: floatOpt(*authRateLimit, "AUTH_RATE_LIMIT", 1),
			AuthBurst:             intOpt(*authBurst, "AUTH_BURST", 5),
		},
	}

	durations := []struct {
		dst  *time.Duration
		flag string
		env  string
		def  string
	}{
		{&cfg.Auth.AccessTokenDuration, *accessTokenDuration, "ACCESS_TOKEN_DURATION", "720h"},
		{&cfg.Insights.RecommendationCacheTTL, *recommendationTTL, "RECOMMENDATION_CACHE_TTL", "1h"},
		{&cfg.Server.ReadTimeout, *readTimeout, "SERVER_READ_TIMEOUT", "15s"},
		{&cfg.Server.WriteTimeout, *writeTimeout, "SERVER_WRITE_TIMEOUT", "15s"},
		{&cfg.Server.IdleTimeout, *idleTimeout, "SERVER_IDLE_TIMEOUT", "60s"},
	}
	for _, d := range durations {
		raw := stringOpt(d.flag, d.env, d.def)
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", strings.ToLower(d.env), raw, err)
		}
		*d.dst = parsed
	}

	if err := cfg.expandDataPath(); err != nil {
		return nil, fmt.Errorf("invalid data path: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	if !slices.Contains([]string{"development", "staging", "production"}, c.App.Environment) {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}
	if !slices.Contains([]string{"debug", "info", "warn", "error"}, strings.ToLower(c.Logger.Level)) {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}
	if c.Data.BasePath == "" {
		return errors.New("data base path cannot be empty after expansion")
	}
	if c.Insights.RecommendationCacheTTL <= 0 {
		return errors.New("recommendation cache TTL must be positive")
	}
	if c.RateLimit.AuthRequestsPerSecond <= 0 {
		return errors.New("auth rate limit must be positive")
	}
	if c.RateLimit.AuthBurst <= 0 {
		return errors.New("auth burst must be positive")
	}
	return nil
}

// expandDataPath resolves the data directory to an absolute path,
// defaulting to ~/BookSpace/data and expanding a leading ~.
func (c *Config) expandDataPath() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("resolve home directory: %w", err)
	}

	path := c.Data.BasePath
	switch {
	case path == "":
		path = filepath.Join(home, "BookSpace", "data")
	case strings.HasPrefix(path, "~/"):
		path = filepath.Join(home, path[2:])
	case !filepath.IsAbs(path):
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("resolve absolute path: %w", err)
		}
		path = abs
	}

	c.Data.BasePath = filepath.Clean(path)
	return nil
}

// stringOpt returns the first non-empty of flag value, environment
// variable, and default.
func stringOpt(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

func intOpt(flagValue, envKey string, defaultValue int) int {
	raw := stringOpt(flagValue, envKey, "")
	n, err := strconv.Atoi(raw)
	if raw == "" || err != nil {
		return defaultValue
	}
	return n
}

func floatOpt(flagValue, envKey string, defaultValue float64) float64 {
	raw := stringOpt(flagValue, envKey, "")
	f, err := strconv.ParseFloat(raw, 64)
	if raw == "" || err != nil {
		return defaultValue
	}
	return f
}

// loadEnvFile reads KEY=value lines into the process environment.
// Variables that are already set keep their values.
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- the .env path comes from the operator
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for lineNum := 1; scanner.Scan(); lineNum++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}
		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"'`)

		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("set %s: %w", key, err)
			}
		}
	}
	return scanner.Err()
}
