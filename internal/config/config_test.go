package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App:       AppConfig{Environment: "development"},
		Logger:    LoggerConfig{Level: "info"},
		Data:      DataConfig{BasePath: "/some/path"},
		Insights:  InsightsConfig{RecommendationCacheTTL: time.Hour},
		RateLimit: RateLimitConfig{AuthRequestsPerSecond: 1, AuthBurst: 5},
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown environment", func(c *Config) { c.App.Environment = "test" }},
		{"empty environment", func(c *Config) { c.App.Environment = "" }},
		{"environment is case sensitive", func(c *Config) { c.App.Environment = "DEVELOPMENT" }},
		{"unknown log level", func(c *Config) { c.Logger.Level = "trace" }},
		{"empty log level", func(c *Config) { c.Logger.Level = "" }},
		{"empty data path", func(c *Config) { c.Data.BasePath = "" }},
		{"zero cache TTL", func(c *Config) { c.Insights.RecommendationCacheTTL = 0 }},
		{"zero auth rate", func(c *Config) { c.RateLimit.AuthRequestsPerSecond = 0 }},
		{"zero auth burst", func(c *Config) { c.RateLimit.AuthBurst = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidate_LogLevelCaseInsensitive(t *testing.T) {
	cfg := validConfig()
	cfg.Logger.Level = "DEBUG"
	assert.NoError(t, cfg.Validate())
}

func TestExpandDataPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty uses default", "", filepath.Join(home, "BookSpace", "data")},
		{"tilde expands to home", "~/my-data", filepath.Join(home, "my-data")},
		{"absolute path kept", "/absolute/path/to/data", "/absolute/path/to/data"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Data: DataConfig{BasePath: tt.input}}
			require.NoError(t, cfg.expandDataPath())
			assert.Equal(t, tt.expected, cfg.Data.BasePath)
		})
	}
}

func TestStringOpt_Precedence(t *testing.T) {
	t.Setenv("BOOKSPACE_TEST_OPT", "env-value")

	assert.Equal(t, "flag-value", stringOpt("flag-value", "BOOKSPACE_TEST_OPT", "default"))
	assert.Equal(t, "env-value", stringOpt("", "BOOKSPACE_TEST_OPT", "default"))
	assert.Equal(t, "default", stringOpt("", "BOOKSPACE_UNSET_OPT", "default"))
}

func TestNumericOpts_FallBackOnBadInput(t *testing.T) {
	assert.Equal(t, 2.5, floatOpt("2.5", "BOOKSPACE_UNSET_OPT", 1))
	assert.Equal(t, 1.0, floatOpt("", "BOOKSPACE_UNSET_OPT", 1))
	assert.Equal(t, 1.0, floatOpt("not-a-number", "BOOKSPACE_UNSET_OPT", 1))

	assert.Equal(t, 7, intOpt("7", "BOOKSPACE_UNSET_OPT", 5))
	assert.Equal(t, 5, intOpt("", "BOOKSPACE_UNSET_OPT", 5))
	assert.Equal(t, 5, intOpt("2.5", "BOOKSPACE_UNSET_OPT", 5))
}

func TestLoadEnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	content := `# reading tracker settings
ENV=staging
LOG_LEVEL=debug
DATA_PATH=/test/path

QUOTED_VALUE="some value"
SINGLE_QUOTED='another value'
`
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o644))

	for _, key := range []string{"ENV", "LOG_LEVEL", "DATA_PATH", "QUOTED_VALUE", "SINGLE_QUOTED"} {
		t.Setenv(key, "")
		os.Unsetenv(key) //nolint:errcheck // Setenv above restores the original on cleanup
	}

	require.NoError(t, loadEnvFile(envFile))

	assert.Equal(t, "staging", os.Getenv("ENV"))
	assert.Equal(t, "debug", os.Getenv("LOG_LEVEL"))
	assert.Equal(t, "/test/path", os.Getenv("DATA_PATH"))
	assert.Equal(t, "some value", os.Getenv("QUOTED_VALUE"))
	assert.Equal(t, "another value", os.Getenv("SINGLE_QUOTED"))
}

func TestLoadEnvFile_InvalidLine(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("NO EQUALS SIGN HERE\n"), 0o644))

	err := loadEnvFile(envFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestLoadEnvFile_MissingFile(t *testing.T) {
	assert.Error(t, loadEnvFile("/nonexistent/file/.env"))
}

func TestLoadEnvFile_KeepsExistingEnvVars(t *testing.T) {
	t.Setenv("BOOKSPACE_TEST_KEEP", "original-value")

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("BOOKSPACE_TEST_KEEP=new-value"), 0o644))

	require.NoError(t, loadEnvFile(envFile))
	assert.Equal(t, "original-value", os.Getenv("BOOKSPACE_TEST_KEEP"))
}
