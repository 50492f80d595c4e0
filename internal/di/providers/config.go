// Package providers holds the constructors registered on the DI container.
package providers

import (
	"log/slog"

	"github.com/samber/do/v2"

	"github.com/bookspace/bookspace-server/internal/config"
	"github.com/bookspace/bookspace-server/internal/logger"
)

// ProvideConfig loads the server configuration.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	return config.LoadConfig()
}

// ProvideLogger builds the application logger and emits the startup line.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		AddSource:   cfg.App.Environment == "development",
		Environment: cfg.App.Environment,
	})
	log.Info("Starting Book Space Server",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"data_path", cfg.Data.BasePath,
	)

	return log, nil
}

// ProvideSlogLogger exposes the underlying slog.Logger for packages that
// take one directly.
func ProvideSlogLogger(i do.Injector) (*slog.Logger, error) {
	return do.MustInvoke[*logger.Logger](i).Logger, nil
}
