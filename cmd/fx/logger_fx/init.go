package logger_fx

import (
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"eventnotifier/internal/config"
	"eventnotifier/pkg/logging"
)

var Module = fx.Provide(provideLogger)

func provideLogger(cfg *config.Config) zerolog.Logger {
	return logging.New(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
}
