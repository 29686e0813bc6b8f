package config_fx

import (
	"time"

	"go.uber.org/fx"

	"eventnotifier/internal/config"
)

var Module = fx.Provide(
	config.Load, provideLocation)

func provideLocation(cfg *config.Config) *time.Location {
	return cfg.Location
}
