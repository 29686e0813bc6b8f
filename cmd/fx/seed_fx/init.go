package seed_fx

import (
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"eventnotifier/internal/config"
	"eventnotifier/internal/repositories"
	"eventnotifier/internal/services"
)

var Module = fx.Provide(provideSeedService)

func provideSeedService(
	cfg *config.Config,
	categoryRepo repositories.CategoryRepositoryInterface,
	eventRepo repositories.EventRepositoryInterface,
	log zerolog.Logger,
) services.SeedServiceInterface {
	return services.NewSeedService(categoryRepo, eventRepo, config.FixedCategories, cfg.SeedManifest, log)
}
