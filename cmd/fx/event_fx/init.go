package event_fx

import (
	"time"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"eventnotifier/internal/repositories"
	"eventnotifier/internal/services"
)

var Module = fx.Provide(
	provideEventRepo, provideEventService)

func provideEventRepo(db *gorm.DB) repositories.EventRepositoryInterface {
	return repositories.NewEventRepository(db)
}

func provideEventService(
	eventRepo repositories.EventRepositoryInterface,
	categoryRepo repositories.CategoryRepositoryInterface,
	loc *time.Location,
) services.EventServiceInterface {
	return services.NewEventService(eventRepo, categoryRepo, loc)
}
