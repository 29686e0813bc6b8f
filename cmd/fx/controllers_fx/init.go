package controllers_fx

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"eventnotifier/internal/api"
	"eventnotifier/internal/api/controllers"
	"eventnotifier/internal/config"
)

var Module = fx.Options(
	fx.Provide(controllers.NewEventController),
	fx.Provide(provideRouter))

func provideRouter(cfg *config.Config, eventController *controllers.EventController, log zerolog.Logger) (*gin.Engine, error) {
	gin.SetMode(cfg.GinMode)
	return api.NewRouter(eventController, log)
}
