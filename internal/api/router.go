package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"eventnotifier/internal/api/controllers"
	"eventnotifier/internal/api/templates"
	"eventnotifier/pkg/middleware"
	"eventnotifier/pkg/utils"
)

// NewRouter builds the gin engine with views loaded and every route registered.
func NewRouter(eventController *controllers.EventController, log zerolog.Logger) (*gin.Engine, error) {
	views, err := templates.Parse()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(log))
	r.Use(gin.Recovery())
	r.SetHTMLTemplate(views)

	RegisterRoutes(r, eventController)

	r.NoRoute(func(c *gin.Context) {
		utils.RespondError(c, http.StatusNotFound, "Page not found")
	})
	return r, nil
}

func RegisterRoutes(r *gin.Engine, eventController *controllers.EventController) {
	r.GET("/", eventController.ListEvents)

	r.GET("/new", eventController.NewEventForm)
	r.POST("/new", eventController.CreateEvent)

	r.GET("/:id", eventController.GetEvent)
	r.POST("/:id", eventController.UpdateEvent)

	r.POST("/delete/:id", eventController.DeleteEvent)
}
