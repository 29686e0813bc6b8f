package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"eventnotifier/internal/models/request_models"
	"eventnotifier/internal/services"
	"eventnotifier/pkg/utils"
)

type EventController struct {
	eventService services.EventServiceInterface
	log          zerolog.Logger
}

func NewEventController(eventService services.EventServiceInterface, log zerolog.Logger) *EventController {
	return &EventController{
		eventService: eventService,
		log:          log,
	}
}

func parseEventID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, utils.ErrInvalidID
	}
	return uint(id), nil
}

// ListEvents renders GET /.
func (ec *EventController) ListEvents(c *gin.Context) {
	var query request_models.ListEventsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	page, err := ec.eventService.ListEvents(c.Request.Context(), query)
	if err != nil {
		utils.HandleServiceError(c, ec.log, err)
		return
	}

	utils.RenderHTML(c, http.StatusOK, "index.html", page)
}

// NewEventForm renders GET /new.
func (ec *EventController) NewEventForm(c *gin.Context) {
	page, err := ec.eventService.NewEventForm(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, ec.log, err)
		return
	}

	utils.RenderHTML(c, http.StatusOK, "create.html", page)
}

// CreateEvent handles POST /new.
func (ec *EventController) CreateEvent(c *gin.Context) {
	var form request_models.EventForm
	if err := c.ShouldBind(&form); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid form submission")
		return
	}

	event, err := ec.eventService.CreateEvent(c.Request.Context(), form)
	if err != nil {
		if verr, ok := utils.AsValidationError(err); ok {
			ec.renderRejected(c, 0, "create.html", form, verr)
			return
		}
		utils.HandleServiceError(c, ec.log, err)
		return
	}

	ec.log.Info().Uint("event_id", event.EventID).Msg("event created")
	utils.RedirectSeeOther(c, "/")
}

// GetEvent renders GET /:id.
func (ec *EventController) GetEvent(c *gin.Context) {
	eventID, err := parseEventID(c)
	if err != nil {
		utils.HandleServiceError(c, ec.log, err)
		return
	}

	page, err := ec.eventService.GetEventForm(c.Request.Context(), eventID)
	if err != nil {
		utils.HandleServiceError(c, ec.log, err)
		return
	}

	utils.RenderHTML(c, http.StatusOK, "detail.html", page)
}

// UpdateEvent handles POST /:id.
func (ec *EventController) UpdateEvent(c *gin.Context) {
	eventID, err := parseEventID(c)
	if err != nil {
		utils.HandleServiceError(c, ec.log, err)
		return
	}

	var form request_models.EventForm
	if err := c.ShouldBind(&form); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid form submission")
		return
	}

	if err := ec.eventService.UpdateEvent(c.Request.Context(), eventID, form); err != nil {
		if verr, ok := utils.AsValidationError(err); ok {
			ec.renderRejected(c, eventID, "detail.html", form, verr)
			return
		}
		utils.HandleServiceError(c, ec.log, err)
		return
	}

	ec.log.Info().Uint("event_id", eventID).Msg("event updated")
	utils.RedirectSeeOther(c, fmt.Sprintf("/%d", eventID))
}

// DeleteEvent handles POST /delete/:id. Unknown ids still redirect to the list.
func (ec *EventController) DeleteEvent(c *gin.Context) {
	eventID, err := parseEventID(c)
	if err != nil {
		utils.RedirectSeeOther(c, "/")
		return
	}

	deleted, err := ec.eventService.DeleteEvent(c.Request.Context(), eventID)
	if err != nil {
		utils.HandleServiceError(c, ec.log, err)
		return
	}

	ec.log.Info().Uint("event_id", eventID).Bool("deleted", deleted).Msg("event delete requested")
	utils.RedirectSeeOther(c, "/")
}

func (ec *EventController) renderRejected(c *gin.Context, eventID uint, view string, form request_models.EventForm, verr *utils.ValidationError) {
	page, err := ec.eventService.RejectedForm(c.Request.Context(), eventID, form, verr)
	if err != nil {
		utils.HandleServiceError(c, ec.log, err)
		return
	}
	utils.RenderHTML(c, http.StatusBadRequest, view, page)
}
