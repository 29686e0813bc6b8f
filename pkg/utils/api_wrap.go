package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ErrorPage is the data handed to the error template.
type ErrorPage struct {
	Code    int
	Title   string
	Message string
	TraceID string
}

func traceID(c *gin.Context) string {
	if v, ok := c.Get("trace_id"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// RenderHTML renders a named template with a status code.
func RenderHTML(c *gin.Context, code int, name string, data interface{}) {
	c.HTML(code, name, data)
}

// RespondError renders the shared error page.
func RespondError(c *gin.Context, code int, message string) {
	c.HTML(code, "error.html", ErrorPage{
		Code:    code,
		Title:   http.StatusText(code),
		Message: message,
		TraceID: traceID(c),
	})
}

// RedirectSeeOther sends the browser to location after a successful mutation.
func RedirectSeeOther(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
}

func HandleServiceError(c *gin.Context, logger zerolog.Logger, err error) {
	switch {
	case errors.Is(err, ErrEventNotFound), errors.Is(err, ErrInvalidID):
		RespondError(c, http.StatusNotFound, "Event not found")
	case errors.Is(err, ErrCategoryNotFound):
		RespondError(c, http.StatusNotFound, "Category not found")
	case errors.Is(err, ErrDatabaseError):
		logger.Error().Err(err).Str("trace_id", traceID(c)).Msg("database error")
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		logger.Error().Err(err).Str("trace_id", traceID(c)).Msg("unhandled error")
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
