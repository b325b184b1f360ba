package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"lexportal/internal/api/interfaces"
	"lexportal/internal/api/models"
	"lexportal/internal/apiclient"
)

// ListCalendarEvents returns events in an optional RFC3339 time window
// taken from the from/to query parameters.
func ListCalendarEvents(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := sessionStore(c)
		if !ok {
			return
		}

		from, err := parseTimeQuery(c.Query("from"))
		if err != nil {
			respondErrorCode(c, http.StatusBadRequest, models.ErrCodeInvalidRequest, "Invalid 'from' timestamp")
			return
		}
		to, err := parseTimeQuery(c.Query("to"))
		if err != nil {
			respondErrorCode(c, http.StatusBadRequest, models.ErrCodeInvalidRequest, "Invalid 'to' timestamp")
			return
		}

		events, err := store.API().ListCalendarEvents(c.Request.Context(), from, to)
		if err != nil {
			respondBackendError(c, err)
			return
		}

		respondOK(c, events)
	}
}

// CreateCalendarEvent schedules an event.
func CreateCalendarEvent(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CalendarEventRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondErrorCode(c, http.StatusBadRequest, models.ErrCodeInvalidRequest, "Invalid request format: "+err.Error())
			return
		}

		store, ok := sessionStore(c)
		if !ok {
			return
		}

		event, err := store.API().CreateCalendarEvent(c.Request.Context(), apiclient.CalendarEventInput{
			Title:    req.Title,
			StartsAt: req.StartsAt,
			EndsAt:   req.EndsAt,
			CaseID:   req.CaseID,
			Location: req.Location,
		})
		if err != nil {
			respondBackendError(c, err)
			return
		}

		respondCreated(c, event)
	}
}

// UpdateCalendarEvent reschedules or edits an event.
func UpdateCalendarEvent(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CalendarEventRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondErrorCode(c, http.StatusBadRequest, models.ErrCodeInvalidRequest, "Invalid request format: "+err.Error())
			return
		}

		store, ok := sessionStore(c)
		if !ok {
			return
		}

		event, err := store.API().UpdateCalendarEvent(c.Request.Context(), c.Param("id"), apiclient.CalendarEventInput{
			Title:    req.Title,
			StartsAt: req.StartsAt,
			EndsAt:   req.EndsAt,
			CaseID:   req.CaseID,
			Location: req.Location,
		})
		if err != nil {
			respondBackendError(c, err)
			return
		}

		respondOK(c, event)
	}
}

// DeleteCalendarEvent removes an event.
func DeleteCalendarEvent(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := sessionStore(c)
		if !ok {
			return
		}

		if err := store.API().DeleteCalendarEvent(c.Request.Context(), c.Param("id")); err != nil {
			respondBackendError(c, err)
			return
		}

		respondOK(c, nil)
	}
}

func parseTimeQuery(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, v)
}
