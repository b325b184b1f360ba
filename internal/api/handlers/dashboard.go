package handlers

import (
	"github.com/gin-gonic/gin"

	"lexportal/internal/api/interfaces"
)

// GetDashboardSummary returns the headline numbers for the firm dashboard.
func GetDashboardSummary(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := sessionStore(c)
		if !ok {
			return
		}

		summary, err := store.API().GetDashboardSummary(c.Request.Context())
		if err != nil {
			respondBackendError(c, err)
			return
		}

		respondOK(c, summary)
	}
}

// GetDashboardUpcoming returns upcoming calendar events for the dashboard.
func GetDashboardUpcoming(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := sessionStore(c)
		if !ok {
			return
		}

		events, err := store.API().GetDashboardUpcoming(c.Request.Context())
		if err != nil {
			respondBackendError(c, err)
			return
		}

		respondOK(c, events)
	}
}

// GetDashboardActivity returns the recent activity feed.
func GetDashboardActivity(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := sessionStore(c)
		if !ok {
			return
		}

		activity, err := store.API().GetDashboardActivity(c.Request.Context())
		if err != nil {
			respondBackendError(c, err)
			return
		}

		respondOK(c, activity)
	}
}
