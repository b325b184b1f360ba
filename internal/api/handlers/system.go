package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"lexportal/internal/api/interfaces"
	"lexportal/internal/api/models"
)

const version = "1.0.0"

var startTime = time.Now()

// HealthCheck provides a simple health check endpoint
func HealthCheck(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now().Unix(),
			Version:   version,
		})
	}
}

// GetSystemStatus returns gateway status: database, upstream reachability
// and active session count.
func GetSystemStatus(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := models.SystemStatusResponse{
			ServerStatus:   "running",
			DatabaseStatus: getDatabaseStatus(services),
			BackendStatus:  getBackendStatus(c, services),
			ActiveSessions: services.SessionManager().ActiveCount(),
			Uptime:         int64(time.Since(startTime).Seconds()),
			Version:        version,
		}

		respondOK(c, status)
	}
}

func getDatabaseStatus(services interfaces.Services) string {
	repo := services.SessionRepository()
	if repo == nil {
		return "unavailable"
	}
	if err := repo.Ping(); err != nil {
		return "disconnected"
	}
	return "connected"
}

func getBackendStatus(c *gin.Context, services interfaces.Services) string {
	if err := services.APIClient().Ping(c.Request.Context()); err != nil {
		return "unreachable"
	}
	return "reachable"
}
