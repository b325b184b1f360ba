package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"lexportal/internal/api/interfaces"
	"lexportal/internal/api/models"
)

// GetAuditLogs retrieves gateway audit logs with filtering and pagination.
// Owner-only.
func GetAuditLogs(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := 50
		offset := 0
		action := c.Query("action")
		userID := c.Query("user_id")
		startTimeStr := c.Query("start_time")
		endTimeStr := c.Query("end_time")

		if limitStr := c.Query("limit"); limitStr != "" {
			if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 1000 {
				limit = l
			}
		}
		if offsetStr := c.Query("offset"); offsetStr != "" {
			if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
				offset = o
			}
		}

		var startTime, endTime *time.Time
		if startTimeStr != "" {
			if t, err := time.Parse(time.RFC3339, startTimeStr); err == nil {
				startTime = &t
			}
		}
		if endTimeStr != "" {
			if t, err := time.Parse(time.RFC3339, endTimeStr); err == nil {
				endTime = &t
			}
		}

		logs, err := services.AuditLogRepository().GetAuditLogs(limit, offset, action, userID, startTime, endTime)
		if err != nil {
			services.GetLogger().Error("Error getting audit logs: %v", err)
			respondErrorCode(c, http.StatusInternalServerError, models.ErrCodeInternalError, "Failed to retrieve audit logs")
			return
		}

		respondOK(c, map[string]interface{}{
			"logs":   logs,
			"limit":  limit,
			"offset": offset,
			"total":  len(logs),
		})
	}
}
