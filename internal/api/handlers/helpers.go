package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"lexportal/internal/api/interfaces"
	"lexportal/internal/api/models"
	"lexportal/internal/apiclient"
	"lexportal/internal/database"
	"lexportal/internal/session"
)

func getClientIP(c *gin.Context) string {
	if forwarded := c.GetHeader("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	if realIP := c.GetHeader("X-Real-IP"); realIP != "" {
		return realIP
	}
	return c.ClientIP()
}

func createAuditLog(services interfaces.Services, action, userID, sessionID, details, clientIP string) {
	auditLog := &database.AuditLog{
		Action:    action,
		UserID:    userID,
		SessionID: sessionID,
		Details:   details,
		IPAddress: clientIP,
		CreatedAt: time.Now(),
	}

	if err := services.AuditLogRepository().InsertAuditLog(auditLog); err != nil {
		services.GetLogger().Error("Failed to create audit log: %v", err)
	}
}

// respondOK writes the standard success envelope.
func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, models.BaseResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().Unix(),
		RequestID: c.GetString("request_id"),
	})
}

// respondCreated is respondOK with a 201.
func respondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, models.BaseResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().Unix(),
		RequestID: c.GetString("request_id"),
	})
}

func respondErrorCode(c *gin.Context, status int, code, message string) {
	c.JSON(status, models.BaseResponse{
		Success: false,
		Error: &models.ErrorInfo{
			Code:    code,
			Message: message,
		},
		Timestamp: time.Now().Unix(),
		RequestID: c.GetString("request_id"),
	})
}

// respondBackendError maps an upstream failure onto the gateway response.
// Backend rejections keep their status and message verbatim; transport
// failures surface as 502.
func respondBackendError(c *gin.Context, err error) {
	if be, ok := apiclient.AsBackendError(err); ok {
		respondErrorCode(c, be.StatusCode, models.ErrCodeBackendError, be.Message)
		return
	}

	var authErr *session.AuthError
	if errors.As(err, &authErr) {
		respondErrorCode(c, http.StatusUnauthorized, models.ErrCodeInvalidCredentials, authErr.Error())
		return
	}

	var netErr *apiclient.NetworkError
	if errors.As(err, &netErr) {
		respondErrorCode(c, http.StatusBadGateway, models.ErrCodeBackendUnreachable, "Upstream service unavailable")
		return
	}

	respondErrorCode(c, http.StatusInternalServerError, models.ErrCodeInternalError, "Internal server error")
}

// sessionStore pulls the guard-attached session store out of the context.
// Routes behind the guard always have one; a miss is a wiring bug.
func sessionStore(c *gin.Context) (*session.Store, bool) {
	v, ok := c.Get("session_store")
	if !ok {
		respondErrorCode(c, http.StatusUnauthorized, models.ErrCodeInvalidSession, "No active session")
		return nil, false
	}
	store, ok := v.(*session.Store)
	if !ok || store == nil {
		respondErrorCode(c, http.StatusUnauthorized, models.ErrCodeInvalidSession, "No active session")
		return nil, false
	}
	return store, true
}
