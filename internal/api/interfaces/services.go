package interfaces

import (
	"lexportal/internal/apiclient"
	"lexportal/internal/database/repositories"
	"lexportal/internal/session"
	"lexportal/pkg/config"
	"lexportal/pkg/logger"
)

// Services defines the interface for API services
type Services interface {
	GetLogger() *logger.Logger
	GetConfig() *config.Config
	APIClient() *apiclient.Client
	SessionManager() *session.Manager
	SessionRepository() *repositories.SessionRepository
	AuditLogRepository() *repositories.AuditLogRepository
}
