package api

import (
	"database/sql"

	"lexportal/internal/apiclient"
	"lexportal/internal/database/repositories"
	"lexportal/internal/session"
	"lexportal/pkg/config"
	"lexportal/pkg/logger"
)

// Services contains all the dependencies for API handlers
type Services struct {
	// Core dependencies
	DB       *sql.DB
	Client   *apiclient.Client
	Sessions *session.Manager
	Logger   *logger.Logger
	Config   *config.Config

	// Repositories
	sessionRepository  *repositories.SessionRepository
	auditLogRepository *repositories.AuditLogRepository
}

// NewServices creates a new services container
func NewServices(
	db *sql.DB,
	client *apiclient.Client,
	sessions *session.Manager,
	logger *logger.Logger,
	config *config.Config,
) *Services {
	services := &Services{
		DB:       db,
		Client:   client,
		Sessions: sessions,
		Logger:   logger,
		Config:   config,
	}

	services.sessionRepository = repositories.NewSessionRepository(db)
	services.auditLogRepository = repositories.NewAuditLogRepository(db)

	return services
}

// Interface implementation methods
func (s *Services) GetLogger() *logger.Logger {
	return s.Logger
}

func (s *Services) GetConfig() *config.Config {
	return s.Config
}

func (s *Services) APIClient() *apiclient.Client {
	return s.Client
}

func (s *Services) SessionManager() *session.Manager {
	return s.Sessions
}

func (s *Services) SessionRepository() *repositories.SessionRepository {
	return s.sessionRepository
}

func (s *Services) AuditLogRepository() *repositories.AuditLogRepository {
	return s.auditLogRepository
}

// IsHealthy checks if all critical services are healthy
func (s *Services) IsHealthy() bool {
	if err := s.DB.Ping(); err != nil {
		s.Logger.Error("Database health check failed: %v", err)
		return false
	}
	return true
}

// GetStats returns current service statistics
func (s *Services) GetStats() map[string]interface{} {
	return map[string]interface{}{
		"sessions": map[string]interface{}{
			"active": s.Sessions.ActiveCount(),
		},
		"backend": map[string]interface{}{
			"base_url": s.Client.BaseURL(),
		},
	}
}
