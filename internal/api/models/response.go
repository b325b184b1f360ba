package models

import "lexportal/internal/apiclient"

// BaseResponse represents the base API response structure
type BaseResponse struct {
	Success   bool        `json:"success" example:"true"`
	Message   string      `json:"message,omitempty" example:"Operation completed successfully"`
	Data      interface{} `json:"data,omitempty"`
	Error     *ErrorInfo  `json:"error,omitempty"`
	Timestamp int64       `json:"timestamp" example:"1640995200"`
	RequestID string      `json:"request_id,omitempty" example:"req_123456"`
}

// ErrorInfo represents error information
type ErrorInfo struct {
	Code    string `json:"code" example:"INVALID_REQUEST"`
	Message string `json:"message" example:"Invalid request parameters"`
	Details string `json:"details,omitempty"`
}

// SessionResponse mirrors the session store state for the web client.
type SessionResponse struct {
	Authenticated bool            `json:"authenticated"`
	User          *apiclient.User `json:"user,omitempty"`
}

// LoginResponse carries the authenticated user plus the role-dependent
// landing route: clients go to the portal home, all other roles to the
// dashboard.
type LoginResponse struct {
	User     *apiclient.User `json:"user"`
	Redirect string          `json:"redirect"`
}

// InvitationResponse is the invitation page state for the web client.
type InvitationResponse struct {
	State      string `json:"state"`
	Email      string `json:"email,omitempty"`
	CaseTitle  string `json:"case_title,omitempty"`
	ClientName string `json:"client_name,omitempty"`
	Error      string `json:"error,omitempty"`
}

// HealthResponse is the health check payload.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp int64  `json:"timestamp"`
	Version   string `json:"version"`
}

// SystemStatusResponse represents gateway status
type SystemStatusResponse struct {
	ServerStatus   string `json:"server_status" example:"running"`
	DatabaseStatus string `json:"database_status" example:"connected"`
	BackendStatus  string `json:"backend_status" example:"reachable"`
	ActiveSessions int    `json:"active_sessions" example:"12"`
	Uptime         int64  `json:"uptime" example:"86400"`
	Version        string `json:"version" example:"1.0.0"`
}
