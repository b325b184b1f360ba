package database

import "time"

// SessionRecord is the persisted form of a gateway session. The cookie
// snapshot lets a browser session survive a gateway restart; the cached user
// ID is for audit only and is never trusted when a session is rebuilt.
type SessionRecord struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Cookies   []byte    `db:"cookies" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
}

// AuditLog represents an audit log entry for security-relevant actions
// (logins, logouts, invitation acceptance, guard denials).
type AuditLog struct {
	ID        int64     `db:"id" json:"id"`
	Action    string    `db:"action" json:"action"`
	UserID    string    `db:"user_id" json:"user_id"`
	SessionID string    `db:"session_id" json:"session_id"`
	Details   string    `db:"details" json:"details"`
	IPAddress string    `db:"ip_address" json:"ip_address"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
