package repositories

import (
	"database/sql"
	"time"

	"lexportal/internal/database"
)

type SessionRepository struct {
	db *sql.DB
}

func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Ping verifies database connectivity.
func (r *SessionRepository) Ping() error {
	return r.db.Ping()
}

// Upsert inserts or replaces a session record.
func (r *SessionRepository) Upsert(rec *database.SessionRecord) error {
	query := `
        INSERT INTO sessions (id, user_id, cookies, created_at, updated_at, expires_at)
        VALUES (?, ?, ?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET
            user_id = excluded.user_id,
            cookies = excluded.cookies,
            updated_at = excluded.updated_at,
            expires_at = excluded.expires_at
    `
	_, err := r.db.Exec(query, rec.ID, rec.UserID, rec.Cookies,
		rec.CreatedAt, rec.UpdatedAt, rec.ExpiresAt)
	return err
}

// GetByID retrieves a session record by ID.
func (r *SessionRepository) GetByID(id string) (*database.SessionRecord, error) {
	query := `
        SELECT id, user_id, cookies, created_at, updated_at, expires_at
        FROM sessions
        WHERE id = ?
    `

	var rec database.SessionRecord
	err := r.db.QueryRow(query, id).Scan(
		&rec.ID, &rec.UserID, &rec.Cookies,
		&rec.CreatedAt, &rec.UpdatedAt, &rec.ExpiresAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &rec, nil
}

// Delete removes a session record.
func (r *SessionRepository) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM sessions WHERE id = ?`, id)
	return err
}

// DeleteExpired removes all sessions whose expiry is before now and returns
// how many were removed.
func (r *SessionRepository) DeleteExpired(now time.Time) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM sessions WHERE expires_at < ?`, now)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// ListByUser retrieves all active sessions for a user.
func (r *SessionRepository) ListByUser(userID string) ([]database.SessionRecord, error) {
	query := `
        SELECT id, user_id, cookies, created_at, updated_at, expires_at
        FROM sessions
        WHERE user_id = ? AND expires_at > CURRENT_TIMESTAMP
        ORDER BY created_at DESC
    `

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []database.SessionRecord
	for rows.Next() {
		var rec database.SessionRecord
		err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.Cookies,
			&rec.CreatedAt, &rec.UpdatedAt, &rec.ExpiresAt,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}
