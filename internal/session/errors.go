package session

import "errors"

// AuthError signals rejected credentials or a lost session. The message is
// the backend's structured error when one was present, otherwise a generic
// localized fallback.
type AuthError struct {
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "authentication failed"
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// ErrSessionNotFound is returned when a gateway cookie does not resolve to a
// live or persisted session.
var ErrSessionNotFound = errors.New("session not found")
