package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenClaims carries the gateway session ID inside the signed cookie. The
// cookie holds no user data; everything else lives server-side.
type tokenClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// SignSessionToken signs a session ID into a compact token for the gateway
// cookie.
func SignSessionToken(secret, sessionID string, ttl time.Duration) (string, error) {
	now := time.Now()
	return jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}).SignedString([]byte(secret))
}

// ParseSessionToken validates a gateway cookie token and returns the session
// ID it carries.
func ParseSessionToken(secret, token string) (string, error) {
	t, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}
	if claims, ok := t.Claims.(*tokenClaims); ok && t.Valid && claims.SessionID != "" {
		return claims.SessionID, nil
	}
	return "", jwt.ErrTokenInvalidClaims
}
