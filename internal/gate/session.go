package gate

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"vitrina/internal/sentinel"
)

// SessionCookie is the cookie that ties a browser tab to its cache entry.
const SessionCookie = "vitrina_session"

// sessionClaims binds a signed cookie to one session-cache key.
type sessionClaims struct {
	jwt.RegisteredClaims
}

// SessionTokens mints and validates the signed session cookie. The cookie only
// names the cache entry; the authorization verdict itself lives server-side.
type SessionTokens struct {
	signingKey []byte
	ttl        time.Duration
}

// NewSessionTokens creates a token codec with the given signing key and TTL.
func NewSessionTokens(signingKey string, ttl time.Duration) *SessionTokens {
	return &SessionTokens{signingKey: []byte(signingKey), ttl: ttl}
}

// Mint creates a fresh session id and its signed token.
func (t *SessionTokens) Mint() (sessionID string, token string, err error) {
	sessionID = uuid.New().String()
	now := time.Now()

	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.signingKey)
	if err != nil {
		return "", "", fmt.Errorf("sign session token: %w", err)
	}
	return sessionID, token, nil
}

// SessionID extracts the session id from a signed token. Invalid or expired
// tokens count as a cache miss, not an error the gate would surface.
func (t *SessionTokens) SessionID(token string) (string, error) {
	if token == "" {
		return "", sentinel.ErrNotFound
	}

	parsed, err := jwt.ParseWithClaims(token, &sessionClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return t.signingKey, nil
	})
	if err != nil || !parsed.Valid {
		return "", sentinel.ErrNotFound
	}

	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || claims.Subject == "" {
		return "", sentinel.ErrNotFound
	}
	return claims.Subject, nil
}

// TTL returns the token lifetime, used for the cookie Max-Age.
func (t *SessionTokens) TTL() time.Duration {
	return t.ttl
}
