package auth

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/truest-construction/site-backend/errs"
)

const (
	// SessionCookieName is the cookie that carries the signed admin session.
	SessionCookieName = "site_session"
	// StateCookieName carries the signed sign-in state between /auth/signin and /auth/callback.
	StateCookieName = "site_oauth_state"

	DefaultSessionTTL = 24 * time.Hour
	stateTTL          = 10 * time.Minute
	// DefaultCallbackURL is where a sign-in lands when no usable callback was requested.
	DefaultCallbackURL = "/admin"

	sessionIssuer  = "site-backend"
	sessionSubject = "admin-session"
	stateSubject   = "oauth-state"
)

// SessionClaims is the payload of a session token.
type SessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// StateClaims is the payload of the sign-in state token.
type StateClaims struct {
	CallbackURL string `json:"callbackUrl"`
	jwt.RegisteredClaims
}

// SessionManager signs and verifies HS256 session and state tokens.
type SessionManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSessionManager(secret string, ttl time.Duration) (*SessionManager, error) {
	if len(secret) < 32 {
		return nil, errors.New("session secret must be at least 32 bytes")
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionManager{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// TTL is how long an issued session stays valid.
func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

// Issue signs a session for email and returns the token with its expiry.
func (m *SessionManager) Issue(email string) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(m.ttl)
	claims := SessionClaims{
		Email: normalizeEmail(email),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    sessionIssuer,
			Subject:   sessionSubject,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session: %w", err)
	}
	return token, expiresAt, nil
}

// Validate verifies a session token and returns the email it was issued for.
func (m *SessionManager) Validate(tokenString string) (string, error) {
	if tokenString == "" {
		return "", errs.NewMissingTokenError()
	}

	var claims SessionClaims
	if err := m.parse(tokenString, &claims, sessionSubject); err != nil {
		return "", err
	}
	if claims.Email == "" {
		return "", errs.NewInvalidTokenError(errors.New("session has no email"))
	}
	return claims.Email, nil
}

// IssueState signs the post-sign-in destination together with a random nonce.
func (m *SessionManager) IssueState(callbackURL string) (string, error) {
	now := m.now()
	claims := StateClaims{
		CallbackURL: SafeCallbackURL(callbackURL),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    sessionIssuer,
			Subject:   stateSubject,
			ExpiresAt: jwt.NewNumericDate(now.Add(stateTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign state: %w", err)
	}
	return token, nil
}

// ValidateState verifies a state token and returns its callback URL.
func (m *SessionManager) ValidateState(tokenString string) (string, error) {
	var claims StateClaims
	if err := m.parse(tokenString, &claims, stateSubject); err != nil {
		return "", fmt.Errorf("%w: %w", errs.ErrInvalidState, err)
	}
	return SafeCallbackURL(claims.CallbackURL), nil
}

func (m *SessionManager) parse(tokenString string, claims jwt.Claims, subject string) error {
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sessionIssuer),
		jwt.WithSubject(subject),
		jwt.WithTimeFunc(m.now),
	)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, jwt.ErrTokenExpired):
		return errs.NewTokenExpiredError()
	default:
		return errs.NewInvalidTokenError(err)
	}
}

// SafeCallbackURL keeps only same-site relative paths, falling back to DefaultCallbackURL.
func SafeCallbackURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, "/\\") {
		return DefaultCallbackURL
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme != "" || parsed.Host != "" {
		return DefaultCallbackURL
	}
	return parsed.RequestURI()
}
