package auth

import (
	"crypto/subtle"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidCredentials is returned when the admin password does not match.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrInvalidSession is returned for unknown, revoked or expired tokens.
var ErrInvalidSession = errors.New("invalid or expired session")

// Session is an authenticated admin session.
type Session struct {
	Token     string    `json:"token"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// SessionManager issues and checks admin session tokens.
type SessionManager struct {
	password string
	ttl      time.Duration
	now      func() time.Time

	sessions map[string]Session
	mu       sync.RWMutex
}

// NewSessionManager creates a session manager guarding the given admin password.
func NewSessionManager(password string, ttl time.Duration) *SessionManager {
	return &SessionManager{
		password: password,
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]Session),
	}
}

// Login exchanges the admin password for a new session.
func (sm *SessionManager) Login(password string) (Session, error) {
	if sm.password == "" || subtle.ConstantTimeCompare([]byte(password), []byte(sm.password)) != 1 {
		return Session{}, ErrInvalidCredentials
	}

	now := sm.now()
	session := Session{
		Token:     uuid.NewString(),
		IssuedAt:  now,
		ExpiresAt: now.Add(sm.ttl),
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.pruneLocked(now)
	sm.sessions[session.Token] = session
	return session, nil
}

// Validate returns the live session for token.
func (sm *SessionManager) Validate(token string) (Session, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	session, exists := sm.sessions[token]
	if !exists || !sm.now().Before(session.ExpiresAt) {
		return Session{}, ErrInvalidSession
	}
	return session, nil
}

// Logout revokes token.
func (sm *SessionManager) Logout(token string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	delete(sm.sessions, token)
}

func (sm *SessionManager) pruneLocked(now time.Time) {
	for token, session := range sm.sessions {
		if !now.Before(session.ExpiresAt) {
			delete(sm.sessions, token)
		}
	}
}
