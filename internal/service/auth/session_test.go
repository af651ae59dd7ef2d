package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginAndValidate(t *testing.T) {
	sm := NewSessionManager("s3cret", time.Hour)
	now := time.Date(2025, time.March, 1, 9, 0, 0, 0, time.UTC)
	sm.now = func() time.Time { return now }

	_, err := sm.Login("wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	session, err := sm.Login("s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, now.Add(time.Hour), session.ExpiresAt)

	got, err := sm.Validate(session.Token)
	require.NoError(t, err)
	assert.Equal(t, session, got)

	now = now.Add(time.Hour)
	_, err = sm.Validate(session.Token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestLogoutRevokes(t *testing.T) {
	sm := NewSessionManager("s3cret", time.Hour)

	session, err := sm.Login("s3cret")
	require.NoError(t, err)

	sm.Logout(session.Token)
	_, err = sm.Validate(session.Token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestEmptyPasswordNeverAuthenticates(t *testing.T) {
	sm := NewSessionManager("", time.Hour)

	_, err := sm.Login("")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
