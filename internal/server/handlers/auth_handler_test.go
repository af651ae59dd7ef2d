package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shipdesk/backoffice/internal/service/auth"
)

func newAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h, err := NewAuthHandler(auth.NewSessionManager("s3cret", time.Hour), nil)
	require.NoError(t, err)

	r := gin.New()
	r.POST("/login", h.Login)
	r.POST("/logout", h.Logout)
	r.GET("/private", h.RequireSession(), func(c *gin.Context) {
		session, ok := SessionFrom(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": session.Token})
	})
	return r
}

func login(t *testing.T, r http.Handler, password string) *httptest.ResponseRecorder {
	t.Helper()
	return doJSON(r, http.MethodPost, "/login", map[string]string{"password": password})
}

func withBearer(r http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	r := newAuthRouter(t)

	rec := login(t, r, "guess")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NotEmpty(t, decodeMessage(t, rec))

	rec = doJSON(r, http.MethodPost, "/login", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessionLifecycle(t *testing.T) {
	r := newAuthRouter(t)

	rec := login(t, r, "s3cret")
	require.Equal(t, http.StatusOK, rec.Code)

	var session auth.Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))
	require.NotEmpty(t, session.Token)

	rec = withBearer(r, http.MethodGet, "/private", session.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), session.Token)

	rec = withBearer(r, http.MethodPost, "/logout", session.Token)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = withBearer(r, http.MethodGet, "/private", session.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireSessionRejectsMissingOrMalformedHeader(t *testing.T) {
	r := newAuthRouter(t)

	assert.Equal(t, http.StatusUnauthorized, withBearer(r, http.MethodGet, "/private", "").Code)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Basic abc")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
