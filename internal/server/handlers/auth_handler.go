package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shipdesk/backoffice/internal/service/auth"
)

const sessionContextKey = "session"

// Sessions issues and checks admin session tokens.
type Sessions interface {
	Login(password string) (auth.Session, error)
	Validate(token string) (auth.Session, error)
	Logout(token string)
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// AuthHandler exchanges the admin password for session tokens.
type AuthHandler struct {
	sessions Sessions
	logger   *zap.Logger
}

// NewAuthHandler constructs the auth handler.
func NewAuthHandler(sessions Sessions, logger *zap.Logger) (*AuthHandler, error) {
	if sessions == nil {
		return nil, errors.New("session manager is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{sessions: sessions, logger: logger}, nil
}

// Login answers with a new session when the password matches.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, h.logger, err)
		return
	}

	session, err := h.sessions.Login(req.Password)
	if err != nil {
		h.logger.Warn("admin login rejected", zap.String("client_ip", c.ClientIP()))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "密码错误"})
		return
	}

	h.logger.Info("admin logged in", zap.String("client_ip", c.ClientIP()), zap.Time("expires_at", session.ExpiresAt))
	c.JSON(http.StatusOK, session)
}

// Logout revokes the bearer token of the request, if any.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token := bearerToken(c); token != "" {
		h.sessions.Logout(token)
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "已退出登录"})
}

// RequireSession rejects requests without a live bearer session and stores the session
// in the gin context under "session".
func (h *AuthHandler) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := h.sessions.Validate(bearerToken(c))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Message: "需要管理员登录"})
			return
		}
		c.Set(sessionContextKey, session)
		c.Next()
	}
}

// SessionFrom returns the session stored by RequireSession.
func SessionFrom(c *gin.Context) (auth.Session, bool) {
	value, ok := c.Get(sessionContextKey)
	if !ok {
		return auth.Session{}, false
	}
	session, ok := value.(auth.Session)
	return session, ok
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
