package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/gtd_catalog/internal/models"
	"github.com/GTDGit/gtd_catalog/internal/service"
	"github.com/GTDGit/gtd_catalog/internal/utils"
)

// SessionCookie is the cookie holding the signed session token.
const SessionCookie = "session"

// Context keys set by AuthMiddleware.
const (
	ContextUser      = "user"
	ContextSessionID = "session_id"
)

// AuthMiddleware gates routes on a live mock-auth session.
type AuthMiddleware struct {
	authService *service.AuthService
}

// NewAuthMiddleware constructs a new AuthMiddleware.
func NewAuthMiddleware(authService *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// Page guards HTML routes: without a session the browser is sent to /login.
func (m *AuthMiddleware) Page() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.authenticate(c) {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// API guards JSON routes with a 401 envelope.
func (m *AuthMiddleware) API() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.authenticate(c) {
			utils.Error(c, http.StatusUnauthorized, utils.CodeUnauthorized, "Login required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// Optional resolves the session when present but never aborts.
func (m *AuthMiddleware) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		m.authenticate(c)
		c.Next()
	}
}

func (m *AuthMiddleware) authenticate(c *gin.Context) bool {
	token := TokenFromRequest(c)
	if token == "" {
		return false
	}

	sessionID, user, err := m.authService.Authenticate(c.Request.Context(), token)
	if err != nil {
		if !errors.Is(err, service.ErrNoSession) {
			log.Error().Err(err).Str("request_id", utils.GetRequestID(c)).Msg("Session lookup failed")
		}
		return false
	}

	c.Set(ContextSessionID, sessionID)
	c.Set(ContextUser, user)
	return true
}

// TokenFromRequest reads the session token from the Authorization header or,
// failing that, the session cookie.
func TokenFromRequest(c *gin.Context) string {
	if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	token, err := c.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return token
}

// CurrentUser returns the user resolved by AuthMiddleware, or nil.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(ContextUser)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

// CurrentSessionID returns the session id resolved by AuthMiddleware.
func CurrentSessionID(c *gin.Context) string {
	return c.GetString(ContextSessionID)
}
