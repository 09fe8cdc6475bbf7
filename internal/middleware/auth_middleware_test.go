package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GTDGit/gtd_catalog/internal/cache"
	"github.com/GTDGit/gtd_catalog/internal/service"
	"github.com/GTDGit/gtd_catalog/internal/utils"
)

func setupAuth(t *testing.T) (*service.AuthService, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	authSvc, err := service.NewAuthService(
		cache.NewSessionStore(cache.NewMemoryStore()),
		utils.NewTokenSigner("test-secret"),
		service.AuthOptions{},
	)
	require.NoError(t, err)

	mw := NewAuthMiddleware(authSvc)
	r := gin.New()
	r.Use(LoggingMiddleware())
	r.GET("/page", mw.Page(), func(c *gin.Context) {
		c.String(http.StatusOK, CurrentUser(c).Email)
	})
	r.GET("/api", mw.API(), func(c *gin.Context) {
		c.String(http.StatusOK, CurrentSessionID(c))
	})
	return authSvc, r
}

func loginToken(t *testing.T, authSvc *service.AuthService, sessionID string) string {
	t.Helper()
	user, err := authSvc.Login(context.Background(), sessionID, service.DemoEmail, service.DemoPassword)
	require.NoError(t, err)
	token, err := authSvc.IssueToken(sessionID, user)
	require.NoError(t, err)
	return token
}

func TestAuthMiddleware_PageRedirectsWithoutSession(t *testing.T) {
	_, r := setupAuth(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/page", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestAuthMiddleware_APIRejectsWithoutSession(t *testing.T) {
	_, r := setupAuth(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), utils.CodeUnauthorized)
}

func TestAuthMiddleware_CookieSession(t *testing.T) {
	authSvc, r := setupAuth(t)
	token := loginToken(t, authSvc, "s1")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/page", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, service.DemoEmail, w.Body.String())
}

func TestAuthMiddleware_BearerSession(t *testing.T) {
	authSvc, r := setupAuth(t)
	token := loginToken(t, authSvc, "s2")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "s2", w.Body.String())
}

func TestAuthMiddleware_LoggedOutTokenRejected(t *testing.T) {
	authSvc, r := setupAuth(t)
	token := loginToken(t, authSvc, "s3")
	require.NoError(t, authSvc.Logout(context.Background(), "s3"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware("Dash.Example.com"))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "http://localhost:8080")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:8080", w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://dash.example.com:443")
	r.ServeHTTP(w, req)
	assert.Equal(t, "https://dash.example.com:443", w.Header().Get("Access-Control-Allow-Origin"))
}
