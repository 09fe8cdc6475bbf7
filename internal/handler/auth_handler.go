package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/gtd_catalog/internal/middleware"
	"github.com/GTDGit/gtd_catalog/internal/models"
	"github.com/GTDGit/gtd_catalog/internal/service"
	"github.com/GTDGit/gtd_catalog/internal/utils"
)

// AuthHandler serves the JSON session API.
type AuthHandler struct {
	authService  *service.AuthService
	cookieSecure bool
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(authService *service.AuthService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{authService: authService, cookieSecure: cookieSecure}
}

// Login handles POST /v1/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, utils.CodeInvalidRequest, "Invalid request body")
		return
	}

	user, token, err := startSession(c, h.authService, h.cookieSecure, req.Email, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		utils.Error(c, 401, utils.CodeInvalidCredentials, "Invalid email or password")
		return
	}
	if err != nil {
		apiError(c, err)
		return
	}

	utils.Success(c, 200, "Login successful", gin.H{
		"token": token,
		"user":  user,
	})
}

// Logout handles POST /v1/auth/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	endSession(c, h.authService, h.cookieSecure)
	utils.Success(c, 200, "Logout successful", nil)
}

// Me handles GET /v1/auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	utils.Success(c, 200, "Session active", middleware.CurrentUser(c))
}

// startSession logs in under a fresh session id and sets the session cookie.
// On success the session the browser already held is cleared, so one browser
// owns at most one stored record.
func startSession(c *gin.Context, authService *service.AuthService, secure bool, email, password string) (*models.User, string, error) {
	sessionID := service.NewSessionID()
	user, err := authService.Login(c.Request.Context(), sessionID, email, password)
	if err != nil {
		return nil, "", err
	}
	if previous := middleware.CurrentSessionID(c); previous != "" && previous != sessionID {
		_ = authService.Logout(c.Request.Context(), previous)
	}
	token, err := authService.IssueToken(sessionID, user)
	if err != nil {
		return nil, "", err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, 0, "/", "", secure, true)
	return user, token, nil
}

// endSession clears the stored session, if any, and expires the cookie.
func endSession(c *gin.Context, authService *service.AuthService, secure bool) {
	if sessionID := middleware.CurrentSessionID(c); sessionID != "" {
		_ = authService.Logout(c.Request.Context(), sessionID)
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", secure, true)
}
