package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/GTDGit/gtd_catalog/internal/cache"
	"github.com/GTDGit/gtd_catalog/internal/models"
	"github.com/GTDGit/gtd_catalog/internal/utils"
)

// Demo credentials accepted by the mock auth store.
const (
	DemoEmail    = "admin@example.com"
	DemoPassword = "admin123"
)

var (
	// ErrInvalidCredentials is returned when the email/password pair does not match.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrNoSession is returned when no user record is stored for the session.
	ErrNoSession = errors.New("no session")
)

// DemoUser returns the record persisted on a successful login.
func DemoUser() *models.User {
	return &models.User{
		ID:    "1",
		Name:  "Admin User",
		Email: DemoEmail,
		Role:  models.RoleAdmin,
	}
}

// AuthOptions configures the artificial latency of the mock store.
type AuthOptions struct {
	LoginDelay  time.Duration
	LogoutDelay time.Duration
}

// AuthService is the mock auth store: one hard-coded credential pair, one
// user record per session.
type AuthService struct {
	sessions     *cache.SessionStore
	signer       *utils.TokenSigner
	passwordHash []byte
	opts         AuthOptions
}

// NewAuthService constructs an AuthService.
func NewAuthService(sessions *cache.SessionStore, signer *utils.TokenSigner, opts AuthOptions) (*AuthService, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.MinCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash demo password: %w", err)
	}
	return &AuthService{
		sessions:     sessions,
		signer:       signer,
		passwordHash: hash,
		opts:         opts,
	}, nil
}

// NewSessionID returns a fresh session identifier.
func NewSessionID() string {
	return uuid.NewString()
}

// Login checks the credentials and, on success, persists the demo user under
// sessionID. On failure nothing is persisted.
func (s *AuthService) Login(ctx context.Context, sessionID, email, password string) (*models.User, error) {
	log.Debug().Str("email", email).Msg("Login attempt")

	if err := sleep(ctx, s.opts.LoginDelay); err != nil {
		return nil, err
	}

	if email != DemoEmail || bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)) != nil {
		log.Warn().Str("email", email).Msg("Login rejected")
		return nil, ErrInvalidCredentials
	}

	user := DemoUser()
	if err := s.sessions.Save(ctx, sessionID, user); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	log.Info().Str("email", email).Msg("Login successful")
	return user, nil
}

// Logout clears the stored record for sessionID. It succeeds even when no
// record exists.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	_ = sleep(ctx, s.opts.LogoutDelay)
	if err := s.sessions.Delete(context.WithoutCancel(ctx), sessionID); err != nil {
		log.Error().Err(err).Msg("Failed to clear session")
	}
	return nil
}

// RestoreSession returns the user stored for sessionID, or ErrNoSession.
func (s *AuthService) RestoreSession(ctx context.Context, sessionID string) (*models.User, error) {
	if sessionID == "" {
		return nil, ErrNoSession
	}
	user, err := s.sessions.Load(ctx, sessionID)
	if errors.Is(err, cache.ErrCacheMiss) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// IssueToken signs the browser-held token for a logged-in session.
func (s *AuthService) IssueToken(sessionID string, user *models.User) (string, error) {
	return s.signer.GenerateJWT(sessionID, user.ID, user.Email)
}

// Authenticate resolves a token to its session id and stored user.
func (s *AuthService) Authenticate(ctx context.Context, token string) (string, *models.User, error) {
	claims, err := s.signer.ValidateJWT(token)
	if err != nil {
		return "", nil, ErrNoSession
	}
	user, err := s.RestoreSession(ctx, claims.SessionID)
	if err != nil {
		return "", nil, err
	}
	return claims.SessionID, user, nil
}

// sleep waits d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
