package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/GTDGit/gtd_catalog/internal/models"
)

// SessionStore holds one serialized user record per browser session.
// Entries carry no TTL: a session lives until logout.
type SessionStore struct {
	store Store
}

// NewSessionStore creates a new SessionStore.
func NewSessionStore(store Store) *SessionStore {
	return &SessionStore{store: store}
}

func (s *SessionStore) key(sessionID string) string {
	return fmt.Sprintf("session:%s:user", sessionID)
}

// Save persists the user record for the session.
func (s *SessionStore) Save(ctx context.Context, sessionID string, user *models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}
	return s.store.Set(ctx, s.key(sessionID), string(data), 0)
}

// Load returns the user record for the session, or ErrCacheMiss.
func (s *SessionStore) Load(ctx context.Context, sessionID string) (*models.User, error) {
	raw, err := s.store.Get(ctx, s.key(sessionID))
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	return &user, nil
}

// Delete removes the user record for the session.
func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.store.Delete(ctx, s.key(sessionID))
}
