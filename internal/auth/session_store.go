package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"hotelstay/internal/cache"
	"hotelstay/internal/errors"
	"hotelstay/internal/model"
)

// SessionKeyPrefix is the key family session records are stored under.
const SessionKeyPrefix = "hotelapp_user:"

// SessionStoreInterface defines the interface for session storage operations.
type SessionStoreInterface interface {
	Put(ctx context.Context, sessionID string, user *model.User) error
	Get(ctx context.Context, sessionID string) (*model.User, error)
	Delete(ctx context.Context, sessionID string) error
}

// SessionStore keeps one JSON user record per session.
type SessionStore struct {
	store cache.Store
	ttl   time.Duration
}

// Ensure SessionStore implements SessionStoreInterface
var _ SessionStoreInterface = (*SessionStore)(nil)

// NewSessionStore creates a session store whose records expire after ttl.
func NewSessionStore(store cache.Store, ttl time.Duration) *SessionStore {
	return &SessionStore{store: store, ttl: ttl}
}

// SessionKey returns the storage key of a session.
func SessionKey(sessionID string) string {
	return SessionKeyPrefix + sessionID
}

// Put writes the record, replacing any previous one for the session.
func (s *SessionStore) Put(ctx context.Context, sessionID string, user *model.User) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return s.store.Set(ctx, SessionKey(sessionID), payload, s.ttl)
}

// Get returns the session record or ErrNoSession.
func (s *SessionStore) Get(ctx context.Context, sessionID string) (*model.User, error) {
	if sessionID == "" {
		return nil, errors.ErrNoSession
	}
	data, err := s.store.Get(ctx, SessionKey(sessionID))
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if data == nil {
		return nil, errors.ErrNoSession
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &user, nil
}

// Delete removes a session. Deleting an absent session is not an error.
func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.store.Delete(ctx, SessionKey(sessionID))
}
