package session

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"lineagehub/internal/models"
)

// StorageKey is the durable-store key the serialized auth record lives under
const StorageKey = "auth-storage"

// Store is the durable backing for the auth record. Satisfied by
// *storage.Store.
type Store interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Delete(key string) error
}

type persistedAuth struct {
	User        *models.User `json:"user"`
	AccessToken string       `json:"accessToken"`
}

// Session holds the current user and access token. It is the single writer of
// auth state: every other component reads it and never mutates it directly.
type Session struct {
	mu    sync.RWMutex
	store Store
	user  *models.User
	token string
}

// New creates an empty, unauthenticated session backed by store
func New(store Store) *Session {
	return &Session{store: store}
}

// Restore creates a session and loads any auth record persisted by a previous
// run. A missing or unreadable record just yields an unauthenticated session.
func Restore(store Store) (*Session, error) {
	s := New(store)
	raw, err := store.Get(StorageKey)
	if err != nil {
		return nil, fmt.Errorf("failed to restore session: %w", err)
	}
	if raw == nil {
		return s, nil
	}
	var rec persistedAuth
	if err := json.Unmarshal(raw, &rec); err != nil {
		// Corrupt record: drop it rather than failing startup
		_ = store.Delete(StorageKey)
		return s, nil
	}
	s.user = rec.User
	s.token = rec.AccessToken
	return s, nil
}

// SetAuth stores the authenticated user and token, persisting them durably
func (s *Session) SetAuth(user models.User, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := persistedAuth{User: &user, AccessToken: token}
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to serialize auth record: %w", err)
	}
	if err := s.store.Put(StorageKey, raw); err != nil {
		return err
	}
	s.user = &user
	s.token = token
	return nil
}

// ClearAuth removes the persisted auth record and resets in-memory state
func (s *Session) ClearAuth() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Delete(StorageKey); err != nil {
		return err
	}
	s.user = nil
	s.token = ""
	return nil
}

// UpdateUser refreshes the cached user profile without touching the token,
// e.g. after a role change picked up from GET /auth/me
func (s *Session) UpdateUser(user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		return fmt.Errorf("cannot update user on an unauthenticated session")
	}
	rec := persistedAuth{User: &user, AccessToken: s.token}
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to serialize auth record: %w", err)
	}
	if err := s.store.Put(StorageKey, raw); err != nil {
		return err
	}
	s.user = &user
	return nil
}

// User returns the current user; ok is false when unauthenticated
func (s *Session) User() (user models.User, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

// Token returns the current access token, empty when unauthenticated
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// IsAuthenticated reports whether both a user and a non-expired token are
// present. Views gated on this must fall back to the login flow the moment it
// turns false.
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil || s.token == "" {
		return false
	}
	return !tokenExpired(s.token)
}

// tokenExpired inspects the JWT exp claim without verifying the signature;
// the client holds no signing key and the server remains authoritative. An
// unparseable token is passed through as-is.
func tokenExpired(token string) bool {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(time.Now())
}
