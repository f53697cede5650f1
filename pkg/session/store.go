package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("session not found")

// Session is an authenticated caller's server-side state. The organization id
// is resolved from here and only here; request bodies are never trusted for it.
type Session struct {
	Token          string
	OrganizationID uuid.UUID
	UserEmail      string
	ExpiresAt      time.Time
}

func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// Store holds sessions. Implementations must be safe for concurrent use.
// Stores are injected into middleware rather than held as package globals so
// tests can reset state between runs.
type Store interface {
	Get(ctx context.Context, token string) (*Session, error)
	Put(ctx context.Context, sess *Session) error
	Delete(ctx context.Context, token string) error
	Reset()
}

type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*Session)}
}

func (s *MemoryStore) Get(_ context.Context, token string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[token]
	if !ok {
		return nil, ErrNotFound
	}
	if sess.Expired(time.Now()) {
		return nil, ErrNotFound
	}
	copied := *sess
	return &copied, nil
}

func (s *MemoryStore) Put(_ context.Context, sess *Session) error {
	if sess == nil || sess.Token == "" {
		return errors.New("session token is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *sess
	s.sessions[sess.Token] = &copied
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

func (s *MemoryStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = make(map[string]*Session)
}
