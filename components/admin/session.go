package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// SessionKey is the fixed key under which the chat session id is stored.
const SessionKey = "n8n-chat-session-id"

// SessionStore persists the chat session id per browser client. Read returns
// ErrSessionNotFound when nothing is stored. Create stores id only if no id exists
// and returns whichever id is stored afterwards. Clear removes the id.
type SessionStore interface {
	Read(ctx context.Context, scope string) (string, error)
	Create(ctx context.Context, scope, id string) (string, error)
	Clear(ctx context.Context, scope string) error
}

// ScopedKey builds the storage key for a client scope.
func ScopedKey(scope string) string {
	scope = strings.TrimSpace(scope)
	if scope == "" {
		return SessionKey
	}
	return SessionKey + ":" + scope
}

// NewSessionID generates a fresh chat session id.
func NewSessionID() string {
	return fmt.Sprintf("session-%d-%s", time.Now().UnixMilli(), uuid.NewString())
}

// EnsureSession reads the stored id, creating one with newID when absent.
func EnsureSession(ctx context.Context, store SessionStore, scope string, newID func() string) (string, error) {
	if store == nil {
		return "", errors.New("admin: session store not configured")
	}
	if newID == nil {
		newID = NewSessionID
	}
	id, err := store.Read(ctx, scope)
	if err == nil && id != "" {
		return id, nil
	}
	if err != nil && !errors.Is(err, ErrSessionNotFound) {
		return "", err
	}
	return store.Create(ctx, scope, newID())
}

// InMemorySessionStore keeps ids in process memory.
type InMemorySessionStore struct {
	mu  sync.Mutex
	ids map[string]string
}

// NewInMemorySessionStore returns an empty store.
func NewInMemorySessionStore() *InMemorySessionStore {
	return &InMemorySessionStore{ids: make(map[string]string)}
}

func (s *InMemorySessionStore) Read(_ context.Context, scope string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.ids[ScopedKey(scope)]
	if !ok {
		return "", ErrSessionNotFound
	}
	return id, nil
}

func (s *InMemorySessionStore) Create(_ context.Context, scope, id string) (string, error) {
	if id == "" {
		return "", errors.New("admin: session id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := ScopedKey(scope)
	if existing, ok := s.ids[key]; ok {
		return existing, nil
	}
	s.ids[key] = id
	return id, nil
}

func (s *InMemorySessionStore) Clear(_ context.Context, scope string) error {
	s.mu.Lock()
	delete(s.ids, ScopedKey(scope))
	s.mu.Unlock()
	return nil
}
