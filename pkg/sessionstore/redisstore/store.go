// Package redisstore keeps chat session ids in Redis so they survive restarts
// and are shared across server instances.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/goliatone/go-restaurant-admin/components/admin"
)

// DefaultTTL keeps an idle session id for 30 days.
const DefaultTTL = 30 * 24 * time.Hour

// Store implements admin.SessionStore.
type Store struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
	log    *zap.Logger
}

// Option customizes a Store.
type Option func(*Store)

// WithPrefix namespaces keys (default "restaurant-admin:").
func WithPrefix(prefix string) Option {
	return func(s *Store) { s.prefix = prefix }
}

// WithTTL sets the key expiry; zero keeps ids forever.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl >= 0 {
			s.ttl = ttl
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// New wraps an existing client.
func New(client redis.UniversalClient, opts ...Option) *Store {
	s := &Store{
		client: client,
		prefix: "restaurant-admin:",
		ttl:    DefaultTTL,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Connect parses url, pings the server and returns a Store.
func Connect(ctx context.Context, url string, opts ...Option) (*Store, error) {
	options, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redisstore: parse url: %w", err)
	}
	client := redis.NewClient(options)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redisstore: ping: %w", err)
	}
	store := New(client, opts...)
	store.log.Info("chat session store connected", zap.String("addr", options.Addr))
	return store, nil
}

// Close releases the client.
func (s *Store) Close() error { return s.client.Close() }

func (s *Store) key(scope string) string {
	return s.prefix + admin.ScopedKey(scope)
}

// Read returns admin.ErrSessionNotFound when no id is stored.
func (s *Store) Read(ctx context.Context, scope string) (string, error) {
	id, err := s.client.Get(ctx, s.key(scope)).Result()
	if errors.Is(err, redis.Nil) {
		return "", admin.ErrSessionNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redisstore: read: %w", err)
	}
	return id, nil
}

// Create stores id only when absent and returns the stored id.
func (s *Store) Create(ctx context.Context, scope, id string) (string, error) {
	if id == "" {
		return "", errors.New("redisstore: session id is required")
	}
	key := s.key(scope)
	created, err := s.client.SetNX(ctx, key, id, s.ttl).Result()
	if err != nil {
		return "", fmt.Errorf("redisstore: create: %w", err)
	}
	if created {
		s.log.Debug("chat session created", zap.String("key", key))
		return id, nil
	}
	existing, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		// Expired between SETNX and GET.
		return s.Create(ctx, scope, id)
	}
	if err != nil {
		return "", fmt.Errorf("redisstore: create: %w", err)
	}
	return existing, nil
}

// Clear deletes the stored id.
func (s *Store) Clear(ctx context.Context, scope string) error {
	if err := s.client.Del(ctx, s.key(scope)).Err(); err != nil {
		return fmt.Errorf("redisstore: clear: %w", err)
	}
	s.log.Debug("chat session cleared", zap.String("key", s.key(scope)))
	return nil
}
