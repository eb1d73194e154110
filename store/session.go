package store

import (
	"context"
	"sync"
)

// DefaultKeyPrefix namespaces credential keys inside the hosting session's
// value bag so they can't collide with unrelated session keys.
const DefaultKeyPrefix = "auth0_"

// SessionStore is a Store backed by the hosting application's request-session
// values.  Pass the session's string value bag to NewSessionStore and every
// Get/Set/Delete maps to a namespaced key in that bag; the hosting framework
// remains responsible for flushing the bag back to its own session storage.
type SessionStore struct {
	mu     sync.Mutex
	values map[string]string
	prefix string
}

// ensure that SessionStore implements the Store interface
var _ Store = (*SessionStore)(nil)

// NewSessionStore creates a Store over the given session values.  A nil map is
// replaced with a fresh one, which makes the store private to the process.
// Supported options: WithKeyPrefix
func NewSessionStore(values map[string]string, opt ...Option) *SessionStore {
	opts := getOpts(opt...)
	if values == nil {
		values = map[string]string{}
	}
	return &SessionStore{
		values: values,
		prefix: opts.withKeyPrefix,
	}
}

func (s *SessionStore) key(k string) string {
	return s.prefix + k
}

// Get returns the namespaced value from the session bag, or ErrNotFound.
func (s *SessionStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[s.key(key)]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

// Set stores the value under the namespaced key.
func (s *SessionStore) Set(ctx context.Context, key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[s.key(key)] = value
	return nil
}

// Delete removes the namespaced key from the session bag.
func (s *SessionStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, s.key(key))
	return nil
}
