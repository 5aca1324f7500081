// Package sessions keeps per-visitor component state between requests.
//
// Entries live in a bounded LRU with a sliding TTL. Eviction, by age or by
// capacity, is the unmount point for whatever the entry holds.
package sessions

import (
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	// DefaultTTL is the idle lifetime of a session.
	DefaultTTL = 30 * time.Minute
	// DefaultMaxSessions bounds the number of live sessions.
	DefaultMaxSessions = 1024
)

// EvictFunc observes a session being discarded. It runs while the store is
// locked and must not call back into it.
type EvictFunc[T any] func(id string, value T)

// Store maps session ids to mounted values.
type Store[T any] struct {
	mu    sync.Mutex
	cache *expirable.LRU[string, T]
	ttl   time.Duration
}

// New builds a store holding at most maxSessions entries, each expiring ttl
// after its last use. Non-positive arguments fall back to the defaults.
func New[T any](maxSessions int, ttl time.Duration, onEvict EvictFunc[T]) *Store[T] {
	if maxSessions <= 0 {
		maxSessions = DefaultMaxSessions
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	var cb expirable.EvictCallback[string, T]
	if onEvict != nil {
		cb = func(id string, value T) { onEvict(id, value) }
	}
	return &Store[T]{
		cache: expirable.NewLRU[string, T](maxSessions, cb, ttl),
		ttl:   ttl,
	}
}

// TTL returns the idle lifetime of a session.
func (s *Store[T]) TTL() time.Duration {
	return s.ttl
}

// Mount returns the value for id, creating it with mount on first use. The
// second result reports whether the value was created by this call. Every
// call refreshes the session's TTL.
func (s *Store[T]) Mount(id string, mount func(id string) T) (T, bool) {
	id = strings.TrimSpace(id)
	s.mu.Lock()
	defer s.mu.Unlock()
	if value, ok := s.cache.Get(id); ok {
		// Re-adding restarts the expiry clock; Get alone does not.
		s.cache.Add(id, value)
		return value, false
	}
	value := mount(id)
	s.cache.Add(id, value)
	return value, true
}

// Len returns the number of live sessions.
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Len()
}

// Purge unmounts every session.
func (s *Store[T]) Purge() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Purge()
}
