// pkg/memcache/sessions.go
package mem

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("session not found or expired")

type SessionStore[T any] interface {
	// Create stores a fresh value under a new random id.
	Create() string

	// With runs fn on the value for id while holding that session's lock and
	// slides its expiry. Returns ErrNotFound if missing/expired.
	With(id string, fn func(T) error) error

	Delete(id string) bool
}

type entry[T any] struct {
	mu        sync.Mutex
	value     T
	expiresAt time.Time
}

// Sessions is an in-memory TTL map. Each entry carries its own mutex so work on
// one session never blocks another.
type Sessions[T any] struct {
	mu       sync.RWMutex
	data     map[string]*entry[T]
	ttl      time.Duration
	newValue func() T
	now      func() time.Time
}

func NewSessions[T any](ttl time.Duration, newValue func() T) *Sessions[T] {
	return &Sessions[T]{
		data:     make(map[string]*entry[T]),
		ttl:      ttl,
		newValue: newValue,
		now:      time.Now,
	}
}

func (s *Sessions[T]) Create() string {
	id := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked() // opportunistic cleanup
	s.data[id] = &entry[T]{
		value:     s.newValue(),
		expiresAt: s.now().Add(s.ttl),
	}
	return id
}

func (s *Sessions[T]) With(id string, fn func(T) error) error {
	s.mu.Lock()
	e, ok := s.data[id]
	if !ok {
		s.mu.Unlock()
		return ErrNotFound
	}
	if s.now().After(e.expiresAt) {
		delete(s.data, id) // cleanup expired
		s.mu.Unlock()
		return ErrNotFound
	}
	e.expiresAt = s.now().Add(s.ttl)
	s.mu.Unlock()

	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.value)
}

func (s *Sessions[T]) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.data[id]
	delete(s.data, id)
	return ok
}

// Len counts live and not yet swept sessions.
func (s *Sessions[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Sweep drops expired sessions and returns how many were removed.
func (s *Sessions[T]) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepLocked()
}

func (s *Sessions[T]) sweepLocked() int {
	now := s.now()
	n := 0
	for id, e := range s.data {
		if now.After(e.expiresAt) {
			delete(s.data, id)
			n++
		}
	}
	return n
}

// Janitor sweeps every interval until ctx is done.
func (s *Sessions[T]) Janitor(ctx context.Context, interval time.Duration, onSweep func(removed int)) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := s.Sweep(); n > 0 && onSweep != nil {
				onSweep(n)
			}
		}
	}
}
