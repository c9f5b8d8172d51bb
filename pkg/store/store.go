// Package store provides a small observable state container shared by the
// client-side stores.
package store

import "sync"

// Store holds a single value of type T. Writes replace the value atomically;
// listeners run synchronously after each write, outside the lock, in the
// order they subscribed.
type Store[T any] struct {
	mu        sync.RWMutex
	value     T
	nextID    int
	listeners []listener[T]
}

type listener[T any] struct {
	id int
	fn func(T)
}

// New creates a store holding initial.
func New[T any](initial T) *Store[T] {
	return &Store[T]{value: initial}
}

// Get returns the current value.
func (s *Store[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set replaces the value and notifies listeners.
func (s *Store[T]) Set(value T) {
	s.Update(func(T) T { return value })
}

// Update replaces the value with fn(current) and notifies listeners.
func (s *Store[T]) Update(fn func(T) T) {
	s.UpdateIf(func(v T) (T, bool) { return fn(v), true })
}

// UpdateIf is Update for writes that may be declined: when fn reports false
// the value is kept and listeners are not called. It reports whether the
// value was replaced.
func (s *Store[T]) UpdateIf(fn func(T) (T, bool)) bool {
	s.mu.Lock()
	next, ok := fn(s.value)
	if !ok {
		s.mu.Unlock()
		return false
	}
	s.value = next
	value := s.value
	listeners := make([]listener[T], len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, l := range listeners {
		l.fn(value)
	}
	return true
}

// Subscribe registers fn to be called with every new value. The returned
// function removes the subscription; calling it more than once is harmless.
func (s *Store[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, listener[T]{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}
