package storefront

import "sync"

// Store holds one piece of application state and tells subscribers about
// every change. Subscribers run after the lock is released, on the caller's
// goroutine.
type Store[T any] struct {
	mu    sync.RWMutex
	state T
	subs  map[int]func(T)
	next  int
}

func NewStore[T any](initial T) *Store[T] {
	return &Store[T]{state: initial, subs: make(map[int]func(T))}
}

func (s *Store[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Store[T]) Set(v T) {
	s.Update(func(T) T { return v })
}

// Update replaces the state with fn(current). fn must not call back into
// the store.
func (s *Store[T]) Update(fn func(T) T) {
	s.mu.Lock()
	s.state = fn(s.state)
	state := s.state
	subs := make([]func(T), 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	for _, sub := range subs {
		sub(state)
	}
}

func (s *Store[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.next
	s.next++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}
