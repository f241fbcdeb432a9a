// Package observe provides a minimal typed publish/subscribe primitive
// used by the client stores to notify views about state changes.
package observe

import (
	"slices"
	"sync"
)

// Subject fans a value out to every registered observer.
// The zero value is ready to use.
type Subject[T any] struct {
	subs map[uint64]func(T)
	next uint64
	mu   sync.Mutex
}

// Subscribe registers fn and returns a function that removes it.
// The returned function is safe to call more than once.
func (s *Subject[T]) Subscribe(fn func(T)) func() {
	if fn == nil {
		return func() {}
	}

	s.mu.Lock()
	if s.subs == nil {
		s.subs = make(map[uint64]func(T))
	}
	id := s.next
	s.next++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Publish delivers v to the observers registered at the time of the call,
// in subscription order. Observers run outside the lock and may subscribe,
// unsubscribe or publish again.
func (s *Subject[T]) Publish(v T) {
	s.mu.Lock()
	ids := make([]uint64, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	fns := make([]func(T), 0, len(ids))
	slices.Sort(ids)
	for _, id := range ids {
		fns = append(fns, s.subs[id])
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

// Len returns the number of registered observers.
func (s *Subject[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}
