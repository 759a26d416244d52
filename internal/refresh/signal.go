// Package refresh provides the cross-view invalidation counter: after a
// mutation (tag created, user deleted, ...) the screen that did it bumps
// the signal, and independently-rendered views (the sidebar's category
// and tag counts) refetch when they notice the count moved. No payload,
// no targeting; listeners refetch everything.
package refresh

import "sync"

type Signal struct {
	mu    sync.Mutex
	count uint64
}

// Bump records one mutation. Write-once-per-mutation, read-many.
func (s *Signal) Bump() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.count++
}

func (s *Signal) Count() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}
