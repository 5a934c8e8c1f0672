package interview

import "sync"

// sessionLocks hands out one mutex per session ID so read-modify-write
// sequences against the store are serialized per session while different
// sessions proceed in parallel. Entries are refcounted and removed once
// the last holder releases, so the map does not grow with session churn.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{locks: make(map[string]*lockEntry)}
}

// Lock acquires the per-session mutex and returns its release function.
func (s *sessionLocks) Lock(sessionID string) func() {
	s.mu.Lock()
	entry, ok := s.locks[sessionID]
	if !ok {
		entry = &lockEntry{}
		s.locks[sessionID] = entry
	}
	entry.refs++
	s.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		s.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(s.locks, sessionID)
		}
		s.mu.Unlock()
	}
}
