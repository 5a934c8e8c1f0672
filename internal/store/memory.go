package store

import (
	"sort"
	"sync"
	"time"

	"careerprep/interview/internal/models"
)

// MemoryStore keeps sessions and events in process memory.
// Non-durable: a restart loses everything.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*models.InterviewSession
	events   map[string][]*models.InterviewEvent
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*models.InterviewSession),
		events:   make(map[string][]*models.InterviewEvent),
	}
}

func (ms *MemoryStore) Create(profile models.CandidateProfile, config models.InterviewConfig) (*models.InterviewSession, error) {
	session := models.NewSession(profile, config)

	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.sessions[session.SessionID] = session.Clone()
	ms.events[session.SessionID] = nil

	return session, nil
}

func (ms *MemoryStore) Get(sessionID string) (*models.InterviewSession, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	session, ok := ms.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session.Clone(), nil
}

func (ms *MemoryStore) Save(session *models.InterviewSession) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.sessions[session.SessionID] = session.Clone()
	return nil
}

func (ms *MemoryStore) Delete(sessionID string) (bool, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if _, ok := ms.sessions[sessionID]; !ok {
		return false, nil
	}
	delete(ms.sessions, sessionID)
	delete(ms.events, sessionID)
	return true, nil
}

func (ms *MemoryStore) List(status models.Status, limit int) ([]*models.InterviewSession, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	sessions := make([]*models.InterviewSession, 0, len(ms.sessions))
	for _, s := range ms.sessions {
		if status != "" && s.Status != status {
			continue
		}
		sessions = append(sessions, s.Clone())
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.After(sessions[j].CreatedAt)
	})

	if limit > 0 && len(sessions) > limit {
		sessions = sessions[:limit]
	}
	return sessions, nil
}

func (ms *MemoryStore) RecordEvent(event *models.InterviewEvent) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.events[event.SessionID] = append(ms.events[event.SessionID], event.Clone())

	session, ok := ms.sessions[event.SessionID]
	if !ok {
		return nil
	}
	session.Events = append(session.Events, *event.Clone())
	if event.EventType == models.EventTabSwitch {
		session.TabSwitchCount++
	}
	return nil
}

func (ms *MemoryStore) GetEvents(sessionID string, eventType models.EventType) ([]*models.InterviewEvent, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	var out []*models.InterviewEvent
	for _, ev := range ms.events[sessionID] {
		if eventType != "" && ev.EventType != eventType {
			continue
		}
		out = append(out, ev.Clone())
	}
	return out, nil
}

func (ms *MemoryStore) CountEvents(sessionID string, eventType models.EventType) (int, error) {
	events, err := ms.GetEvents(sessionID, eventType)
	if err != nil {
		return 0, err
	}
	return len(events), nil
}

func (ms *MemoryStore) StartInterview(sessionID string) (*models.InterviewSession, error) {
	return ms.transition(sessionID, func(s *models.InterviewSession) {
		s.Status = models.StatusInProgress
		now := time.Now().UTC()
		s.StartedAt = &now
	})
}

func (ms *MemoryStore) CompleteInterview(sessionID string) (*models.InterviewSession, error) {
	return ms.transition(sessionID, func(s *models.InterviewSession) {
		s.Status = models.StatusCompleted
		now := time.Now().UTC()
		s.CompletedAt = &now
	})
}

func (ms *MemoryStore) CancelInterview(sessionID string) (*models.InterviewSession, error) {
	return ms.transition(sessionID, func(s *models.InterviewSession) {
		s.Status = models.StatusCancelled
	})
}

func (ms *MemoryStore) transition(sessionID string, mutate func(*models.InterviewSession)) (*models.InterviewSession, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	session, ok := ms.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	mutate(session)
	return session.Clone(), nil
}

func (ms *MemoryStore) CleanupOlderThan(maxAge time.Duration) (int, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	cutoff := time.Now().UTC().Add(-maxAge)
	removed := 0
	for id, session := range ms.sessions {
		if session.CreatedAt.Before(cutoff) {
			delete(ms.sessions, id)
			delete(ms.events, id)
			removed++
		}
	}
	return removed, nil
}

func (ms *MemoryStore) SessionCount() (int, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	return len(ms.sessions), nil
}
