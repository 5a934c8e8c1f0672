// Package store owns the authoritative interview session state and its
// event log. It is the synchronization point of the subsystem: every
// mutation flows back through Save before the enclosing call returns.
package store

import (
	"errors"
	"time"

	"careerprep/interview/internal/models"
)

var ErrSessionNotFound = errors.New("session not found")

// Store is the session persistence contract. The in-memory implementation
// backs tests and single-node deployments; the gorm implementation persists
// to sqlite or postgres with the same method contracts.
//
// Concurrent calls for different session IDs never block each other. The
// store performs no per-session locking: serializing read-modify-write
// sequences for one session is the orchestrator's job.
type Store interface {
	// Create stores a new pending session for the given profile and config.
	Create(profile models.CandidateProfile, config models.InterviewConfig) (*models.InterviewSession, error)

	// Get returns a deep copy of the session, or ErrSessionNotFound.
	Get(sessionID string) (*models.InterviewSession, error)

	// Save replaces the stored session wholesale. Idempotent.
	Save(session *models.InterviewSession) error

	// Delete removes the session and its event log. Returns false when the
	// session does not exist.
	Delete(sessionID string) (bool, error)

	// List returns sessions sorted by creation time descending. An empty
	// status matches all statuses.
	List(status models.Status, limit int) ([]*models.InterviewSession, error)

	// RecordEvent appends to the session's event log, mirrors the event
	// into the session itself and bumps the tab-switch counter when the
	// event is a tab switch.
	RecordEvent(event *models.InterviewEvent) error

	// GetEvents returns events for a session, optionally filtered by type.
	GetEvents(sessionID string, eventType models.EventType) ([]*models.InterviewEvent, error)

	// CountEvents counts events of the given type for a session.
	CountEvents(sessionID string, eventType models.EventType) (int, error)

	// Status transition helpers.
	StartInterview(sessionID string) (*models.InterviewSession, error)
	CompleteInterview(sessionID string) (*models.InterviewSession, error)
	CancelInterview(sessionID string) (*models.InterviewSession, error)

	// CleanupOlderThan removes sessions created more than maxAge ago and
	// returns the number removed.
	CleanupOlderThan(maxAge time.Duration) (int, error)

	// SessionCount returns the number of stored sessions.
	SessionCount() (int, error)
}
