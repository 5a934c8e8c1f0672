package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"careerprep/interview/internal/models"
)

// SessionRow is the persisted form of a session. The full aggregate is
// serialized into Payload; status and created_at are lifted into columns
// for filtering and sweeps.
type SessionRow struct {
	ID     string `gorm:"primaryKey"`
	Status string `gorm:"index"`
	// autoCreateTime is disabled so Save can rewrite the column from the
	// aggregate; the session owns its own timestamps.
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
	Payload   []byte
}

func (SessionRow) TableName() string { return "interview_sessions" }

// EventRow is one persisted integrity event.
type EventRow struct {
	ID        string `gorm:"primaryKey"`
	SessionID string `gorm:"index"`
	EventType string `gorm:"index"`
	Timestamp time.Time
	Metadata  []byte
}

func (EventRow) TableName() string { return "interview_events" }

// GormStore persists sessions through gorm (sqlite or postgres), keeping
// the same contracts as MemoryStore.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&SessionRow{}, &EventRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate session tables: %w", err)
	}
	return &GormStore{db: db}, nil
}

func (gs *GormStore) Create(profile models.CandidateProfile, config models.InterviewConfig) (*models.InterviewSession, error) {
	session := models.NewSession(profile, config)

	row, err := sessionToRow(session)
	if err != nil {
		return nil, err
	}
	if err := gs.db.Create(row).Error; err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	return session, nil
}

func (gs *GormStore) Get(sessionID string) (*models.InterviewSession, error) {
	var row SessionRow
	err := gs.db.First(&row, "id = ?", sessionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return rowToSession(&row)
}

func (gs *GormStore) Save(session *models.InterviewSession) error {
	row, err := sessionToRow(session)
	if err != nil {
		return err
	}
	if err := gs.db.Save(row).Error; err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (gs *GormStore) Delete(sessionID string) (bool, error) {
	result := gs.db.Delete(&SessionRow{}, "id = ?", sessionID)
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete session: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return false, nil
	}
	if err := gs.db.Delete(&EventRow{}, "session_id = ?", sessionID).Error; err != nil {
		return false, fmt.Errorf("failed to delete session events: %w", err)
	}
	return true, nil
}

func (gs *GormStore) List(status models.Status, limit int) ([]*models.InterviewSession, error) {
	query := gs.db.Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", string(status))
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var rows []SessionRow
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	sessions := make([]*models.InterviewSession, 0, len(rows))
	for i := range rows {
		session, err := rowToSession(&rows[i])
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, nil
}

func (gs *GormStore) RecordEvent(event *models.InterviewEvent) error {
	metadata, err := json.Marshal(event.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal event metadata: %w", err)
	}

	row := &EventRow{
		ID:        event.ID,
		SessionID: event.SessionID,
		EventType: string(event.EventType),
		Timestamp: event.Timestamp,
		Metadata:  metadata,
	}
	if err := gs.db.Create(row).Error; err != nil {
		return fmt.Errorf("failed to store event: %w", err)
	}

	// Mirror into the session aggregate like the memory store does.
	session, err := gs.Get(event.SessionID)
	if errors.Is(err, ErrSessionNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	session.Events = append(session.Events, *event.Clone())
	if event.EventType == models.EventTabSwitch {
		session.TabSwitchCount++
	}
	return gs.Save(session)
}

func (gs *GormStore) GetEvents(sessionID string, eventType models.EventType) ([]*models.InterviewEvent, error) {
	query := gs.db.Where("session_id = ?", sessionID).Order("timestamp ASC")
	if eventType != "" {
		query = query.Where("event_type = ?", string(eventType))
	}

	var rows []EventRow
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}

	events := make([]*models.InterviewEvent, 0, len(rows))
	for i := range rows {
		ev, err := rowToEvent(&rows[i])
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}

func (gs *GormStore) CountEvents(sessionID string, eventType models.EventType) (int, error) {
	var count int64
	err := gs.db.Model(&EventRow{}).
		Where("session_id = ? AND event_type = ?", sessionID, string(eventType)).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	return int(count), nil
}

func (gs *GormStore) StartInterview(sessionID string) (*models.InterviewSession, error) {
	return gs.transition(sessionID, func(s *models.InterviewSession) {
		s.Status = models.StatusInProgress
		now := time.Now().UTC()
		s.StartedAt = &now
	})
}

func (gs *GormStore) CompleteInterview(sessionID string) (*models.InterviewSession, error) {
	return gs.transition(sessionID, func(s *models.InterviewSession) {
		s.Status = models.StatusCompleted
		now := time.Now().UTC()
		s.CompletedAt = &now
	})
}

func (gs *GormStore) CancelInterview(sessionID string) (*models.InterviewSession, error) {
	return gs.transition(sessionID, func(s *models.InterviewSession) {
		s.Status = models.StatusCancelled
	})
}

func (gs *GormStore) transition(sessionID string, mutate func(*models.InterviewSession)) (*models.InterviewSession, error) {
	session, err := gs.Get(sessionID)
	if err != nil {
		return nil, err
	}
	mutate(session)
	if err := gs.Save(session); err != nil {
		return nil, err
	}
	return session, nil
}

func (gs *GormStore) CleanupOlderThan(maxAge time.Duration) (int, error) {
	cutoff := time.Now().UTC().Add(-maxAge)

	var ids []string
	if err := gs.db.Model(&SessionRow{}).Where("created_at < ?", cutoff).Pluck("id", &ids).Error; err != nil {
		return 0, fmt.Errorf("failed to find expired sessions: %w", err)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	if err := gs.db.Delete(&SessionRow{}, "id IN ?", ids).Error; err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	if err := gs.db.Delete(&EventRow{}, "session_id IN ?", ids).Error; err != nil {
		return 0, fmt.Errorf("failed to delete expired session events: %w", err)
	}
	return len(ids), nil
}

func (gs *GormStore) SessionCount() (int, error) {
	var count int64
	if err := gs.db.Model(&SessionRow{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}
	return int(count), nil
}

func sessionToRow(session *models.InterviewSession) (*SessionRow, error) {
	payload, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session: %w", err)
	}
	return &SessionRow{
		ID:        session.SessionID,
		Status:    string(session.Status),
		CreatedAt: session.CreatedAt,
		Payload:   payload,
	}, nil
}

func rowToSession(row *SessionRow) (*models.InterviewSession, error) {
	var session models.InterviewSession
	if err := json.Unmarshal(row.Payload, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session %s: %w", row.ID, err)
	}
	return &session, nil
}

func rowToEvent(row *EventRow) (*models.InterviewEvent, error) {
	event := &models.InterviewEvent{
		ID:        row.ID,
		SessionID: row.SessionID,
		EventType: models.EventType(row.EventType),
		Timestamp: row.Timestamp,
	}
	if len(row.Metadata) > 0 {
		if err := json.Unmarshal(row.Metadata, &event.Metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal event metadata: %w", err)
		}
	}
	return event, nil
}
