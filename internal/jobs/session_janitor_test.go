package jobs

import (
	"testing"
	"time"

	"careerprep/interview/internal/models"
	"careerprep/interview/internal/store"
)

func seedSession(t *testing.T, st store.Store, age time.Duration) string {
	t.Helper()
	session, err := st.Create(models.CandidateProfile{}, models.InterviewConfig{Role: "Engineer", NumQuestions: 1})
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	session.CreatedAt = time.Now().UTC().Add(-age)
	if err := st.Save(session); err != nil {
		t.Fatalf("failed to save session: %v", err)
	}
	return session.SessionID
}

func TestRunCleanup_RemovesOnlyExpired(t *testing.T) {
	st := store.NewMemoryStore()
	oldID := seedSession(t, st, 48*time.Hour)
	freshID := seedSession(t, st, time.Hour)

	job := NewSessionJanitorJob(st, &JanitorConfig{
		Schedule: "@hourly",
		MaxAge:   24 * time.Hour,
		Enabled:  true,
	})

	if err := job.RunCleanup(); err != nil {
		t.Fatalf("RunCleanup returned error: %v", err)
	}

	if _, err := st.Get(oldID); err != store.ErrSessionNotFound {
		t.Errorf("expired session still present, err = %v", err)
	}
	if _, err := st.Get(freshID); err != nil {
		t.Errorf("fresh session removed: %v", err)
	}
}

func TestRunCleanup_NoSessions(t *testing.T) {
	job := NewSessionJanitorJob(store.NewMemoryStore(), &JanitorConfig{
		Schedule: "@hourly",
		MaxAge:   24 * time.Hour,
		Enabled:  true,
	})

	if err := job.RunManual(); err != nil {
		t.Fatalf("RunManual with empty store should not error, got %v", err)
	}
}

func TestStart_DisabledIsNoop(t *testing.T) {
	job := NewSessionJanitorJob(store.NewMemoryStore(), &JanitorConfig{
		Schedule: "@hourly",
		MaxAge:   24 * time.Hour,
		Enabled:  false,
	})

	if err := job.Start(); err != nil {
		t.Fatalf("Start with disabled janitor returned error: %v", err)
	}
	job.Stop()
}
