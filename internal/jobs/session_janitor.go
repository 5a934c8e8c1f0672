package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"careerprep/interview/internal/store"
)

// SessionJanitorJob removes sessions past their maximum age on a schedule.
type SessionJanitorJob struct {
	store  store.Store
	config *JanitorConfig
	cron   *cron.Cron
}

// JanitorConfig contains configuration for the janitor job
type JanitorConfig struct {
	Schedule string        // Cron schedule (e.g., "@hourly" or "0 2 * * *")
	MaxAge   time.Duration // Sessions older than this are removed
	Enabled  bool          // Whether to run the sweep
}

func NewSessionJanitorJob(st store.Store, config *JanitorConfig) *SessionJanitorJob {
	return &SessionJanitorJob{
		store:  st,
		config: config,
		cron:   cron.New(),
	}
}

// Start begins the scheduled cleanup job
func (sjj *SessionJanitorJob) Start() error {
	if !sjj.config.Enabled {
		log.Println("Session janitor is disabled, skipping scheduler")
		return nil
	}

	log.Printf("Starting session janitor with schedule: %s", sjj.config.Schedule)

	_, err := sjj.cron.AddFunc(sjj.config.Schedule, func() {
		if err := sjj.RunCleanup(); err != nil {
			log.Printf("Session cleanup failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule cleanup job: %w", err)
	}

	sjj.cron.Start()
	log.Println("Session janitor started successfully")

	return nil
}

// Stop stops the scheduled cleanup job
func (sjj *SessionJanitorJob) Stop() {
	if sjj.cron != nil {
		sjj.cron.Stop()
		log.Println("Session janitor stopped")
	}
}

// RunCleanup performs a single sweep
func (sjj *SessionJanitorJob) RunCleanup() error {
	removed, err := sjj.store.CleanupOlderThan(sjj.config.MaxAge)
	if err != nil {
		return fmt.Errorf("failed to clean up sessions: %w", err)
	}

	if removed > 0 {
		log.Printf("Session janitor removed %d expired sessions", removed)
	}

	return nil
}

// RunManual runs a sweep manually (for testing or on-demand cleanup)
func (sjj *SessionJanitorJob) RunManual() error {
	return sjj.RunCleanup()
}
