package jobs

import (
	"database/sql"

	"homestay-backend/internal/config"
	"homestay-backend/internal/events"
	"homestay-backend/internal/logger"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	db        *sql.DB
	publisher events.Publisher
	config    *config.Config
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(db *sql.DB, publisher events.Publisher, cfg *config.Config) *JobRunner {
	return &JobRunner{
		db:        db,
		publisher: publisher,
		config:    cfg,
	}
}

// Config exposes the loaded configuration for the scheduler
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAllNightlyJobs runs all nightly jobs (for manual execution)
func (jr *JobRunner) RunAllNightlyJobs() {
	jr.ReportStalePendingBookings()
	jr.SendCheckInReminders()
}
