package scheduler

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs recurring jobs on a cron. A tick is skipped while the
// previous run of the same job is still in progress.
type Scheduler struct {
	Cron *cron.Cron
}

// NewScheduler creates a new Scheduler.
func NewScheduler() *Scheduler {
	logger := cron.VerbosePrintfLogger(log.New(os.Stderr, "[cron] ", log.LstdFlags))
	return &Scheduler{
		Cron: cron.New(
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
	}
}

// Every registers job to run at a fixed interval.
func (s *Scheduler) Every(interval time.Duration, name string, job func()) error {
	if interval <= 0 {
		return fmt.Errorf("register %s: interval must be positive", name)
	}
	spec := "@every " + interval.String()
	if _, err := s.Cron.AddFunc(spec, job); err != nil {
		return fmt.Errorf("register %s: %w", name, err)
	}
	log.Printf("[INFO] %s scheduled %s", name, spec)
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for running jobs, bounded by ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.Cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		log.Println("[WARN] scheduler stop timed out waiting for running jobs")
	}
	log.Println("[INFO] scheduler stopped")
}
