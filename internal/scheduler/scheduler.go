// Package scheduler runs the store's periodic maintenance jobs.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"todoey/internal/logger"
	"todoey/internal/services"
)

// Job is one unit of scheduled work.
type Job func(ctx context.Context) error

// Scheduler wraps cron-based jobs.
type Scheduler struct {
	cron    *cron.Cron
	ctx     context.Context
	cancel  context.CancelFunc
	timeout time.Duration
}

// New creates a scheduler whose job runs are bounded by timeout.
func New(timeout time.Duration) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		ctx:     ctx,
		cancel:  cancel,
		timeout: timeout,
	}
}

// Every registers job to run once per interval. Errors are logged, not
// returned, so one failed run does not stop later ones.
func (s *Scheduler) Every(interval time.Duration, name string, job Job) (cron.EntryID, error) {
	if interval <= 0 {
		return 0, fmt.Errorf("interval must be positive")
	}
	return s.cron.AddFunc(fmt.Sprintf("@every %s", interval), func() {
		s.run(name, job)
	})
}

func (s *Scheduler) run(name string, job Job) {
	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	start := time.Now()
	if err := job(ctx); err != nil {
		logger.Get().Errorw("scheduled job failed",
			"job", name,
			"error", err,
		)
		return
	}
	logger.Get().Debugw("scheduled job finished",
		"job", name,
		"latency_ms", time.Since(start).Milliseconds(),
	)
}

// Start begins running registered jobs in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop cancels in-flight jobs and waits for them to return.
func (s *Scheduler) Stop() {
	s.cancel()
	<-s.cron.Stop().Done()
}

// PruneJournal returns a job that drops change journal entries older than
// retention.
func PruneJournal(changes services.ChangeServicer, retention time.Duration) Job {
	return func(ctx context.Context) error {
		removed, err := changes.Prune(ctx, time.Now().Add(-retention))
		if err != nil {
			return err
		}
		if removed > 0 {
			logger.Get().Infow("pruned change journal",
				"removed", removed,
				"retention", retention.String(),
			)
		}
		return nil
	}
}
