// internal/app/system/workers/jobcleanup.go
package workers

import (
	"context"
	"sync"
	"time"

	"github.com/dalemusser/fresherlink/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// ExpiredJobDeleter removes jobs whose deadline is strictly before now.
type ExpiredJobDeleter interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// JobCleanup periodically purges expired jobs. It runs the same sweep as
// the admin cleanup endpoint.
type JobCleanup struct {
	jobs     ExpiredJobDeleter
	log      *zap.Logger
	interval time.Duration
	now      func() time.Time
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

func NewJobCleanup(jobs ExpiredJobDeleter, logger *zap.Logger, interval time.Duration) *JobCleanup {
	return &JobCleanup{
		jobs:     jobs,
		log:      logger,
		interval: interval,
		now:      time.Now,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the background loop.
func (w *JobCleanup) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("job cleanup worker started", zap.Duration("interval", w.interval))
}

// Stop signals the worker and waits for the current sweep to finish.
func (w *JobCleanup) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("job cleanup worker stopped")
}

func (w *JobCleanup) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

func (w *JobCleanup) sweep() int64 {
	ctx, cancel := timeouts.WithTimeout(context.Background(), timeouts.Long(), w.log, "expired job sweep")
	defer cancel()

	n, err := w.jobs.DeleteExpired(ctx, w.now())
	if err != nil {
		w.log.Error("expired job cleanup failed", zap.Error(err))
		return 0
	}
	if n > 0 {
		w.log.Info("deleted expired jobs", zap.Int64("count", n))
	}
	return n
}
