package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-supa-client/internal/logger"
)

const defaultRefreshInterval = 30 * time.Second

// SessionRefreshJob periodically asks a [SessionRefresher] to refresh the
// session before it expires.
type SessionRefreshJob struct {
	refresher SessionRefresher
	interval  time.Duration
	logger    *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSessionRefreshJob creates a job that calls refresher.RefreshIfExpiring
// every interval. A zero or negative interval defaults to 30 seconds. The
// job is idle until Start is called.
func NewSessionRefreshJob(refresher SessionRefresher, interval time.Duration, log *logger.Logger) *SessionRefreshJob {
	if interval <= 0 {
		interval = defaultRefreshInterval
	}

	return &SessionRefreshJob{
		refresher: refresher,
		interval:  interval,
		logger:    log.WithComponent("session_refresh_job"),
	}
}

// Start implements [Worker]. It stops any previously running loop, then
// launches a goroutine that ticks every interval. The goroutine exits when
// ctx is cancelled or Stop is called.
func (j *SessionRefreshJob) Start(ctx context.Context) {
	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(j.interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				if err := j.refresher.RefreshIfExpiring(jobCtx); err != nil && jobCtx.Err() == nil {
					j.logger.Warn().Err(err).Str("func", "SessionRefreshJob.Start").Msg("session refresh failed")
				}
			}
		}
	}()
}

// Stop implements [Worker]. It cancels the background goroutine's context and
// blocks until the goroutine has fully exited. Safe to call when the job is
// not running.
func (j *SessionRefreshJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
