package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// SessionPurger removes expired sessions in bounded batches.
type SessionPurger interface {
	PurgeExpiredSessions(ctx context.Context, limit int) (int64, error)
}

// SessionReaper periodically deletes expired sessions.
type SessionReaper struct {
	purger    SessionPurger
	interval  time.Duration
	batchSize int
	logger    *slog.Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewSessionReaper constructs the reaper.
func NewSessionReaper(purger SessionPurger, interval time.Duration, batchSize int, logger *slog.Logger) *SessionReaper {
	if interval <= 0 {
		interval = time.Minute
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &SessionReaper{
		purger:    purger,
		interval:  interval,
		batchSize: batchSize,
		logger:    logger,
	}
}

// Start launches background sweeping. Calling Start twice is a no-op.
func (r *SessionReaper) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	r.wg.Add(1)
	go r.loop(runCtx)
}

// Stop waits for the current sweep to finish.
func (r *SessionReaper) Stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()

	r.wg.Wait()
}

func (r *SessionReaper) loop(ctx context.Context) {
	defer r.wg.Done()
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.sweep(ctx)
		}
	}
}

// sweep keeps deleting while full batches come back.
func (r *SessionReaper) sweep(ctx context.Context) {
	var total int64
	for ctx.Err() == nil {
		deleted, err := r.purger.PurgeExpiredSessions(ctx, r.batchSize)
		if err != nil {
			r.logger.Error("purge expired sessions failed", slog.String("error", err.Error()))
			return
		}
		total += deleted
		if deleted < int64(r.batchSize) {
			break
		}
	}
	if total > 0 {
		r.logger.Info("expired sessions purged", slog.Int64("count", total))
	}
}
