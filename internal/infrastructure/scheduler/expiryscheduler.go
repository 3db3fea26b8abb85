package scheduler

import (
	"context"
	"sync"
	"time"

	capacityUsecases "coachdesk/internal/application/capacity/usecases"
	"coachdesk/internal/shared/logger"
)

// ExpiryScheduler periodically marks expired plan assignments and capacity
// tokens. The sweep is a consistency pass for reports and listings; the
// allocator re-checks expiration itself, so nothing depends on the sweep
// having run.
type ExpiryScheduler struct {
	sweepExpiredUC *capacityUsecases.SweepExpiredUseCase
	logger         logger.Interface
	stopChan       chan struct{}
	stopOnce       sync.Once
	wg             sync.WaitGroup
	interval       time.Duration
}

// NewExpiryScheduler creates a new ExpiryScheduler
func NewExpiryScheduler(
	sweepExpiredUC *capacityUsecases.SweepExpiredUseCase,
	intervalHours int,
	logger logger.Interface,
) *ExpiryScheduler {
	return &ExpiryScheduler{
		sweepExpiredUC: sweepExpiredUC,
		logger:         logger,
		stopChan:       make(chan struct{}),
		interval:       time.Duration(intervalHours) * time.Hour,
	}
}

// Start starts the scheduler
func (s *ExpiryScheduler) Start(ctx context.Context) {
	s.logger.Infow("starting expiry scheduler", "interval", s.interval)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runLoop(ctx)
	}()
}

// Stop stops the scheduler gracefully
func (s *ExpiryScheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Infow("stopping expiry scheduler")
		close(s.stopChan)
		s.wg.Wait()
		s.logger.Infow("expiry scheduler stopped")
	})
}

func (s *ExpiryScheduler) runLoop(ctx context.Context) {
	// Run immediately on startup to clear anything that expired while down
	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Infow("expiry scheduler stopped due to context cancellation")
			return
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *ExpiryScheduler) sweep(ctx context.Context) {
	startTime := time.Now()

	result, err := s.sweepExpiredUC.Execute(ctx)
	if err != nil {
		s.logger.Errorw("expiry sweep failed",
			"error", err,
			"duration", time.Since(startTime),
		)
		return
	}

	if result.ExpiredAssignments > 0 || result.ExpiredTokens > 0 {
		s.logger.Infow("expiry sweep completed",
			"expired_assignments", result.ExpiredAssignments,
			"expired_tokens", result.ExpiredTokens,
			"duration", time.Since(startTime),
		)
	} else {
		s.logger.Debugw("expiry sweep found nothing to mark",
			"duration", time.Since(startTime),
		)
	}
}
