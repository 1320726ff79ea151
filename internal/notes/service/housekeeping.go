package service

import (
	"context"
	"log/slog"
	"time"
)

// HousekeepingService periodically drops expired refresh token entries so
// users who never come back do not keep dead fingerprints forever.
type HousekeepingService struct {
	Tokens   *TokenService
	Logger   *slog.Logger
	Interval time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a housekeeping service. A non-positive
// interval defaults to one hour.
func NewHousekeepingService(tokens *TokenService, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}

	return &HousekeepingService{
		Tokens:   tokens,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background worker. Call Stop to shut it down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop shuts the worker down and waits for an in-progress cleanup.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.Cleanup(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Cleanup(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Cleanup runs one pass.
func (s *HousekeepingService) Cleanup(ctx context.Context) {
	removed, err := s.Tokens.PruneExpired(ctx)
	if err != nil {
		s.Logger.Error("failed to prune expired refresh tokens", "error", err, "removed", removed)
		return
	}
	s.Logger.Info("housekeeping cleanup completed", "refresh_tokens_removed", removed)
}
