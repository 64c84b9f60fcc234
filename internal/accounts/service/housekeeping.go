package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/parleychat/parley/internal/accounts/store"
)

// HousekeepingService periodically clears stale OTP state so the accounts
// table does not accumulate expired challenges and lapsed lockouts.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a housekeeping worker with the given
// interval. If interval is 0 or negative, defaults to 1 hour.
func NewHousekeepingService(st store.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}

	return &HousekeepingService{
		Store:    st,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background worker. Non-blocking; call Stop to shut it
// down gracefully.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop shuts down the worker, blocking until any in-progress cleanup ends.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run cleanup immediately on startup
	s.cleanup()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopCh:
			return
		}
	}
}

// cleanup clears each category independently; a failure in one does not stop
// the others.
func (s *HousekeepingService) cleanup() {
	ctx := context.Background()
	now := time.Now().UTC()
	s.Logger.Info("starting housekeeping cleanup")

	if err := s.Store.Accounts().ClearExpiredOTPChallenges(ctx, now); err != nil {
		s.Logger.Error("failed to clear expired otp challenges", "error", err)
	} else {
		s.Logger.Debug("cleared expired otp challenges")
	}

	if err := s.Store.Accounts().ClearExpiredOTPLocks(ctx, now); err != nil {
		s.Logger.Error("failed to clear lapsed otp locks", "error", err)
	} else {
		s.Logger.Debug("cleared lapsed otp locks")
	}

	s.Logger.Info("housekeeping cleanup completed")
}
