package scheduler

import (
	"context"
	"log/slog"
	"time"
)

const DefaultSweepInterval = time.Hour

type partyExpirer interface {
	ExpireSweep(ctx context.Context) (int64, error)
}

// Sweeper periodically removes parties whose expiry time has passed. Deletion
// is eventual: an expired party can linger for up to one interval.
type Sweeper struct {
	parties  partyExpirer
	interval time.Duration
	logger   *slog.Logger
}

func New(parties partyExpirer, interval time.Duration, logger *slog.Logger) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Sweeper{
		parties:  parties,
		interval: interval,
		logger:   logger,
	}
}

// Start sweeps once immediately, then on every tick until ctx is cancelled.
func (s *Sweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("sweeper started", "interval", s.interval)
	s.Sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("sweeper stopped")
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep runs a single expiry pass.
func (s *Sweeper) Sweep(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	removed, err := s.parties.ExpireSweep(ctx)
	if err != nil {
		s.logger.Error("failed to remove expired parties", "error", err)
		return
	}

	s.logger.Info("expired parties removed", "count", removed)
}
