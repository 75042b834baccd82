package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// TempbanClearer clears temporary bans whose expiry has passed
type TempbanClearer interface {
	ClearExpiredTempBans(ctx context.Context) (int, error)
}

// TempbanSweeper periodically lifts expired temporary bans.
// Ban enforcement reads the expiry directly, so the sweeper only tidies
// stored accounts; a stopped sweeper never lets a banned user in.
type TempbanSweeper struct {
	clearer    TempbanClearer
	interval   time.Duration
	startDelay time.Duration
	stopCh     chan struct{}
	wg         sync.WaitGroup
	running    bool
	mu         sync.Mutex
}

// TempbanSweeperConfig holds configuration for the sweeper
type TempbanSweeperConfig struct {
	Clearer  TempbanClearer
	Interval time.Duration
	// StartDelay postpones the first sweep so services can settle
	StartDelay time.Duration
}

// NewTempbanSweeper creates a new tempban sweeper job
func NewTempbanSweeper(cfg TempbanSweeperConfig) *TempbanSweeper {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &TempbanSweeper{
		clearer:    cfg.Clearer,
		interval:   interval,
		startDelay: cfg.StartDelay,
		stopCh:     make(chan struct{}),
	}
}

// Start begins the sweeper job
func (s *TempbanSweeper) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	s.wg.Add(1)
	go s.run()
	slog.Info("tempban sweeper started", slog.Duration("interval", s.interval))
}

// Stop gracefully stops the sweeper job
func (s *TempbanSweeper) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	close(s.stopCh)
	s.wg.Wait()
	slog.Info("tempban sweeper stopped")
}

func (s *TempbanSweeper) run() {
	defer s.wg.Done()

	if s.startDelay > 0 {
		select {
		case <-time.After(s.startDelay):
		case <-s.stopCh:
			return
		}
	}
	s.sweep()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopCh:
			return
		}
	}
}

func (s *TempbanSweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cleared, err := s.clearer.ClearExpiredTempBans(ctx)
	if err != nil {
		slog.Error("tempban sweep failed", slog.String("error", err.Error()))
		return
	}
	if cleared > 0 {
		slog.Info("cleared expired tempbans", slog.Int("count", cleared))
	}
}

// RunOnce runs a single sweep (for testing or manual trigger)
func (s *TempbanSweeper) RunOnce(ctx context.Context) (int, error) {
	return s.clearer.ClearExpiredTempBans(ctx)
}

// IsRunning returns whether the sweeper is running
func (s *TempbanSweeper) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}
