package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"monitor-hub/backend/app/metrics"
	"monitor-hub/backend/global"
)

// Sweeper periodically demotes stale devices to offline.
type Sweeper struct {
	presence  *PresenceService
	interval  time.Duration
	threshold time.Duration
	now       func() time.Time

	mu      sync.Mutex
	running bool
	done    chan struct{}
	stopped chan struct{}
}

func NewSweeper(presence *PresenceService, interval, threshold time.Duration) *Sweeper {
	return &Sweeper{
		presence:  presence,
		interval:  interval,
		threshold: threshold,
		now:       presence.now,
	}
}

// Start runs one sweep immediately and then one per interval until Stop is
// called or ctx is done.
func (s *Sweeper) Start(ctx context.Context) error {
	if s.interval <= 0 {
		return fmt.Errorf("sweep interval must be positive, got %s", s.interval)
	}
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("sweeper is already running")
	}
	s.running = true
	s.done = make(chan struct{})
	s.stopped = make(chan struct{})
	s.mu.Unlock()

	global.Logger.Info().
		Dur("interval", s.interval).
		Dur("stale_after", s.threshold).
		Msg("presence sweeper starting")

	go s.runLoop(ctx, s.done, s.stopped)
	return nil
}

// Stop ends the loop and waits for an in-flight sweep to finish.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.done)
	stopped := s.stopped
	s.mu.Unlock()

	<-stopped
	global.Logger.Info().Msg("presence sweeper stopped")
}

// RunNow performs one sweep synchronously.
func (s *Sweeper) RunNow(ctx context.Context) (int64, error) {
	n, err := s.presence.Sweep(ctx, s.now(), s.threshold)
	if err != nil {
		metrics.Sweeps.WithLabelValues("error").Inc()
		return 0, err
	}
	metrics.Sweeps.WithLabelValues("success").Inc()
	metrics.DevicesMarkedOffline.Add(float64(n))
	return n, nil
}

func (s *Sweeper) runLoop(ctx context.Context, done <-chan struct{}, stopped chan<- struct{}) {
	defer close(stopped)

	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-done:
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	n, err := s.RunNow(ctx)
	if err != nil {
		global.Logger.Error().Err(err).Msg("presence sweep failed")
		return
	}
	if n > 0 {
		global.Logger.Info().Int64("marked_offline", n).Msg("presence sweep")
	}
}
