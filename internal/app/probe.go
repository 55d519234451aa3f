package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/five82/dreamline/internal/state"
)

const (
	defaultProbeInterval = 2 * time.Second
	maxBackoff           = 30 * time.Second
	probeTimeout         = 3 * time.Second
)

// HealthChecker reports whether the interpretation service is reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// StartProbe launches a background goroutine that records service
// reachability in the store. It backs off while the service is down and
// returns immediately.
func StartProbe(ctx context.Context, store *state.Store, client HealthChecker, interval time.Duration, logger *zap.Logger) {
	if interval <= 0 {
		interval = defaultProbeInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	go func() {
		failures := 0
		for {
			if probe(ctx, store, client) {
				if failures > 0 {
					logger.Info("interpreter reachable again", zap.Int("after_failures", failures))
				}
				failures = 0
			} else {
				failures++
				if failures == 1 {
					logger.Warn("interpreter unreachable", zap.Error(store.Snapshot().LastProbeError))
				}
			}

			timer := time.NewTimer(calculateBackoff(failures, interval))
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
		}
	}()
}

// probe runs one health check and reports whether it succeeded.
func probe(ctx context.Context, store *state.Store, client HealthChecker) bool {
	reqCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	err := client.Health(reqCtx)
	if ctx.Err() != nil {
		return err == nil
	}
	store.RecordProbe(err)
	return err == nil
}

// calculateBackoff doubles the base interval per consecutive failure, capped
// at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	wait := base
	for i := 0; i < failures; i++ {
		wait *= 2
		if wait >= maxBackoff {
			return maxBackoff
		}
	}
	return wait
}
