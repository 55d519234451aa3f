package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/five82/dreamline/internal/state"
)

func TestCalculateBackoff(t *testing.T) {
	baseInterval := 2 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 2 * time.Second},
		{"negative failures", -1, 2 * time.Second},
		{"one failure", 1, 4 * time.Second},
		{"two failures", 2, 8 * time.Second},
		{"three failures", 3, 16 * time.Second},
		{"four failures capped", 4, 30 * time.Second}, // Would be 32s, capped to 30s
		{"many failures capped", 10, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, baseInterval)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, baseInterval, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	// Verify that backoff never exceeds maxBackoff regardless of input
	baseInterval := 2 * time.Second
	for failures := 0; failures <= 20; failures++ {
		got := calculateBackoff(failures, baseInterval)
		if got > maxBackoff {
			t.Errorf("calculateBackoff(%d, %v) = %v, exceeds maxBackoff %v", failures, baseInterval, got, maxBackoff)
		}
	}
}

type fakeChecker struct {
	mu    sync.Mutex
	err   error
	calls int
}

func (f *fakeChecker) Health(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.err
}

func (f *fakeChecker) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestProbe_RecordsReachability(t *testing.T) {
	store := &state.Store{}
	checker := &fakeChecker{err: errors.New("connection refused")}

	if probe(context.Background(), store, checker) {
		t.Fatal("probe reported success for failing checker")
	}
	if probe(context.Background(), store, checker) {
		t.Fatal("probe reported success for failing checker")
	}
	snap := store.Snapshot()
	if !snap.HasProbe || snap.ConsecutiveFailures != 2 || !snap.IsOffline() {
		t.Fatalf("unexpected snapshot after failures: %+v", snap)
	}

	checker.err = nil
	if !probe(context.Background(), store, checker) {
		t.Fatal("probe reported failure for healthy checker")
	}
	snap = store.Snapshot()
	if snap.ConsecutiveFailures != 0 || snap.LastProbeError != nil || snap.IsOffline() {
		t.Fatalf("failure streak not reset: %+v", snap)
	}
}

func TestProbe_CancelledContextIsNotRecorded(t *testing.T) {
	store := &state.Store{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	probe(ctx, store, &fakeChecker{err: context.Canceled})
	if store.Snapshot().HasProbe {
		t.Fatal("probe recorded a result after cancellation")
	}
}

func TestStartProbe_StopsOnCancel(t *testing.T) {
	store := &state.Store{}
	checker := &fakeChecker{}
	ctx, cancel := context.WithCancel(context.Background())

	StartProbe(ctx, store, checker, 10*time.Millisecond, nil)

	deadline := time.Now().Add(2 * time.Second)
	for checker.callCount() < 2 {
		if time.Now().After(deadline) {
			t.Fatal("probe did not run repeatedly")
		}
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	time.Sleep(30 * time.Millisecond)
	stopped := checker.callCount()
	time.Sleep(50 * time.Millisecond)
	if got := checker.callCount(); got != stopped {
		t.Fatalf("probe kept running after cancel: %d -> %d calls", stopped, got)
	}
	if !store.Snapshot().HasProbe {
		t.Fatal("store never saw a probe")
	}
}
