package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/dreamline/internal/form"
)

// Store satisfies both form surfaces.
var (
	_ form.Display = (*Store)(nil)
	_ form.Trigger = (*Store)(nil)
)

// Region says what the result region currently holds.
type Region int

const (
	RegionEmpty Region = iota
	RegionLoading
	RegionMessage
)

// Snapshot is the latest view state available to a front end.
type Snapshot struct {
	Region         Region
	Message        string
	TriggerEnabled bool
	TriggerLabel   string
	LastUpdated    time.Time

	// Reachability of the interpretation service, fed by the health probe.
	HasProbe            bool
	LastProbe           time.Time
	LastProbeError      error
	ConsecutiveFailures int
}

// IsOffline returns true when the service has failed several probes in a row.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Loading reports whether the loading indicator is showing.
func (s Snapshot) Loading() bool {
	return s.Region == RegionLoading
}

// Store holds the result region and trigger state behind a mutex. The zero
// value is ready to use.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// ShowLoading replaces the result region with the loading indicator.
func (s *Store) ShowLoading() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Region = RegionLoading
	s.snapshot.Message = ""
	s.snapshot.LastUpdated = time.Now()
}

// ShowMessage replaces the result region with text.
func (s *Store) ShowMessage(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Region = RegionMessage
	s.snapshot.Message = text
	s.snapshot.LastUpdated = time.Now()
}

// SetEnabled toggles the trigger.
func (s *Store) SetEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.TriggerEnabled = enabled
	s.snapshot.LastUpdated = time.Now()
}

// SetLabel changes the trigger label.
func (s *Store) SetLabel(label string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.TriggerLabel = label
	s.snapshot.LastUpdated = time.Now()
}

// Clear empties the result region.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Region = RegionEmpty
	s.snapshot.Message = ""
	s.snapshot.LastUpdated = time.Now()
}

// RecordProbe stores the result of a health probe. A nil err resets the
// failure streak.
func (s *Store) RecordProbe(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.HasProbe = true
	s.snapshot.LastProbe = time.Now()
	if err != nil {
		s.snapshot.LastProbeError = err
		s.snapshot.ConsecutiveFailures++
		return
	}
	s.snapshot.LastProbeError = nil
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	if s.snapshot.LastProbeError != nil {
		snap.LastProbeError = fmt.Errorf("%w", s.snapshot.LastProbeError)
	}
	return snap
}
