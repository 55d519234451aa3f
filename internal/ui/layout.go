package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which the header drops the URL.
	LayoutCompactWidth = 80

	// MaxContentWidth caps the form width on wide terminals.
	MaxContentWidth = 100
)

// Form sizing.
const (
	// InputHeight is the number of visible lines in the dream field.
	InputHeight = 6

	// InputCharLimit bounds the dream text.
	InputCharLimit = 4000
)

// Diagnostics limits.
const (
	// DiagnosticsLines is the number of log lines shown in the diagnostics view.
	DiagnosticsLines = 200
)

// Timing constants.
const (
	// DefaultUIInterval is how often the model re-reads the store.
	DefaultUIInterval = 100 * time.Millisecond

	// DiagnosticsRefresh is how often the diagnostics view re-reads the log.
	DiagnosticsRefresh = time.Second
)
