// Package app provides the orchestration layer for the dreamline client.
//
// # Overview
//
// This package wires configuration, logging, the interpretation client, the
// form controller, the display store, the health probe and the UI into the
// complete terminal experience. It is the composition root for the client
// side; the interpretation service is wired separately by the serve command.
//
// # Architecture
//
//  1. Load config from ~/.config/dreamline/config.toml plus DREAMLINE_* env
//  2. Open the zap client log at <log_dir>/dreamline.log
//  3. Load UI prefs (theme); unreadable prefs are logged and ignored
//  4. Build interpret.Client with the configured request timeout
//  5. Create state.Store and a form.Controller rendering into it
//  6. Launch the background health probe
//  7. Start the TUI and block until the user exits or the context cancels
//
// NewSession performs steps 1, 4 and 5 alone for one-shot callers such as
// the ask command.
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> config.Load()
//	       ├─────> logging.New()          console encoding, file output
//	       ├─────> newSession()           client + store + controller
//	       ├─────> StartProbe()           background reachability
//	       └─────> ui.Run()               blocks
//
//	Health probe loop:
//	┌─────────────────────────────────────────┐
//	│ StartProbe() goroutine                  │
//	│  ├─> client.Health()  (3s timeout)      │
//	│  ├─> store.RecordProbe(err)             │
//	│  └─> sleep calculateBackoff(failures)   │
//	└─────────────────────────────────────────┘
//
// # Probe Behavior
//
// The probe only informs the header. It never submits or retries dreams. On
// success it waits the base interval (default 2 seconds). Each consecutive
// failure doubles the wait, capped at 30 seconds:
//
//	failures: 0   1   2   3    4+
//	wait:     2s  4s  8s  16s  30s
//
// The first failure of a streak is logged at warn level and recovery at
// info, so an outage produces two log lines instead of one per probe.
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Configuration file malformed or environment overrides invalid
//   - Log directory cannot be created
//   - api_url without a host
//
// Recoverable errors (logged, the UI keeps running):
//   - Prefs file unreadable or malformed
//   - Probe failures
//   - Interpretation failures, which the controller renders as a static
//     message
package app
