// Package state holds the view state shared between the form controller, the
// health probe and the terminal UI.
//
// # Overview
//
// Store implements form.Display and form.Trigger. The controller writes to it
// from the goroutine running a submission; the UI reads Snapshot on its own
// tick and renders from the copy. The health probe writes reachability.
//
//	Writers:                         Reader:
//	┌──────────────────────┐        ┌──────────────────┐
//	│ Controller.Submit()  │        │                  │
//	│   SetEnabled/Label   │        │                  │
//	│   ShowLoading        │───────→│ store.Snapshot() │
//	│   ShowMessage        │ (mutex)│      ↓           │
//	│ probe: RecordProbe() │        │  render UI       │
//	└──────────────────────┘        └──────────────────┘
//
// # Region
//
// The result region is in exactly one state:
//
//   - RegionEmpty: nothing submitted yet (or cleared)
//   - RegionLoading: a request is in flight
//   - RegionMessage: Message holds rendered text
//
// Each write replaces the previous content; nothing from earlier submissions
// is kept.
//
// # Reachability
//
// RecordProbe(err) counts consecutive failures. IsOffline reports true after
// two in a row so a single slow probe does not flip the header.
//
// # Zero Value
//
//	store := &state.Store{} // ready to use
package state
