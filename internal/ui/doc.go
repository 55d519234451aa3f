// Package ui provides the Bubble Tea terminal front end for dreamline.
//
// # Architecture Overview
//
// The UI is a single Bubble Tea model with two views: the dream form and a
// diagnostics view of the client log. It never talks to the interpretation
// service directly. Submissions go through a Submitter (the form controller),
// and everything the controller renders lands in a state.Store that the model
// re-reads on a short tick.
//
// # Package Structure
//
//   - app.go: Model, Options, Init/Update/View, key handling and Run
//   - form_view.go: dream field, button, result region and footer
//   - header.go: title, interpreter URL and reachability
//   - diagnostics.go: client log tail with level colouring
//   - help.go: keyboard shortcut overlay
//   - keys.go: key bindings (bubbles/key) and help.KeyMap
//   - theme.go: Nightfox, Kanagawa and Slate palettes
//   - style_helpers.go: background-preserving text rendering
//   - layout.go: sizing and timing constants
//
// # Submission Flow
//
// Update must never block, but Submit does. The model therefore hands the
// submission to a tea.Cmd, which Bubble Tea runs on its own goroutine:
//
//	ctrl+s / enter on button
//	   └─> submit() returns Cmd
//	         └─> controller.Submit(ctx, text)   (blocks)
//	               ├─> store.SetEnabled(false), SetLabel("Interpreting...")
//	               ├─> store.ShowLoading()
//	               ├─> interpreter.Interpret(...)
//	               └─> store.ShowMessage(...), SetEnabled(true)
//	   tick (100ms) ─> store.Snapshot() ─> View
//	   submittedMsg ─> immediate snapshot refresh
//
// While a submission is in flight the button renders disabled with the busy
// label and the result region shows a spinner. A second submission is
// rejected by the controller with form.ErrBusy; the model surfaces that as a
// footer notice and leaves the result region alone.
//
// # Key Bindings
//
//   - tab: switch focus between the dream field and the button
//   - enter: press the button (button focused)
//   - ctrl+s: submit from anywhere
//   - ctrl+l: clear the dream field
//   - ctrl+d: toggle the diagnostics view
//   - esc: leave diagnostics, or move focus off the field
//   - T: cycle theme, saved to prefs (field not focused)
//   - ?: help overlay (field not focused)
//   - ctrl+c: quit
//
// Printable keys always reach the dream field while it has focus.
//
// # Themes
//
// The palette is chosen by name from prefs.toml and cycled with T. Every
// palette defines the same set of colors; unknown names fall back to
// Nightfox.
package ui
