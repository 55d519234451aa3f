// Package form implements the dream form submission controller.
//
// A Controller owns one submit cycle: trim the dream, short-circuit blank
// input with a prompt, otherwise disable the trigger, show a loading
// indicator, post the dream, render the interpretation (or a fallback), and
// always restore the trigger. Every failure of the exchange collapses into
// FailureMessage; the error itself only reaches the diagnostic logger.
//
// The controller never looks up its surfaces. Front ends hand it a Display
// and a Trigger: the terminal UI passes a state.Store, the browser binding
// passes DOM element wrappers, the ask command passes a store it prints.
//
// # Phases
//
//	Idle --Submit(non-blank)--> Busy --settle--> Idle
//
// A Submit that arrives while Busy returns ErrBusy without touching either
// surface. Disabling the trigger remains the visible cue; the phase check is
// what guarantees a single request in flight.
package form
