// Package logtail reads the end of dreamline's client log for the diagnostics
// view.
//
// # Overview
//
// The form controller logs interpretation failures through zap instead of
// showing them to the user. The terminal UI writes that log to a file and the
// diagnostics view shows its tail, so the details are one key away without
// ever reaching the result panel.
//
// # Reading
//
// Read keeps a ring buffer of maxLines strings while scanning the file once:
//
//	1. Allocate ring of size maxLines
//	2. For each line: store at idx, advance idx (wrapping), count up to maxLines
//	3. If count < maxLines: return ring[:count]
//	4. Otherwise: return ring starting at idx (the oldest kept line)
//
// Memory is O(maxLines); a missing file returns nil, nil.
//
// # Levels
//
// ParseLevel recognises both zap encodings:
//
//	2026-10-19T08:00:00.000Z	ERROR	interpret request failed	{"error": "..."}
//	{"level":"ERROR","timestamp":"...","msg":"..."}
//
// Lines it cannot classify return LevelUnknown and are shown unstyled.
package logtail
