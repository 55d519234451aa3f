// Package symbols turns dream text into an interpretation.
//
// A Catalog lists dream images (keywords) with the orisha or spiritual force
// they point to. Match finds every symbol whose keyword appears in the dream,
// case-insensitively and as a plain substring. Compose renders the matches as
// newline-separated lines: an opening line, two lines per symbol, a closing
// line. Dreams with no recognised symbol get DefaultMessage.
//
// The built-in catalog is embedded from catalog.toml.
package symbols
