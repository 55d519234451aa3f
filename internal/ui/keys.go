package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit        key.Binding
	Submit      key.Binding
	Clear       key.Binding
	Diagnostics key.Binding
	Escape      key.Binding

	// Active only while the dream field is not focused
	Help       key.Binding
	CycleTheme key.Binding

	// Form
	Tab     key.Binding
	Confirm key.Binding

	// Diagnostics
	Scroll key.Binding
	Top    key.Binding
	Bottom key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "Quit"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "Interpret dream"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "Clear dream"),
		),
		Diagnostics: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "Diagnostics"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Back"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "Switch field/button"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "Press button"),
		),
		Scroll: key.NewBinding(
			key.WithKeys("j", "k", "up", "down", "pgup", "pgdown"),
			key.WithHelp("j/k/pgup/pgdn", "Scroll log"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Log top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Log bottom"),
		),
	}
}

// ShortHelp implements help.KeyMap for the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Submit, k.Clear, k.Diagnostics, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap for the help overlay.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Confirm, k.Submit, k.Clear},
		{k.Diagnostics, k.Escape, k.Scroll, k.Top, k.Bottom},
		{k.CycleTheme, k.Help, k.Quit},
	}
}
