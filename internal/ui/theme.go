package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the palette for the UI.
type Theme struct {
	Name string

	// Base colors
	Background string // Outermost background
	Surface    string // Header, footer and panels
	SurfaceAlt string // Input field
	FocusBg    string // Focused control

	// Button colors
	SelectionBg   string
	SelectionText string

	// Border colors
	Border      string
	BorderMuted string
	BorderFocus string

	// Text colors
	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Background: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Background)),

		Surface: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)),

		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		FaintText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		InfoText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Info)),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),

		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)).
			Bold(true),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.BorderMuted)).
			Padding(0, 1),

		PanelFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.BorderFocus)).
			Padding(0, 1),

		Button: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SurfaceAlt)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 2),

		ButtonFocused: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)).
			Bold(true).
			Padding(0, 2),

		ButtonDisabled: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Faint)).
			Padding(0, 2),

		background: t.Background,
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	// Base
	Background lipgloss.Style
	Surface    lipgloss.Style

	// Text
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	// Components
	Header         lipgloss.Style
	Footer         lipgloss.Style
	Logo           lipgloss.Style
	Panel          lipgloss.Style
	PanelFocused   lipgloss.Style
	Button         lipgloss.Style
	ButtonFocused  lipgloss.Style
	ButtonDisabled lipgloss.Style

	background string
}

// WithBackground returns a copy of Styles whose text styles carry an explicit
// background, so adjacent segments do not leave gaps.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)
	out := s
	out.Background = s.Background.Background(bg)
	out.Surface = s.Surface.Background(bg)
	out.Text = s.Text.Background(bg)
	out.MutedText = s.MutedText.Background(bg)
	out.FaintText = s.FaintText.Background(bg)
	out.AccentText = s.AccentText.Background(bg)
	out.SuccessText = s.SuccessText.Background(bg)
	out.WarningText = s.WarningText.Background(bg)
	out.DangerText = s.DangerText.Background(bg)
	out.InfoText = s.InfoText.Background(bg)
	out.Header = s.Header.Background(bg)
	out.Footer = s.Footer.Background(bg)
	out.Logo = s.Logo.Background(bg)
	return out
}

// HelpStyles adapts the palette to the bubbles help component.
func (t Theme) HelpStyles() help.Styles {
	key := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning))
	desc := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted))
	sep := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Faint))
	return help.Styles{
		Ellipsis:       sep,
		ShortKey:       key,
		ShortDesc:      desc,
		ShortSeparator: sep,
		FullKey:        key,
		FullDesc:       desc,
		FullSeparator:  sep,
	}
}

// Theme definitions

const defaultThemeName = "Nightfox"

var themes = map[string]Theme{
	"Nightfox": nightfoxTheme(),
	"Kanagawa": kanagawaTheme(),
	"Slate":    slateTheme(),
}

var themeOrder = []string{"Nightfox", "Kanagawa", "Slate"}

// GetTheme returns a theme by name, falling back to Nightfox.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes[defaultThemeName]
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names in cycle order.
func ThemeNames() []string {
	out := make([]string, len(themeOrder))
	copy(out, themeOrder)
	return out
}

func nightfoxTheme() Theme {
	// https://github.com/EdenEast/nightfox.nvim
	return Theme{
		Name:          "Nightfox",
		Background:    "#131a24", // bg0
		Surface:       "#192330", // bg1
		SurfaceAlt:    "#212e3f", // bg2
		FocusBg:       "#29394f", // bg3
		SelectionBg:   "#2b3b51", // sel0
		SelectionText: "#cdcecf", // fg1
		Border:        "#39506d", // bg4
		BorderMuted:   "#212e3f", // bg2
		BorderFocus:   "#719cd6", // blue
		Text:          "#cdcecf", // fg1
		Muted:         "#738091", // comment
		Faint:         "#71839b", // fg3
		Accent:        "#719cd6", // blue
		Success:       "#81b29a", // green
		Warning:       "#dbc074", // yellow
		Danger:        "#c94f6d", // red
		Info:          "#63cdcf", // cyan
	}
}

func kanagawaTheme() Theme {
	// https://github.com/rebelot/kanagawa.nvim
	return Theme{
		Name:          "Kanagawa",
		Background:    "#16161D", // sumiInk0
		Surface:       "#1F1F28", // sumiInk3
		SurfaceAlt:    "#2A2A37", // sumiInk4
		FocusBg:       "#2A2A37", // sumiInk4
		SelectionBg:   "#2D4F67", // waveBlue1
		SelectionText: "#DCD7BA", // fujiWhite
		Border:        "#54546D", // sumiInk6
		BorderMuted:   "#2A2A37", // sumiInk4
		BorderFocus:   "#7E9CD8", // crystalBlue
		Text:          "#DCD7BA", // fujiWhite
		Muted:         "#C8C093", // oldWhite
		Faint:         "#727169", // fujiGray
		Accent:        "#7E9CD8", // crystalBlue
		Success:       "#98BB6C", // springGreen
		Warning:       "#E6C384", // carpYellow
		Danger:        "#E46876", // waveRed
		Info:          "#7FB4CA", // springBlue
	}
}

func slateTheme() Theme {
	// Tailwind CSS slate/sky: https://tailwindcss.com/docs/colors
	return Theme{
		Name:          "Slate",
		Background:    "#020617", // slate-950
		Surface:       "#0f172a", // slate-900
		SurfaceAlt:    "#1e293b", // slate-800
		FocusBg:       "#283548",
		SelectionBg:   "#0284c7", // sky-600
		SelectionText: "#f8fafc", // slate-50
		Border:        "#334155", // slate-700
		BorderMuted:   "#1e293b", // slate-800
		BorderFocus:   "#38bdf8", // sky-400
		Text:          "#f1f5f9", // slate-100
		Muted:         "#94a3b8", // slate-400
		Faint:         "#64748b", // slate-500
		Accent:        "#38bdf8", // sky-400
		Success:       "#22c55e", // green-500
		Warning:       "#f59e0b", // amber-500
		Danger:        "#ef4444", // red-500
		Info:          "#06b6d4", // cyan-500
	}
}
