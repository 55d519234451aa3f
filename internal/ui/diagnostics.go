package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/dreamline/internal/logtail"
)

// diagnosticsState holds the client log tail.
type diagnosticsState struct {
	viewport viewport.Model
	lines    []string
	err      error
	loaded   bool
	loadedAt time.Time
}

type diagnosticsMsg struct {
	lines []string
	err   error
}

// loadDiagnostics reads the log tail off the update loop.
func (m Model) loadDiagnostics() tea.Cmd {
	path := m.logPath
	return func() tea.Msg {
		if path == "" {
			return diagnosticsMsg{}
		}
		lines, err := logtail.Read(path, DiagnosticsLines)
		return diagnosticsMsg{lines: lines, err: err}
	}
}

// handleDiagnostics stores a fresh tail, following the end of the log unless
// the user has scrolled up.
func (m *Model) handleDiagnostics(msg diagnosticsMsg) {
	follow := !m.diagnostics.loaded || m.diagnostics.viewport.AtBottom()
	m.diagnostics.lines = msg.lines
	m.diagnostics.err = msg.err
	m.diagnostics.loaded = true
	m.diagnostics.loadedAt = time.Now()
	m.diagnostics.viewport.SetContent(m.formatDiagnostics())
	if follow {
		m.diagnostics.viewport.GotoBottom()
	}
}

func (m Model) handleDiagnosticsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
		return m, nil
	case key.Matches(msg, m.keys.Top):
		m.diagnostics.viewport.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.diagnostics.viewport.GotoBottom()
		return m, nil
	}
	var cmd tea.Cmd
	m.diagnostics.viewport, cmd = m.diagnostics.viewport.Update(msg)
	return m, cmd
}

// formatDiagnostics colours each log line by level.
func (m Model) formatDiagnostics() string {
	styles := m.theme.Styles()
	d := m.diagnostics

	if d.err != nil {
		return styles.DangerText.Render(fmt.Sprintf("Could not read %s: %v", m.logPath, d.err))
	}
	if m.logPath == "" {
		return styles.FaintText.Render("Client logging is disabled.")
	}
	if len(d.lines) == 0 {
		return styles.FaintText.Render("No log entries yet in " + m.logPath)
	}

	width := d.viewport.Width
	bg := NewBgStyle(m.theme.Surface)
	out := make([]string, len(d.lines))
	for i, line := range d.lines {
		if width > 0 {
			line = truncate(line, width)
		}
		var styled string
		switch logtail.ParseLevel(line) {
		case logtail.LevelError:
			styled = styles.DangerText.Render(line)
		case logtail.LevelWarn:
			styled = styles.WarningText.Render(line)
		case logtail.LevelDebug:
			styled = styles.FaintText.Render(line)
		default:
			styled = styles.Text.Render(line)
		}
		// Full-width rows keep the surface color behind short lines.
		if width > 0 {
			styled = bg.FillLine(styled, width)
		}
		out[i] = styled
	}
	return strings.Join(out, "\n")
}

// renderDiagnostics renders the log tail view.
func (m Model) renderDiagnostics() string {
	styles := m.theme.Styles()
	title := styles.AccentText.Bold(true).Render("Client log") + "  " +
		styles.MutedText.Render(truncateMiddle(m.logPath, max(10, m.width-14)))
	return title + "\n" + m.diagnostics.viewport.View()
}
