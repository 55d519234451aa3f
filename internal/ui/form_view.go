package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/dreamline/internal/form"
	"github.com/five82/dreamline/internal/state"
)

// renderForm renders the dream field, the button and the result region.
func (m Model) renderForm() string {
	styles := m.theme.Styles()
	panelWidth := m.contentWidth() + 2

	inputPanel := styles.Panel
	if m.focus == focusInput {
		inputPanel = styles.PanelFocused
	}

	blocks := []string{
		styles.AccentText.Bold(true).Render("Your dream"),
		inputPanel.Width(panelWidth).Render(m.input.View()),
		m.renderButton(styles),
		"",
		styles.AccentText.Bold(true).Render("Interpretation"),
		styles.Panel.Width(panelWidth).Render(m.renderResult(styles)),
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

// renderButton draws the trigger from the store's enabled state and label.
func (m Model) renderButton(styles Styles) string {
	label := m.snapshot.TriggerLabel
	if label == "" {
		label = form.IdleLabel
	}

	style := styles.Button
	switch {
	case m.buttonDisabled():
		style = styles.ButtonDisabled
	case m.focus == focusButton:
		style = styles.ButtonFocused
	}
	return style.Render(label)
}

// buttonDisabled reports whether the controller has disabled the trigger.
// A store that has never been touched has no label yet and counts as enabled.
func (m Model) buttonDisabled() bool {
	return m.snapshot.TriggerLabel != "" && !m.snapshot.TriggerEnabled
}

// renderResult renders whichever content the result region holds.
func (m Model) renderResult(styles Styles) string {
	switch m.snapshot.Region {
	case state.RegionLoading:
		return m.spinner.View() + " " + styles.MutedText.Render("Reading the symbols in your dream...")
	case state.RegionMessage:
		return m.result.View()
	default:
		return styles.FaintText.Render("Your interpretation will appear here.")
	}
}

// refreshResult rewraps the message into the result viewport when it changes.
func (m *Model) refreshResult() {
	if m.snapshot.Region != state.RegionMessage {
		m.shownMessage = ""
		return
	}
	if m.snapshot.Message == m.shownMessage {
		return
	}
	m.shownMessage = m.snapshot.Message

	styles := m.theme.Styles()
	style := styles.Text
	switch m.snapshot.Message {
	case form.FailureMessage:
		style = styles.DangerText
	case form.PromptMessage, form.FallbackMessage:
		style = styles.WarningText
	}
	if m.result.Width > 0 {
		style = style.Width(m.result.Width)
	}
	m.result.SetContent(style.Render(m.snapshot.Message))
	m.result.GotoTop()
}

// renderFooter renders key hints and any transient notice.
func (m Model) renderFooter() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	parts := []string{m.help.ShortHelpView(m.keys.ShortHelp())}
	if m.notice != "" {
		parts = append(parts, bg.Render("!", styles.WarningText.Bold(true))+bg.Space()+
			bg.Render(truncate(m.notice, 60), styles.WarningText))
	}
	return styles.Footer.Width(m.width).Render(bg.Join(parts, "  "))
}
