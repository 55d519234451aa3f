package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/five82/dreamline/internal/interpret"
)

// renderHeader renders the title, interpreter URL and reachability.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < LayoutCompactWidth

	parts := []string{bg.Render("dreamline", styles.Logo)}

	if !compact && m.apiURL != "" {
		parts = append(parts,
			bg.Render("API", styles.FaintText)+bg.Space()+
				bg.Render(truncateMiddle(m.apiURL, 48), styles.MutedText))
	}

	parts = append(parts, m.renderReachability(styles, bg))

	if m.snapshot.HasProbe && !compact {
		parts = append(parts, bg.Render("checked "+m.snapshot.LastProbe.Format("15:04:05"), styles.FaintText))
	}

	if m.currentView == ViewDiagnostics {
		parts = append(parts, bg.Render("DIAGNOSTICS", styles.InfoText.Bold(true)))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// renderReachability summarises the health probe.
func (m Model) renderReachability(styles Styles, bg BgStyle) string {
	snap := m.snapshot
	switch {
	case !snap.HasProbe:
		return bg.Render("● connecting", styles.WarningText)
	case snap.IsOffline():
		return bg.Render("● "+classifyConnectionError(snap.LastProbeError), styles.DangerText)
	case snap.ConsecutiveFailures > 0:
		return bg.Render("● retrying", styles.WarningText.Bold(true))
	default:
		return bg.Render("● online", styles.SuccessText)
	}
}

// classifyConnectionError returns a short description of the probe error.
func classifyConnectionError(err error) string {
	if err == nil {
		return ""
	}
	var statusErr *interpret.StatusError
	if errors.As(err, &statusErr) {
		return fmt.Sprintf("HTTP %d", statusErr.Status)
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "OFFLINE"
	case strings.Contains(msg, "no such host"):
		return "HOST NOT FOUND"
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline exceeded"):
		return "TIMEOUT"
	default:
		return "ERROR"
	}
}
