package tui

import (
	"strconv"
	"strings"
)

const exitHint = "(Press q or Ctrl+C to exit)"

func (r Renderer) Divider() string {
	return r.style(RoleMuted, "  "+strings.Repeat("─", screenWidth-2))
}

// StatusLine is the countdown shown under the dashboard.
func (r Renderer) StatusLine(secondsRemaining int) string {
	return r.style(RoleMuted, "  Next check in ") +
		r.style(RoleWarning, strconv.Itoa(secondsRemaining)) +
		r.style(RoleMuted, " seconds... "+exitHint)
}

func (m Model) footerView() string {
	var line string
	switch m.state {
	case StateCountingDown:
		line = m.renderer.StatusLine(m.remaining)
	case StatePolling:
		line = m.renderer.style(RoleMuted, "  Checking now... "+exitHint)
	default:
		line = m.renderer.style(RoleMuted, "  "+exitHint)
	}

	return m.renderer.Divider() + "\n" + line
}
