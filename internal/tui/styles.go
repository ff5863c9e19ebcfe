package tui

import (
	"twitch-monitor/internal/config"

	"github.com/charmbracelet/lipgloss"
)

// Role names what a piece of text means on screen; a Styler decides how it looks.
type Role int

const (
	RoleHeading Role = iota
	RoleSuccess
	RoleWarning
	RoleError
	RoleEmphasis
	RoleMuted
	RoleAccent
)

var roleNames = map[Role]string{
	RoleHeading:  "heading",
	RoleSuccess:  "success",
	RoleWarning:  "warning",
	RoleError:    "error",
	RoleEmphasis: "emphasis",
	RoleMuted:    "muted",
	RoleAccent:   "accent",
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "unknown"
}

type Styler interface {
	Style(role Role, text string) string
}

// PlainStyler returns text unchanged.
type PlainStyler struct{}

func (PlainStyler) Style(_ Role, text string) string {
	return text
}

type themeStyler struct {
	styles map[Role]lipgloss.Style
}

func NewThemeStyler(theme config.Theme) Styler {
	fg := func(hex string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
	}

	return themeStyler{
		styles: map[Role]lipgloss.Style{
			RoleHeading:  fg(theme.Sky).Bold(true),
			RoleSuccess:  fg(theme.Green).Bold(true),
			RoleWarning:  fg(theme.Yellow),
			RoleError:    fg(theme.Red),
			RoleEmphasis: fg(theme.Text).Bold(true),
			RoleMuted:    fg(theme.Overlay1),
			RoleAccent:   fg(theme.Sapphire),
		},
	}
}

func (s themeStyler) Style(role Role, text string) string {
	style, ok := s.styles[role]
	if !ok {
		return text
	}
	return style.Render(text)
}
