package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"twitch-monitor/internal/twitch"

	"github.com/charmbracelet/lipgloss"
)

const (
	screenWidth    = 78
	titleLimit     = 55
	gameLimit      = 20
	offlineColumns = 3
	offlineWidth   = 22
)

const bannerTitle = "TWITCH STREAM MONITOR"

// Renderer turns a snapshot into a screen. It keeps no state between calls.
type Renderer struct {
	styler     Styler
	dateFormat string
}

func NewRenderer(styler Styler, dateFormat string) Renderer {
	if styler == nil {
		styler = PlainStyler{}
	}
	return Renderer{styler: styler, dateFormat: dateFormat}
}

// Render draws the whole dashboard including the countdown line.
func (r Renderer) Render(snapshot twitch.Snapshot, lastUpdate time.Time, secondsRemaining int) string {
	return r.Body(snapshot, lastUpdate) + "\n" + r.Divider() + "\n" + r.StatusLine(secondsRemaining)
}

func (r Renderer) Body(snapshot twitch.Snapshot, lastUpdate time.Time) string {
	live := snapshot.Live()
	offline := snapshot.Offline()

	var sb strings.Builder
	sb.WriteString(r.banner())
	sb.WriteString("\n\n")
	sb.WriteString(r.summary(len(live), len(offline), len(snapshot)))
	sb.WriteString("\n")
	sb.WriteString(r.style(RoleMuted, "  Last Update: "+lastUpdate.Format(r.dateFormat)))
	sb.WriteString("\n\n")

	if len(live) > 0 {
		sb.WriteString(r.liveSection(live, lastUpdate))
	}
	if len(offline) > 0 {
		sb.WriteString(r.offlineSection(offline))
	}

	return sb.String()
}

// RenderStarting is shown until the first snapshot arrives.
func (r Renderer) RenderStarting(channels int, authenticated bool) string {
	lines := []string{
		r.style(RoleHeading, "Initializing Twitch Stream Monitor..."),
		r.style(RoleMuted, fmt.Sprintf("Monitoring %d streamers", channels)),
	}
	if authenticated {
		lines = append(lines, r.style(RoleSuccess, "✓ Successfully authenticated with Twitch API"))
	}
	return strings.Join(lines, "\n")
}

// RenderError is shown while waiting out a failed poll.
func (r Renderer) RenderError(err error, at time.Time, interval time.Duration) string {
	lines := []string{
		"",
		r.style(RoleError, fmt.Sprintf("[%s] Error checking status: %v", at.Format(r.dateFormat), err)),
		r.style(RoleWarning, fmt.Sprintf("Retrying in %d seconds...", int(interval/time.Second))),
	}

	var fetchErr *twitch.FetchError
	if errors.As(err, &fetchErr) && fetchErr.Unauthorized() {
		lines = append(lines, r.style(RoleMuted, "The access token was rejected; restart the monitor to authenticate again."))
	}

	return strings.Join(lines, "\n")
}

func (r Renderer) banner() string {
	border := strings.Repeat("═", screenWidth)
	title := lipgloss.PlaceHorizontal(screenWidth, lipgloss.Center, bannerTitle)

	lines := []string{
		r.style(RoleHeading, "╔"+border+"╗"),
		r.style(RoleHeading, "║") + r.style(RoleEmphasis, title) + r.style(RoleHeading, "║"),
		r.style(RoleHeading, "╚"+border+"╝"),
	}
	return strings.Join(lines, "\n")
}

func (r Renderer) summary(live, offline, total int) string {
	return r.style(RoleEmphasis, "  Status: ") +
		r.style(RoleSuccess, fmt.Sprintf("%d LIVE", live)) +
		r.style(RoleEmphasis, " / ") +
		r.style(RoleError, fmt.Sprintf("%d OFFLINE", offline)) +
		r.style(RoleEmphasis, fmt.Sprintf(" / %d Total", total))
}

func (r Renderer) liveSection(live []twitch.ChannelStatus, lastUpdate time.Time) string {
	var sb strings.Builder
	sb.WriteString(r.style(RoleSuccess, "  ● LIVE STREAMS") + "\n")
	sb.WriteString(r.style(RoleSuccess, "  "+strings.Repeat("─", screenWidth-2)) + "\n")

	bar := r.style(RoleSuccess, "  │")
	for _, status := range live {
		viewers := r.style(RoleWarning, FormatViewerCount(status.ViewerCount))
		if !status.StartedAt.IsZero() && lastUpdate.After(status.StartedAt) {
			viewers += "   " + r.style(RoleEmphasis, "Uptime:") + " " + formatUptime(lastUpdate.Sub(status.StartedAt))
		}

		sb.WriteString(r.style(RoleSuccess, "  ┌─ "+strings.ToUpper(status.Name)) + "\n")
		sb.WriteString(bar + "  " + r.style(RoleEmphasis, "Title:") + " " + Truncate(status.Title, titleLimit) + "\n")
		sb.WriteString(bar + "  " + r.style(RoleEmphasis, "Game:") + " " + r.style(RoleAccent, Truncate(status.Game, gameLimit)) + "\n")
		sb.WriteString(bar + "  " + r.style(RoleEmphasis, "Viewers:") + " " + viewers + "\n")
		sb.WriteString(r.style(RoleSuccess, "  └"+strings.Repeat("─", screenWidth-4)) + "\n")
		sb.WriteString("\n")
	}

	return sb.String()
}

func (r Renderer) offlineSection(offline []twitch.ChannelStatus) string {
	var sb strings.Builder
	sb.WriteString(r.style(RoleError, "  ○ OFFLINE") + "\n")
	sb.WriteString(r.style(RoleError, "  "+strings.Repeat("─", screenWidth-2)) + "\n")

	for i := 0; i < len(offline); i += offlineColumns {
		end := min(i+offlineColumns, len(offline))
		for _, status := range offline[i:end] {
			sb.WriteString(r.style(RoleError, "  • "+fitColumn(status.Name, offlineWidth)))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	return sb.String()
}

func (r Renderer) style(role Role, text string) string {
	return r.styler.Style(role, text)
}
