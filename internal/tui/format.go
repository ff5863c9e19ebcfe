package tui

import (
	"fmt"
	"strconv"
	"time"
)

const ellipsis = "..."

// FormatViewerCount abbreviates counts of a thousand or more, e.g. 12345 -> "12.3K".
func FormatViewerCount(count int) string {
	if count >= 1000 {
		return fmt.Sprintf("%.1fK", float64(count)/1000)
	}
	return strconv.Itoa(count)
}

// Truncate cuts s to limit runes and appends an ellipsis when anything was cut.
func Truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + ellipsis
}

// fitColumn truncates or pads s to exactly width runes.
func fitColumn(s string, width int) string {
	runes := []rune(s)
	if len(runes) > width {
		runes = runes[:width]
	}
	return fmt.Sprintf("%-*s", width, string(runes))
}

func formatUptime(d time.Duration) string {
	d = d.Truncate(time.Minute)
	hours := int(d / time.Hour)
	minutes := int((d % time.Hour) / time.Minute)
	if hours == 0 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh%02dm", hours, minutes)
}
