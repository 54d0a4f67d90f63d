package tray

import (
	"fmt"

	"pomobar/internal/i18n"
)

// FormatTitle renders the countdown as H:MM:SS from one hour upwards and MM:SS below.
func FormatTitle(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	totalMinutes := seconds / 60
	secs := seconds % 60
	if totalMinutes >= 60 {
		return fmt.Sprintf("%d:%02d:%02d", totalMinutes/60, totalMinutes%60, secs)
	}
	return fmt.Sprintf("%02d:%02d", totalMinutes, secs)
}

// FormatDuration renders a work duration as "25 min", "1h" or "1h 30m".
func FormatDuration(seconds int) string {
	minutes := seconds / 60
	if minutes < 60 {
		return fmt.Sprintf("%d %s", minutes, i18n.T("min"))
	}
	hours := minutes / 60
	rest := minutes % 60
	if rest == 0 {
		return fmt.Sprintf("%d%s", hours, i18n.T("h"))
	}
	return fmt.Sprintf("%d%s %d%s", hours, i18n.T("h"), rest, i18n.T("m"))
}

// WorkDurationLabel is the text of the work duration menu entry.
func WorkDurationLabel(seconds int) string {
	return fmt.Sprintf(i18n.T("Work duration: %s"), FormatDuration(seconds))
}
