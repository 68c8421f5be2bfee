package tui

import (
	"strings"
	"time"
)

// truncate shortens a string to max runes with ellipsis
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}

// repeat creates a string by repeating s n times
func repeat(s string, n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(s, n)
}

// formatDue renders a due date relative to now
func formatDue(due *time.Time, now time.Time) string {
	if due == nil {
		return ""
	}
	d := due.In(now.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, now.Location()); {
	case day.Equal(today):
		return "today"
	case day.Equal(today.AddDate(0, 0, 1)):
		return "tomorrow"
	case day.Year() != today.Year():
		return d.Format("Jan 2 2006")
	}
	return d.Format("Jan 2")
}
