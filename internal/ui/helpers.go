package ui

import (
	"strings"
	"time"
)

// truncate shortens s to at most width runes, appending an ellipsis.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}

// pad right-pads s with spaces to at least width runes.
func pad(s string, width int) string {
	if delta := width - len([]rune(s)); delta > 0 {
		return s + strings.Repeat(" ", delta)
	}
	return s
}

// formatUploadedAt renders an upload timestamp for list rows.
func formatUploadedAt(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	since := time.Since(t)
	switch {
	case since < time.Hour:
		return "just now"
	case since < 24*time.Hour:
		return t.Format("15:04")
	default:
		return t.Format("2006-01-02")
	}
}

// joinNonEmpty joins the non-empty parts with sep.
func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
