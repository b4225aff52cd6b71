package util

import "fmt"

// ANSI color codes
var (
	ColorReset  = "\033[0m"
	ColorGrey   = "\033[90m"
	ColorGreen  = "\033[32m"
	ColorRed    = "\033[31m"
	ColorYellow = "\033[33m"
)

// Colorizef formats a string with the given color and resets the color afterwards
func Colorizef(color string, format string, a ...any) string {
	return fmt.Sprintf("%s%s%s", color, fmt.Sprintf(format, a...), ColorReset)
}

// StatusColor returns the color for a step or summary status
func StatusColor(status string) string {
	switch status {
	case "success":
		return ColorGreen
	case "error", "failed":
		return ColorRed
	case "skipped":
		return ColorGrey
	default:
		return ColorYellow
	}
}

// StatusMark returns the single-character marker shown next to a status
func StatusMark(status string) string {
	switch status {
	case "success":
		return "✓"
	case "error", "failed":
		return "✗"
	case "skipped":
		return "-"
	default:
		return "…"
	}
}
