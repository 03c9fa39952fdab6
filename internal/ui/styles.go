// Package ui provides terminal styling for ustriage report output.
// The original triage script hand-rolled ANSI escapes; here the palette is
// expressed as adaptive lipgloss styles so light and dark terminals both
// stay readable.
package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	// ColorExpired flags bugs dormant past their threshold.
	ColorExpired = lipgloss.AdaptiveColor{
		Light: "#f2ae49",
		Dark:  "#ffb454",
	}
	// ColorHeader is used for report category headers.
	ColorHeader = lipgloss.AdaptiveColor{
		Light: "#399ee6",
		Dark:  "#59c2ff",
	}
	// ColorMuted is used for omission markers and de-emphasized text.
	ColorMuted = lipgloss.AdaptiveColor{
		Light: "#828c99",
		Dark:  "#6c7680",
	}
)

var (
	ExpiredStyle = lipgloss.NewStyle().Foreground(ColorExpired)
	HeaderStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorHeader)
	MutedStyle   = lipgloss.NewStyle().Foreground(ColorMuted)
)

// Init configures the color profile for the process. Plain ASCII output is
// forced when the terminal does not support color or NO_COLOR is set, and
// unconditionally when noColor is true.
func Init(noColor bool) {
	if noColor || termenv.EnvNoColor() {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	lipgloss.SetColorProfile(termenv.ColorProfile())
}

// RenderExpired renders an expiry annotation.
func RenderExpired(s string) string {
	return ExpiredStyle.Render(s)
}

// RenderHeader renders a report category header.
func RenderHeader(s string) string {
	return HeaderStyle.Render(s)
}

// RenderMuted renders de-emphasized text.
func RenderMuted(s string) string {
	return MutedStyle.Render(s)
}
