package commands

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tahcohcat/voicegen/internal/speech"
)

var (
	primary = lipgloss.Color("#00ff9f")
	dim     = lipgloss.Color("#6e7681")
	danger  = lipgloss.Color("#ff5f56")

	TitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(primary)
	HelpStyle    = lipgloss.NewStyle().Foreground(dim)
	ErrorStyle   = lipgloss.NewStyle().Bold(true).Foreground(danger)
	CaptionStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primary).
			Padding(0, 1)
)

// renderCaption frames the generated sentence.
func renderCaption(caption string) string {
	return CaptionStyle.Render(caption)
}

// renderStatus is the one-line summary printed on every state change.
func renderStatus(s speech.Snapshot) string {
	switch s.Phase {
	case speech.Loading:
		return HelpStyle.Render("Generating " + strings.ToLower(string(s.Persona)) + " speech...")
	case speech.Failed:
		return ErrorStyle.Render(s.Error)
	case speech.Success:
		return renderCaption(s.Caption)
	default:
		return HelpStyle.Render("Ready.")
	}
}
