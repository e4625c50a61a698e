package output

import "github.com/charmbracelet/lipgloss"

// Styles is the shared style set for terminal rendering.
type Styles struct {
	Success  lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style
	Info     lipgloss.Style
	Hint     lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style
	FilePath lipgloss.Style
}

func newStyles() Styles {
	return Styles{
		Success:  lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "42"}),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "196"}).Bold(true),
		Warning:  lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "130", Dark: "214"}),
		Info:     lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "25", Dark: "39"}),
		Hint:     lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "243", Dark: "246"}),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "245", Dark: "240"}),
		Bold:     lipgloss.NewStyle().Bold(true),
		FilePath: lipgloss.NewStyle().Underline(true),
	}
}

// SeverityStyle returns the style for a severity name as produced by
// lint.Severity.String.
func (s Styles) SeverityStyle(severity string) lipgloss.Style {
	switch severity {
	case "error":
		return s.Error
	case "warning":
		return s.Warning
	case "info":
		return s.Info
	case "hint":
		return s.Hint
	default:
		return s.Muted
	}
}
