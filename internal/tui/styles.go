package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	title, success, pending, accent, muted, errorText lipgloss.Style
	selected, done, help, tab, tabActive, panel, bar   lipgloss.Style
}

func newStyles(theme string) styles {
	green, orange, blue, red := lipgloss.Color("42"), lipgloss.Color("214"), lipgloss.Color("12"), lipgloss.Color("9")
	border := lipgloss.RoundedBorder()
	switch strings.ToLower(theme) {
	case "neon":
		green, orange, blue = lipgloss.Color("48"), lipgloss.Color("227"), lipgloss.Color("51")
	case "mono":
		green, orange, blue, red = "", "", "", ""
		border = lipgloss.NormalBorder()
	}
	return styles{
		title:     lipgloss.NewStyle().Bold(true),
		success:   lipgloss.NewStyle().Foreground(green),
		pending:   lipgloss.NewStyle().Foreground(orange),
		accent:    lipgloss.NewStyle().Foreground(blue),
		muted:     lipgloss.NewStyle().Faint(true),
		errorText: lipgloss.NewStyle().Foreground(red).Bold(true),
		selected:  lipgloss.NewStyle().Bold(true).Reverse(true),
		done:      lipgloss.NewStyle().Faint(true).Strikethrough(true),
		help:      lipgloss.NewStyle().Faint(true),
		tab:       lipgloss.NewStyle().Faint(true).Padding(0, 1),
		tabActive: lipgloss.NewStyle().Bold(true).Underline(true).Foreground(blue).Padding(0, 1),
		panel:     lipgloss.NewStyle().Border(border).BorderForeground(lipgloss.Color("8")).Padding(0, 1),
		bar:       lipgloss.NewStyle().Border(border).BorderForeground(lipgloss.Color("8")).Padding(0, 1),
	}
}
