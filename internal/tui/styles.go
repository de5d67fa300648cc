package tui

import "github.com/charmbracelet/lipgloss"

// Author colors match the ANSI terminal transcript: me green, others blue.
var (
	colorMe     = lipgloss.Color("10")  // bright green
	colorOther  = lipgloss.Color("12")  // bright blue
	colorDim    = lipgloss.Color("240") // gray
	colorCursor = lipgloss.Color("11")  // bright yellow
	colorBorder = lipgloss.Color("238") // dark gray

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(colorOther).
				Bold(true)

	styleInput = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	styleCursor = lipgloss.NewStyle().
			Foreground(colorCursor).
			Bold(true)

	styleTimestamp = lipgloss.NewStyle().
			Foreground(colorDim)

	styleSnippet = lipgloss.NewStyle().
			Foreground(colorDim)

	styleAuthorMe = lipgloss.NewStyle().
			Foreground(colorMe).
			Bold(true)

	styleAuthorOther = lipgloss.NewStyle().
				Foreground(colorOther)

	styleAuthorSystem = lipgloss.NewStyle().
				Foreground(colorDim).
				Italic(true)

	styleEmpty = lipgloss.NewStyle().
			Foreground(colorDim).
			Align(lipgloss.Center, lipgloss.Center)

	stylePanelBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorBorder)

	styleActiveBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorOther)

	styleStatusBar = lipgloss.NewStyle().
			Foreground(colorDim).
			Padding(0, 1)
)
