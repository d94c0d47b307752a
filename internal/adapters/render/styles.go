package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/parknav/parknav/internal/ui/style"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(style.Teal)

	labelStyle = lipgloss.NewStyle().
			Foreground(style.Slate)

	savedStyle = lipgloss.NewStyle().
			Foreground(style.Green)

	noSavingStyle = lipgloss.NewStyle().
			Foreground(style.Slate).
			Faint(true)
)
