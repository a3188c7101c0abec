package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/task-cli/internal/task"
)

var (
	colorAccent = lipgloss.Color("#20B9B4")
	colorMuted  = lipgloss.Color("#6C7A89")
	colorTodo   = lipgloss.Color("#F4D03F")
	colorDoing  = lipgloss.Color("#3498DB")
	colorDone   = lipgloss.Color("#2ECC71")
	colorError  = lipgloss.Color("#E74C3C")
)

var styles = struct {
	Title   lipgloss.Style
	Section lipgloss.Style
	Muted   lipgloss.Style
	Error   lipgloss.Style
	Filter  lipgloss.Style
	Counts  lipgloss.Style
}{
	Title:   lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
	Section: lipgloss.NewStyle().Bold(true),
	Muted:   lipgloss.NewStyle().Foreground(colorMuted),
	Error:   lipgloss.NewStyle().Foreground(colorError),
	Filter:  lipgloss.NewStyle().Foreground(colorAccent).Italic(true),
	Counts: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorMuted).
		Padding(0, 1),
}

func statusStyle(s task.Status) lipgloss.Style {
	switch s {
	case task.StatusInProgress:
		return lipgloss.NewStyle().Foreground(colorDoing)
	case task.StatusDone:
		return lipgloss.NewStyle().Foreground(colorDone)
	default:
		return lipgloss.NewStyle().Foreground(colorTodo)
	}
}

func statusIcon(s task.Status) string {
	switch s {
	case task.StatusInProgress:
		return ">"
	case task.StatusDone:
		return "x"
	default:
		return " "
	}
}
