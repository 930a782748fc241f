// Package tui provides the terminal user interface for VeriWise.
package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	colorBorder   = lipgloss.Color("#3b4261")
	colorPrimary  = lipgloss.Color("#54a0ff")
	colorAccent   = lipgloss.Color("#00d2d3")
	colorError    = lipgloss.Color("#f7768e")
	colorText     = lipgloss.Color("#c0caf5")
	colorTextDim  = lipgloss.Color("#565f89")
	colorTextMute = lipgloss.Color("#414868")
	colorUser     = lipgloss.Color("#9ece6a")
)

var (
	headerStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 2).
			MarginBottom(1)

	titleStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(colorTextDim)

	messagesAreaStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(colorBorder).
				Padding(1)

	userLabelStyle = lipgloss.NewStyle().
			Foreground(colorUser).
			Bold(true).
			MarginLeft(4)

	userBubbleStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorUser).
			Padding(0, 1).
			MarginLeft(4)

	assistantLabelStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	assistantBubbleStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary).
				Foreground(colorText).
				Padding(0, 1).
				MarginRight(4)

	attachmentLineStyle = lipgloss.NewStyle().
				Foreground(colorAccent).
				Italic(true)

	inputPanelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1).
			MarginTop(1)

	inputLabelStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true).
			MarginRight(1)

	loadingStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorTextMute).
			MarginTop(1)

	statusKeyStyle = lipgloss.NewStyle().
			Foreground(colorTextDim).
			Bold(true)

	statusDescStyle = lipgloss.NewStyle().
			Foreground(colorTextMute)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	welcomeStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(1, 2).
			Align(lipgloss.Center)

	welcomeTitleStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	selectorHeaderStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true).
				MarginBottom(1)

	selectorItemStyle = lipgloss.NewStyle().
				Foreground(colorText).
				PaddingLeft(2)

	selectorSelectedStyle = lipgloss.NewStyle().
				Foreground(colorAccent).
				Bold(true)

	selectorDimStyle = lipgloss.NewStyle().
				Foreground(colorTextDim).
				PaddingLeft(2)
)
