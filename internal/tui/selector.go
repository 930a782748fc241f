package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// updateSessionSelector handles input while the session selector overlay is
// open.
func (m Model) updateSessionSelector(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	sessions := m.store.Sessions()

	switch keyMsg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc", "q":
		m.selectingSession = false

	case "up", "k":
		if m.sessionCursor > 0 {
			m.sessionCursor--
		}

	case "down", "j":
		if m.sessionCursor < len(sessions)-1 {
			m.sessionCursor++
		}

	case "enter":
		if m.sessionCursor < len(sessions) {
			if m.store.SwitchSession(sessions[m.sessionCursor].ID) {
				// Staged input belongs to the thread it was staged in
				m.attachments.Clear()
				m.textarea.Reset()
			}
		}
		m.selectingSession = false
		m.updateViewport()
		m.viewport.GotoBottom()

	case "n":
		m.attachments.Clear()
		m.textarea.Reset()
		if _, err := m.store.CreateSession(); err != nil {
			m.err = err
		}
		m.selectingSession = false
		m.updateViewport()

	case "d":
		if m.sessionCursor < len(sessions) {
			if err := m.store.DeleteSession(sessions[m.sessionCursor].ID); err != nil {
				m.err = err
			}
			if m.sessionCursor >= m.store.Len() && m.sessionCursor > 0 {
				m.sessionCursor--
			}
			m.updateViewport()
		}
	}

	return m, nil
}

// renderSessionSelector renders the session selector overlay
func (m Model) renderSessionSelector() string {
	var sb strings.Builder

	sb.WriteString(selectorHeaderStyle.Render("  Sessions"))
	sb.WriteString("\n\n")

	sessions := m.store.Sessions()
	if len(sessions) == 0 {
		sb.WriteString(selectorDimStyle.Render("No sessions yet. Press n to start one."))
		sb.WriteString("\n")
	}

	activeID := m.store.ActiveID()
	for i, sess := range sessions {
		line := fmt.Sprintf("%s (%d messages)", sess.Title, len(sess.Messages))
		if sess.ID == activeID {
			line += " ●"
		}

		if i == m.sessionCursor {
			sb.WriteString(selectorSelectedStyle.Render("> " + line))
		} else {
			sb.WriteString(selectorItemStyle.Render(line))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	help := []string{
		statusKeyStyle.Render("↑↓") + statusDescStyle.Render(" Navigate"),
		statusKeyStyle.Render("Enter") + statusDescStyle.Render(" Switch"),
		statusKeyStyle.Render("n") + statusDescStyle.Render(" New"),
		statusKeyStyle.Render("d") + statusDescStyle.Render(" Delete"),
		statusKeyStyle.Render("Esc") + statusDescStyle.Render(" Back"),
	}
	sb.WriteString(statusBarStyle.Render(strings.Join(help, "  │  ")))

	return lipgloss.NewStyle().Padding(1, 2).Render(sb.String())
}
