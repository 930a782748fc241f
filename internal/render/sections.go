package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/AryaMundra/VeriWise/internal/normalize"
)

var (
	sectionTitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#54a0ff")).
				Bold(true)

	sectionBlockStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderLeft(true).
				BorderForeground(lipgloss.Color("#444444")).
				PaddingLeft(1)

	fieldLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9ece6a")).
			Bold(true)

	fallbackStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)
)

// Sections renders normalized sections as styled terminal text.
func Sections(sections []normalize.Section) string {
	var sb strings.Builder

	for i, sec := range sections {
		if i > 0 {
			sb.WriteString("\n")
		}

		if sec.Kind == normalize.KindFallback {
			sb.WriteString(fallbackStyle.Render(sec.Title))
			sb.WriteString("\n")
			continue
		}

		sb.WriteString(sectionTitleStyle.Render(sec.Title))
		sb.WriteString("\n")

		var lines []string
		for _, f := range sec.Fields {
			lines = append(lines, fieldLabelStyle.Render(f.Label+":")+" "+f.Value)
		}
		sb.WriteString(sectionBlockStyle.Render(strings.Join(lines, "\n")))
		sb.WriteString("\n")
	}

	return sb.String()
}

// SectionsMarkdown renders normalized sections as markdown, suitable for
// glamour rendering or file export.
func SectionsMarkdown(sections []normalize.Section) string {
	var sb strings.Builder

	for _, sec := range sections {
		fmt.Fprintf(&sb, "## %s\n\n", sec.Title)
		if sec.Kind == normalize.KindFallback {
			continue
		}
		for _, f := range sec.Fields {
			fmt.Fprintf(&sb, "**%s:** %s\n\n", f.Label, f.Value)
		}
	}

	return sb.String()
}
