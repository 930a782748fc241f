package export

import (
	"fmt"
	"io"
	"time"

	"github.com/AryaMundra/VeriWise/internal/models"
	"github.com/AryaMundra/VeriWise/internal/normalize"
	"github.com/AryaMundra/VeriWise/internal/render"
)

// MarkdownExporter exports sessions as a readable Markdown transcript.
// Assistant payloads are written as their normalized sections, not raw JSON.
type MarkdownExporter struct{}

func (e *MarkdownExporter) Export(session *models.Session, w io.Writer) error {
	_, _ = fmt.Fprintf(w, "# %s\n\n", session.Title)
	_, _ = fmt.Fprintf(w, "**Session:** %s  \n", session.ID)
	_, _ = fmt.Fprintf(w, "**Created:** %s  \n", session.CreatedAt.Format(time.RFC3339))
	_, _ = fmt.Fprintf(w, "**Messages:** %d\n\n", len(session.Messages))
	_, _ = fmt.Fprintf(w, "---\n\n")

	for i, msg := range session.Messages {
		switch msg.Role {
		case models.RoleUser:
			_, _ = fmt.Fprintf(w, "**You:**\n\n")
			if msg.Text != "" {
				_, _ = fmt.Fprintf(w, "%s\n\n", msg.Text)
			}
			if msg.ImageName != "" {
				_, _ = fmt.Fprintf(w, "*Image: %s*\n\n", msg.ImageName)
			}
			if msg.VideoName != "" {
				_, _ = fmt.Fprintf(w, "*Video: %s*\n\n", msg.VideoName)
			}
		case models.RoleAssistant:
			_, _ = fmt.Fprintf(w, "**Analysis:**\n\n")
			sections := normalize.Normalize(msg.Payload)
			_, _ = io.WriteString(w, render.SectionsMarkdown(sections))
		case models.RoleError:
			_, _ = fmt.Fprintf(w, "**Error:** %s\n\n", msg.Diagnostic)
		}

		if i < len(session.Messages)-1 {
			_, _ = fmt.Fprintf(w, "---\n\n")
		}
	}

	return nil
}

func (e *MarkdownExporter) Extension() string {
	return "md"
}
