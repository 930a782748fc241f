package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/AryaMundra/VeriWise/internal/api"
	"github.com/AryaMundra/VeriWise/internal/config"
	apierrors "github.com/AryaMundra/VeriWise/internal/errors"
	"github.com/AryaMundra/VeriWise/internal/normalize"
	"github.com/AryaMundra/VeriWise/internal/render"
)

var resultTitleStyle = lipgloss.NewStyle().
	Foreground(colorPrimary).
	Bold(true)

// runAnalyze executes a single analysis and prints the report
func runAnalyze(text string) error {
	text = strings.TrimSpace(text)
	if text == "" && imageFlag == "" && videoFlag == "" {
		return fmt.Errorf("nothing to analyze: provide text, --image, or --video")
	}

	cfg, _ := config.LoadConfig()

	client, err := api.NewClient(apiBase())
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	req := api.AnalyzeRequest{Text: text}
	if imageFlag != "" {
		req.ImagePath = imageFlag
		req.ImageName = filepath.Base(imageFlag)
	}
	if videoFlag != "" {
		req.VideoPath = videoFlag
		req.VideoName = filepath.Base(videoFlag)
	}

	spin := newSpinner("Analyzing")
	spin.start()

	raw, err := client.Analyze(req)
	if err != nil {
		spin.stopWithError()
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Analysis failed"))
		return fmt.Errorf("analysis failed: %w", err)
	}
	spin.stopWithSuccess("Done")

	sections := normalize.Normalize(raw)
	report := render.SectionsMarkdown(sections)

	if copyFlag || cfg.CopyToClipboard {
		if err := clipboard.WriteAll(report); err != nil {
			warn := lipgloss.NewStyle().Foreground(colorFailure).Render(
				fmt.Sprintf("⚠ Failed to copy to clipboard: %v", err))
			fmt.Fprintln(os.Stderr, warn)
		} else {
			ok := lipgloss.NewStyle().Foreground(colorSuccess).Render("✓ Copied to clipboard")
			fmt.Fprintln(os.Stderr, ok)
		}
	}

	if outputFlag != "" {
		if err := os.WriteFile(outputFlag, []byte(report), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		ok := lipgloss.NewStyle().Foreground(colorSuccess).Render(
			fmt.Sprintf("✓ Report saved to %s", outputFlag))
		fmt.Fprintln(os.Stderr, ok)
		return nil
	}

	printSections(sections)
	return nil
}

// printSections renders sections to stdout, through glamour when stdout is
// a terminal and plain markdown otherwise.
func printSections(sections []normalize.Section) {
	if !isStdoutTTY() {
		fmt.Print(render.SectionsMarkdown(sections))
		return
	}

	width := terminalWidth() - 4
	if width < 40 {
		width = 40
	}
	if width > 120 {
		width = 120
	}

	fmt.Println(resultTitleStyle.Render("✦ VeriWise"))

	cfg, _ := config.LoadConfig()
	opts := render.DefaultOptions().WithWidth(width).WithStyle(cfg.MarkdownStyle)
	rendered, err := render.Markdown(render.SectionsMarkdown(sections), opts)
	if err != nil {
		rendered = render.Sections(sections)
	}
	fmt.Println(strings.TrimRight(rendered, "\n"))
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

func isStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// formatErrorMessage formats an error with context from the typed errors
func formatErrorMessage(err error, context string) string {
	if err == nil {
		return ""
	}

	errStyle := lipgloss.NewStyle().Foreground(colorFailure)
	dimStyle := lipgloss.NewStyle().Foreground(colorTextDim)

	var sb strings.Builder
	sb.WriteString(errStyle.Render(fmt.Sprintf("✗ %s: %v", context, err)))

	if status := apierrors.HTTPStatus(err); status > 0 {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  HTTP Status: %d", status)))
	}

	switch {
	case apierrors.IsTransportError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: Check the service is running and --api-base points at it"))
	case apierrors.HTTPStatus(err) >= 500:
		sb.WriteString(dimStyle.Render("\n  Hint: The analysis service failed. Try again later"))
	}

	return sb.String()
}
