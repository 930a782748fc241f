package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/AryaMundra/VeriWise/internal/attach"
	apierrors "github.com/AryaMundra/VeriWise/internal/errors"
	"github.com/AryaMundra/VeriWise/internal/models"
	"github.com/AryaMundra/VeriWise/internal/normalize"
	"github.com/AryaMundra/VeriWise/internal/pipeline"
	"github.com/AryaMundra/VeriWise/internal/render"
	"github.com/AryaMundra/VeriWise/internal/store"
)

// Message types for the TUI
type (
	submitDoneMsg struct {
		res *pipeline.Result
	}
	submitErrMsg struct {
		err error
	}
)

// Model represents the chat TUI state
type Model struct {
	store       *store.Store
	attachments *attach.Manager
	pipeline    *pipeline.Pipeline

	// UI components
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	// State
	loading bool
	ready   bool
	err     error
	status  string

	// Session selector overlay
	selectingSession bool
	sessionCursor    int

	// Dimensions
	width  int
	height int
}

// NewChatModel creates a new chat TUI model
func NewChatModel(st *store.Store, attachments *attach.Manager, p *pipeline.Pipeline) Model {
	ta := textarea.New()
	ta.Placeholder = "Paste a claim, or /image <path>, /video <path>..."
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.Focus()

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = loadingStyle

	return Model{
		store:       st,
		attachments: attachments,
		pipeline:    p,
		textarea:    ta,
		spinner:     s,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
	)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	if m.selectingSession {
		return m.updateSessionSelector(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 4
		inputHeight := 6
		statusHeight := 2

		vpHeight := m.height - headerHeight - inputHeight - statusHeight
		if vpHeight < 5 {
			vpHeight = 5
		}
		contentWidth := m.width - 4

		if !m.ready {
			m.viewport = viewport.New(contentWidth, vpHeight)
			m.textarea.SetWidth(contentWidth - 4)
			m.ready = true
		} else {
			m.viewport.Width = contentWidth
			m.viewport.Height = vpHeight
			m.textarea.SetWidth(contentWidth - 4)
		}
		m.updateViewport()
		m.viewport.GotoBottom()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			if m.loading {
				// The request keeps running; only the indicator is dismissed
				m.loading = false
				m.status = "Analysis continues in the background"
			} else {
				return m, tea.Quit
			}

		case "enter":
			if m.loading {
				break
			}
			input := strings.TrimSpace(m.textarea.Value())
			if input == "" && !m.attachments.HasStaged() {
				break
			}
			if handled, model, cmd := m.handleCommand(input); handled {
				return model, cmd
			}

			m.loading = true
			m.err = nil
			m.status = ""
			m.textarea.Reset()

			return m, tea.Batch(
				m.submitCmd(input),
				m.spinner.Tick,
			)
		}

	case submitDoneMsg:
		m.loading = false
		if msg.res != nil && msg.res.Err != nil {
			m.err = msg.res.Err
		}
		m.updateViewport()
		m.viewport.GotoBottom()

	case submitErrMsg:
		m.loading = false
		switch {
		case errors.Is(msg.err, apierrors.ErrEmptySubmission):
			// Nothing to send; stay silent
		case errors.Is(msg.err, apierrors.ErrSubmissionPending):
			m.status = "Previous analysis is still running"
		default:
			m.err = msg.err
		}
		m.updateViewport()
		m.viewport.GotoBottom()

	case spinner.TickMsg:
		if m.loading {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
			// The optimistic user message lands from the submit goroutine;
			// refresh so it shows while the request is in flight.
			m.updateViewport()
			m.viewport.GotoBottom()
		}
	}

	if !m.loading {
		if _, ok := msg.(tea.KeyMsg); ok {
			m.textarea, cmd = m.textarea.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleCommand intercepts slash commands typed into the input. Returns
// handled=false when the input is a regular submission.
func (m Model) handleCommand(input string) (bool, tea.Model, tea.Cmd) {
	fields := strings.Fields(input)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		if input == "exit" || input == "quit" {
			return true, m, tea.Quit
		}
		return false, m, nil
	}

	m.textarea.Reset()
	m.err = nil

	switch fields[0] {
	case "/exit", "/quit":
		return true, m, tea.Quit

	case "/new":
		// A fresh thread starts clean: staged input does not carry over
		m.attachments.Clear()
		if _, err := m.store.CreateSession(); err != nil {
			m.err = err
		}
		m.status = "Started a new session"
		m.updateViewport()
		return true, m, nil

	case "/sessions":
		m.selectingSession = true
		m.sessionCursor = 0
		return true, m, nil

	case "/image", "/video":
		if len(fields) < 2 {
			m.status = fmt.Sprintf("Usage: %s <path>", fields[0])
			return true, m, nil
		}
		path := strings.TrimSpace(strings.TrimPrefix(input, fields[0]))
		m.stageAttachment(fields[0] == "/image", path)
		return true, m, nil

	case "/clear":
		m.attachments.Clear()
		m.status = "Cleared staged attachments"
		return true, m, nil

	default:
		m.status = fmt.Sprintf("Unknown command: %s", fields[0])
		return true, m, nil
	}
}

func (m *Model) stageAttachment(isImage bool, path string) {
	var att *attach.Attachment
	var err error
	if isImage {
		att, err = m.attachments.SelectImage(path)
	} else {
		att, err = m.attachments.SelectVideo(path)
	}
	if err != nil {
		m.err = err
		return
	}
	m.status = fmt.Sprintf("Staged %s: %s", att.Kind, att.FileName)
}

// submitCmd runs the submission pipeline off the UI goroutine
func (m Model) submitCmd(text string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.pipeline.Submit(text)
		if err != nil {
			return submitErrMsg{err: err}
		}
		return submitDoneMsg{res: res}
	}
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	if m.selectingSession {
		return m.renderSessionSelector()
	}

	var sections []string
	contentWidth := m.width - 4

	sections = append(sections, m.renderHeader(contentWidth))

	var messagesContent string
	if sess := m.store.Active(); sess == nil || len(sess.Messages) == 0 {
		messagesContent = m.renderWelcome()
	} else {
		messagesContent = m.viewport.View()
	}
	sections = append(sections, messagesAreaStyle.
		Width(contentWidth).
		Height(m.viewport.Height).
		Render(messagesContent))

	var inputContent string
	if m.loading {
		inputContent = m.spinner.View() + loadingStyle.Render(" Analyzing...")
	} else {
		inputContent = lipgloss.JoinVertical(
			lipgloss.Left,
			inputLabelStyle.Render("You"),
			m.textarea.View(),
		)
	}
	sections = append(sections, inputPanelStyle.Width(contentWidth).Render(inputContent))

	sections = append(sections, m.renderStatusBar(contentWidth))

	if m.err != nil {
		sections = append(sections, errorStyle.Render(fmt.Sprintf("⚠ %v", m.err)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader(width int) string {
	parts := []string{titleStyle.Render("✦ VeriWise")}
	if sess := m.store.Active(); sess != nil {
		parts = append(parts,
			subtitleStyle.Render("  •  "),
			subtitleStyle.Render(sess.Title),
		)
	}

	var staged []string
	if att := m.attachments.Image(); att != nil {
		staged = append(staged, "🖼 "+att.FileName)
	}
	if att := m.attachments.Video(); att != nil {
		staged = append(staged, "🎬 "+att.FileName)
	}
	if len(staged) > 0 {
		parts = append(parts,
			subtitleStyle.Render("  •  "),
			attachmentLineStyle.Render(strings.Join(staged, "  ")),
		)
	}

	content := lipgloss.JoinHorizontal(lipgloss.Center, parts...)
	return headerStyle.Width(width).Render(content)
}

func (m Model) renderWelcome() string {
	width := m.viewport.Width - 4
	height := m.viewport.Height

	title := welcomeTitleStyle.Width(width).Align(lipgloss.Center).Render("Welcome to VeriWise")
	subtitle := welcomeStyle.Width(width).Render(
		"Submit a claim, image, or video to check for misinformation.\n" +
			"/image <path>  /video <path>  /sessions  /new")

	content := lipgloss.JoinVertical(lipgloss.Center, "", title, "", subtitle, "")

	contentHeight := lipgloss.Height(content)
	topPadding := (height - contentHeight) / 2
	if topPadding < 0 {
		topPadding = 0
	}

	return strings.Repeat("\n", topPadding) + content
}

func (m Model) renderStatusBar(width int) string {
	if m.status != "" {
		return statusBarStyle.Width(width).Render(statusDescStyle.Render(m.status))
	}

	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Submit"},
		{"/sessions", "Switch"},
		{"/new", "New"},
		{"Esc", "Quit"},
	}

	var items []string
	for _, s := range shortcuts {
		items = append(items, statusKeyStyle.Render(s.key)+statusDescStyle.Render(" "+s.desc))
	}

	bar := strings.Join(items, "  │  ")
	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(bar)
}

// updateViewport refreshes the viewport content from the active session's
// timeline
func (m *Model) updateViewport() {
	sess := m.store.Active()
	if sess == nil {
		m.viewport.SetContent("")
		return
	}

	var content strings.Builder
	bubbleWidth := m.viewport.Width - 6

	for i, msg := range sess.Messages {
		if i > 0 {
			content.WriteString("\n")
		}
		content.WriteString(m.renderMessage(msg, bubbleWidth))
		content.WriteString("\n")
	}

	m.viewport.SetContent(content.String())
}

func (m Model) renderMessage(msg models.Message, bubbleWidth int) string {
	switch msg.Role {
	case models.RoleUser:
		label := userLabelStyle.Render("⬤ You")
		var body []string
		if msg.Text != "" {
			body = append(body, msg.Text)
		}
		if msg.ImageName != "" {
			body = append(body, attachmentLineStyle.Render("🖼 "+msg.ImageName))
		}
		if msg.VideoName != "" {
			body = append(body, attachmentLineStyle.Render("🎬 "+msg.VideoName))
		}
		bubble := userBubbleStyle.Width(bubbleWidth).Render(strings.Join(body, "\n"))
		return label + "\n" + bubble

	case models.RoleAssistant:
		label := assistantLabelStyle.Render("✦ VeriWise")
		sections := normalize.Normalize(msg.Payload)
		rendered := strings.TrimRight(render.Sections(sections), "\n")
		bubble := assistantBubbleStyle.Width(bubbleWidth).Render(rendered)
		return label + "\n" + bubble

	case models.RoleError:
		return errorStyle.Render("⚠ " + msg.Diagnostic)
	}
	return ""
}

// RunChat starts the chat TUI
func RunChat(st *store.Store, attachments *attach.Manager, p *pipeline.Pipeline) error {
	m := NewChatModel(st, attachments, p)

	prog := tea.NewProgram(
		m,
		tea.WithAltScreen(),
	)

	_, err := prog.Run()
	return err
}
