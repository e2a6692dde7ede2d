package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/diogo/ixview/internal/models"
	"github.com/diogo/ixview/internal/render"
	"github.com/diogo/ixview/internal/termrender"
	"github.com/diogo/ixview/internal/transcript"
	"github.com/diogo/ixview/internal/view"
)

// Message types for the TUI
type (
	loadedMsg struct {
		messages []models.Message
		err      error
	}
	watchMsg struct {
		update transcript.Update
		ok     bool
	}
	copiedMsg struct {
		count int
		err   error
	}
)

// Options configures the viewer.
type Options struct {
	// Title is shown in the header, usually the transcript path.
	Title string
	// Messages is the initial transcript.
	Messages []models.Message
	// Mode is the initial color mode.
	Mode render.ColorMode
	// Dispatcher renders messages; nil uses a lenient default.
	Dispatcher *view.Dispatcher
	// Terminal carries the markdown options and plain flag. Its width is
	// set from the window size.
	Terminal termrender.Terminal
	// Load reloads the transcript on demand. Nil disables reloading.
	Load func() ([]models.Message, error)
	// Updates delivers reloads from a file watcher.
	Updates <-chan transcript.Update
	// Clipboard writes text to the system clipboard.
	Clipboard func(string) error
	Logger    *zap.Logger
}

// Model represents the viewer state
type Model struct {
	opts Options

	// UI components
	viewport viewport.Model
	help     help.Model
	keys     keyMap

	// State
	messages []models.Message
	frames   []view.Frame
	mode     render.ColorMode
	ready    bool
	notice   string
	err      error

	// Dimensions
	width  int
	height int
}

// NewModel creates a viewer model.
func NewModel(opts Options) Model {
	if opts.Dispatcher == nil {
		opts.Dispatcher = view.NewDispatcher()
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Mode == "" {
		opts.Mode = render.ColorModeDark
	}
	if opts.Terminal.Options == (render.Options{}) {
		opts.Terminal.Options = render.DefaultOptions()
	}

	UpdateTheme(render.ThemeFor(opts.Mode))

	m := Model{
		opts:     opts,
		help:     help.New(),
		keys:     defaultKeyMap(),
		messages: opts.Messages,
		mode:     opts.Mode,
	}
	m.rerender()
	return m
}

// Mode returns the current color mode.
func (m Model) Mode() render.ColorMode {
	return m.mode
}

// Frames returns the frames currently displayed.
func (m Model) Frames() []view.Frame {
	return m.frames
}

// Init starts listening for watcher updates, if any.
func (m Model) Init() tea.Cmd {
	if m.opts.Updates == nil {
		return nil
	}
	return waitForUpdate(m.opts.Updates)
}

func waitForUpdate(ch <-chan transcript.Update) tea.Cmd {
	return func() tea.Msg {
		u, ok := <-ch
		return watchMsg{update: u, ok: ok}
	}
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 3 // Header panel with border
		statusHeight := 2 // Notice line and help
		vpHeight := m.height - headerHeight - statusHeight
		if vpHeight < 3 {
			vpHeight = 3
		}

		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}
		m.help.Width = m.width
		m.rerender()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Toggle):
			m.mode = m.mode.Toggle()
			UpdateTheme(render.ThemeFor(m.mode))
			m.notice = fmt.Sprintf("%s mode", m.mode)
			m.rerender()
			return m, nil

		case key.Matches(msg, m.keys.Copy):
			return m, m.copyTranscript()

		case key.Matches(msg, m.keys.Reload):
			if m.opts.Load == nil {
				m.notice = "reload not available"
				return m, nil
			}
			return m, m.reload()
		}

	case loadedMsg:
		m.applyLoad(msg.messages, msg.err, "reloaded")
		return m, nil

	case watchMsg:
		if !msg.ok {
			m.notice = "watch stopped"
			return m, nil
		}
		m.applyLoad(msg.update.Messages, msg.update.Err, "file changed")
		return m, waitForUpdate(m.opts.Updates)

	case copiedMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("failed to copy to clipboard: %w", msg.err)
			return m, nil
		}
		m.err = nil
		m.notice = fmt.Sprintf("copied %d messages", msg.count)
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// applyLoad replaces the transcript. A failed load keeps the previous
// frames on screen and shows the error.
func (m *Model) applyLoad(msgs []models.Message, err error, notice string) {
	if err != nil {
		m.opts.Logger.Warn("transcript reload failed", zap.Error(err))
		m.err = err
		return
	}
	m.opts.Logger.Debug("transcript reloaded", zap.Int("messages", len(msgs)))
	m.messages = msgs
	m.err = nil
	m.notice = notice
	m.rerender()
	m.viewport.GotoBottom()
}

// rerender dispatches every message under the current mode and refreshes
// the viewport.
func (m *Model) rerender() {
	frames, err := m.opts.Dispatcher.RenderAll(m.messages, m.mode)
	m.frames = frames
	if err != nil {
		m.err = err
	}
	if !m.ready {
		return
	}

	term := m.opts.Terminal
	term.Width = m.viewport.Width
	m.viewport.SetContent(term.RenderAll(frames))
}

func (m Model) reload() tea.Cmd {
	load := m.opts.Load
	return func() tea.Msg {
		msgs, err := load()
		return loadedMsg{messages: msgs, err: err}
	}
}

func (m Model) copyTranscript() tea.Cmd {
	text := PlainText(m.frames)
	count := len(m.frames)
	write := m.opts.Clipboard
	return func() tea.Msg {
		return copiedMsg{count: count, err: write(text)}
	}
}

// PlainText joins the plain text of frames, one blank line between them.
func PlainText(frames []view.Frame) string {
	parts := make([]string, len(frames))
	for i, f := range frames {
		parts[i] = f.Text()
	}
	return strings.Join(parts, "\n")
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return hintStyle.Render("  Initializing...")
	}

	var sections []string

	// Header
	headerParts := []string{
		titleStyle.Render("◆ ixview"),
		hintStyle.Render("  •  "),
		subtitleStyle.Render(m.opts.Title),
		hintStyle.Render("  •  "),
		subtitleStyle.Render(fmt.Sprintf("%d messages", len(m.messages))),
		hintStyle.Render("  •  "),
		subtitleStyle.Render(m.mode.String()),
	}
	if policy := m.opts.Dispatcher.Policy(); policy != view.PolicyLenient {
		headerParts = append(headerParts,
			hintStyle.Render("  •  "),
			subtitleStyle.Render("missing: "+string(policy)),
		)
	}
	if m.opts.Updates != nil {
		headerParts = append(headerParts,
			hintStyle.Render("  •  "),
			lipgloss.NewStyle().Foreground(colorWarning).Render("watching"),
		)
	}
	header := headerStyle.
		Width(max(m.width-2, 0)).
		Render(lipgloss.JoinHorizontal(lipgloss.Center, headerParts...))
	sections = append(sections, header)

	// Messages
	var body string
	if len(m.frames) == 0 {
		body = emptyStyle.
			Width(m.viewport.Width).
			Height(m.viewport.Height).
			Render("No messages")
	} else {
		body = messagesAreaStyle.Render(m.viewport.View())
	}
	sections = append(sections, body)

	// Status
	switch {
	case m.err != nil:
		sections = append(sections, FormatError(m.err))
	case m.notice != "":
		sections = append(sections, noticeStyle.Render(m.notice))
	default:
		sections = append(sections, "")
	}
	sections = append(sections, statusBarStyle.Render(m.help.View(m.keys)))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// Run starts the viewer on the alternate screen.
func Run(opts Options) error {
	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
