package bubbletea

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/citomed/bookchat"
	"github.com/citomed/bookchat/controller"
)

var _ tea.Model = Model{}

// Model is the Bubble Tea model for the booking chat TUI.
type Model struct {
	// Input is the text input component. Exported for test access.
	Input textinput.Model
	// Viewport is the scrollable transcript area. Exported for test access.
	Viewport viewport.Model

	ctrl   *controller.Controller
	styles Styles
	spin   spinner.Model

	view    controller.View
	pending string // optimistic echo for the in-flight user message
	sending bool
	ready   bool
}

// New creates a TUI Model over the given controller.
func New(ctrl *controller.Controller, theme bookchat.Theme) Model {
	ti := textinput.New()
	ti.Placeholder = "Type a message..."
	ti.Prompt = ""
	ti.Focus()
	ti.CharLimit = 0

	styles := NewStyles(theme)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Muted

	return Model{
		Input:  ti,
		ctrl:   ctrl,
		styles: styles,
		spin:   sp,
		view:   ctrl.Snapshot(),
	}
}

// Sending returns whether a send is currently in flight.
func (m Model) Sending() bool { return m.sending }

// Err returns the detail of the most recent failed send, if any.
func (m Model) Err() error { return m.view.Err }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m = m.handleWindowSize(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.sending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case SendDoneMsg:
		m.sending = false
		m.pending = ""
		m.view = m.ctrl.Snapshot()
		m.Viewport.SetContent(m.renderContent())
		m.Viewport.GotoBottom()
		cmd := m.Input.Focus()
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)
	}

	// Pass remaining messages to sub-components.
	// Viewport always receives messages for scrolling (keyboard and mouse).
	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	cmds = append(cmds, cmd)

	if !m.sending {
		m.Input, cmd = m.Input.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(m.Viewport.View())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.Input.View())
	return b.String()
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) Model {
	inputHeight := 1
	statusHeight := 1
	borderHeight := 2 // newlines between sections
	vpHeight := msg.Height - inputHeight - statusHeight - borderHeight

	if vpHeight < 1 {
		vpHeight = 1
	}

	if !m.ready {
		m.Viewport = viewport.New(msg.Width, vpHeight)
		m.ready = true
	} else {
		m.Viewport.Width = msg.Width
		m.Viewport.Height = vpHeight
	}

	m.Viewport.SetContent(m.renderContent())
	m.Viewport.GotoBottom()
	m.Input.Width = msg.Width
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit

	case tea.KeyCtrlN:
		// Reset is local-first and never blocks: the remote reset runs in
		// the background and its failure is swallowed by the controller.
		m.ctrl.Reset(context.Background())
		m.view = m.ctrl.Snapshot()
		m.pending = ""
		m.Viewport.SetContent(m.renderContent())
		m.Viewport.GotoBottom()
		return m, nil

	case tea.KeyEnter:
		if m.sending {
			return m, nil
		}
		text := strings.TrimSpace(m.Input.Value())
		if text == "" {
			return m, nil
		}
		return m.submitInput(text)
	}

	// When idle, pass keys to both the input (for typing) and the viewport
	// (for scrolling). Only non-character keys go to the viewport to avoid
	// conflicts (e.g. 'j'/'k' are viewport scroll AND text characters).
	if !m.sending {
		var cmd tea.Cmd
		var cmds []tea.Cmd

		if msg.Type != tea.KeyRunes {
			m.Viewport, cmd = m.Viewport.Update(msg)
			cmds = append(cmds, cmd)
		}

		m.Input, cmd = m.Input.Update(msg)
		cmds = append(cmds, cmd)

		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m Model) submitInput(text string) (tea.Model, tea.Cmd) {
	m.Input.SetValue("")
	m.Input.Blur()

	// Optimistic echo: the user's message renders immediately, before the
	// backend has responded. The controller appends the authoritative copy.
	m.pending = text
	m.sending = true
	m.view.Err = nil
	m.Viewport.SetContent(m.renderContent())
	m.Viewport.GotoBottom()

	ctrl := m.ctrl
	return m, tea.Batch(
		func() tea.Msg { return SendDoneMsg{Err: ctrl.Send(context.Background(), text)} },
		m.spin.Tick,
	)
}

func (m Model) renderContent() string {
	width := m.Viewport.Width
	var sections []string

	for _, msg := range m.view.Session.Messages {
		sections = append(sections, m.renderMessage(msg, width))
	}
	if m.pending != "" {
		sections = append(sections, m.renderMessage(bookchat.Message{
			Role:    bookchat.RoleUser,
			Content: m.pending,
		}, width))
	}
	if b := m.view.Session.Booking; b != nil {
		sections = append(sections, renderBooking(b, m.styles, width))
	}

	return strings.Join(sections, "\n\n")
}

func (m Model) renderMessage(msg bookchat.Message, width int) string {
	switch msg.Role {
	case bookchat.RoleUser:
		content := m.styles.UserMsg.Render("> ") + msg.Content
		return lipgloss.NewStyle().Width(width).Render(content)
	default:
		return lipgloss.NewStyle().Width(width).Render(m.styles.Assistant.Render(msg.Content))
	}
}

func (m Model) statusLine() string {
	if m.view.Err != nil {
		return m.styles.Error.Render(fmt.Sprintf("Error: %v", m.view.Err))
	}
	if m.sending {
		return m.spin.View() + m.styles.Muted.Render("Waiting for the assistant...")
	}
	if m.view.Session.Booking != nil {
		return m.styles.Success.Render("Appointment confirmed") +
			m.styles.Muted.Render(" · Ctrl+N to book another · Ctrl+C to quit")
	}
	help := "Enter to send · Ctrl+N new session · Ctrl+C to quit"
	if phase := m.view.Session.Phase; phase != "" && phase != bookchat.PhaseGreeting {
		help += " · " + string(phase)
	}
	return m.styles.Muted.Render(help)
}
