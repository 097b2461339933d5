// Package tui is the terminal front end for a learning chatbot session.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/srclos-net/learnbot/internal/session"
)

const (
	Title      = "Chatbot with Learning Capability"
	AskLabel   = "Ask a question:"
	TeachLabel = "Type the answer (or leave blank to skip):"
)

type chatLine struct {
	role string // "user", "bot", "error"
	text string
}

// Model is the bubbletea model. It owns one session and renders the
// transcript above a single input box whose meaning follows the session
// state.
type Model struct {
	session  *session.Session
	input    textarea.Model
	viewport viewport.Model
	lines    []chatLine
	width    int
	height   int
	quitting bool
}

func NewModel(s *session.Session) Model {
	ta := textarea.New()
	ta.Placeholder = "What would you like to know?"
	ta.Focus()
	ta.CharLimit = 0
	ta.SetHeight(1)
	ta.ShowLineNumbers = false
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(White)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(DimGreen)

	return Model{
		session:  s,
		input:    ta,
		viewport: viewport.New(80, 20),
	}
}

func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// title (1) + label (1) + input box (3) + help (1) + viewport border (2)
		m.viewport.Width = max(msg.Width-4, 10)
		m.viewport.Height = max(msg.Height-8, 3)
		m.input.SetWidth(max(msg.Width-6, 10))
		m.rebuildView()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			m.submit(m.input.Value(), false)
			m.input.Reset()
			m.updatePlaceholder()
			m.rebuildView()
			return m, nil
		case tea.KeyCtrlN:
			// Ask a new question even while one is waiting for an answer.
			m.submit(m.input.Value(), true)
			m.input.Reset()
			m.updatePlaceholder()
			m.rebuildView()
			return m, nil
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// submit hands raw to the session untrimmed; trimming is for display only.
func (m *Model) submit(raw string, ask bool) {
	if text := strings.TrimSpace(raw); text != "" {
		m.lines = append(m.lines, chatLine{role: "user", text: text})
	}

	var (
		reply session.Reply
		err   error
	)
	if ask {
		reply = m.session.Ask(raw)
	} else {
		reply, err = m.session.Submit(raw)
	}
	switch {
	case err != nil:
		m.lines = append(m.lines, chatLine{role: "error", text: reply.Text})
	case reply.Kind != session.ReplyIgnored:
		m.lines = append(m.lines, chatLine{role: "bot", text: reply.Text})
	}
}

func (m *Model) updatePlaceholder() {
	if m.session.State() == session.AwaitingTeach {
		m.input.Placeholder = "Your answer..."
	} else {
		m.input.Placeholder = "What would you like to know?"
	}
}

func (m *Model) rebuildView() {
	var sb strings.Builder
	for i, l := range m.lines {
		if i > 0 {
			sb.WriteString("\n")
		}
		switch l.role {
		case "user":
			sb.WriteString(UserLabelStyle.Render("You: ") + l.text)
		case "error":
			sb.WriteString(BotLabelStyle.Render("Bot: ") + ErrorMsgStyle.Render(l.text))
		default:
			sb.WriteString(BotLabelStyle.Render("Bot: ") + BotMsgStyle.Render(l.text))
		}
	}
	m.viewport.SetContent(lipgloss.NewStyle().Width(m.viewport.Width).Render(sb.String()))
	m.viewport.GotoBottom()
}

// Transcript returns the conversation as plain "You:"/"Bot:" lines.
func (m Model) Transcript() []string {
	out := make([]string, len(m.lines))
	for i, l := range m.lines {
		label := "Bot: "
		if l.role == "user" {
			label = "You: "
		}
		out[i] = label + l.text
	}
	return out
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	label := AskLabel
	if m.session.State() == session.AwaitingTeach {
		label = TeachLabel
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		TitleStyle.Render(Title),
		ViewportStyle.Render(m.viewport.View()),
		PromptLabelStyle.Render(label),
		InputBoxStyle.Render(m.input.View()),
		HelpStyle.Render(fmt.Sprintf("Enter: submit | Ctrl+N: ask new question | Esc: quit | session %s", shortID(m.session.ID()))),
	)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
