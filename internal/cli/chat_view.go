package cli

import (
	"context"
	"strings"

	"github.com/alexanderramin/parley/internal/cli/formatter"
	"github.com/alexanderramin/parley/internal/contract"
	"github.com/alexanderramin/parley/internal/service"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// turnDoneMsg carries a finished turn back into the update loop.
type turnDoneMsg struct {
	message string
	resp    *contract.TurnResponse
	err     error
}

var chatKeys = struct {
	Send, Scroll, Quit key.Binding
}{
	Send:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
	Scroll: key.NewBinding(key.WithKeys("pgup", "pgdown"), key.WithHelp("pgup/pgdn", "scroll")),
	Quit:   key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
}

// chatModel is the interactive chat. It owns the conversation for the
// lifetime of the program and runs at most one turn at a time.
type chatModel struct {
	ctx  context.Context
	chat service.ChatService
	conv *conversation

	input    textinput.Model
	spinner  spinner.Model
	viewport viewport.Model

	lines   []string
	waiting bool
	ready   bool
}

func newChatModel(ctx context.Context, chat service.ChatService) *chatModel {
	ti := textinput.New()
	ti.Focus()
	ti.Prompt = ""
	ti.Placeholder = "add a task to buy milk"
	ti.CharLimit = 500

	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(formatter.StylePurple))

	return &chatModel{
		ctx:      ctx,
		chat:     chat,
		conv:     &conversation{},
		input:    ti,
		spinner:  sp,
		viewport: viewport.New(80, 20),
		lines:    []string{formatter.Dim("Ask me to manage todos or accounts. /reset starts over, /quit leaves.")},
	}
}

func (m *chatModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-3, 1)
		m.input.Width = max(msg.Width-4, 10)
		m.ready = true
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, chatKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, chatKeys.Scroll):
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		case key.Matches(msg, chatKeys.Send):
			return m.submit()
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case spinner.TickMsg:
		if !m.waiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case turnDoneMsg:
		m.waiting = false
		if msg.err != nil {
			m.lines = append(m.lines, formatter.FormatError(msg.err))
		} else {
			m.conv.record(msg.message, msg.resp)
			m.lines = append(m.lines, formatter.FormatReply(msg.resp))
		}
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *chatModel) submit() (tea.Model, tea.Cmd) {
	if m.waiting {
		return m, nil
	}
	text := strings.TrimSpace(m.input.Value())
	m.input.Reset()
	if text == "" {
		return m, nil
	}

	switch strings.ToLower(text) {
	case "/quit", "/exit", "/q":
		return m, tea.Quit
	case "/reset":
		m.conv = &conversation{}
		m.lines = append(m.lines, formatter.Dim("Conversation reset."))
		m.refresh()
		return m, nil
	}

	m.lines = append(m.lines, formatter.FormatUserLine(text))
	m.waiting = true
	m.refresh()
	return m, tea.Batch(m.spinner.Tick, m.turn(text))
}

// turn runs the pipeline off the update loop. The request snapshot is taken
// here so the command never touches model state.
func (m *chatModel) turn(text string) tea.Cmd {
	ctx, chat, req := m.ctx, m.chat, m.conv.request(text)
	return func() tea.Msg {
		resp, err := chat.Turn(ctx, req)
		return turnDoneMsg{message: text, resp: resp, err: err}
	}
}

func (m *chatModel) refresh() {
	m.viewport.SetContent(strings.Join(m.lines, "\n"))
	m.viewport.GotoBottom()
}

func (m *chatModel) View() string {
	var b strings.Builder

	if m.ready {
		b.WriteString(m.viewport.View())
	} else {
		b.WriteString(strings.Join(m.lines, "\n"))
	}
	b.WriteString("\n")

	if m.waiting {
		b.WriteString(m.spinner.View() + formatter.Dim(" thinking..."))
	} else {
		b.WriteString(formatter.StyleHeader.Render("›") + " " + m.input.View())
	}
	b.WriteString("\n")

	help := make([]string, 0, 3)
	for _, k := range []key.Binding{chatKeys.Send, chatKeys.Scroll, chatKeys.Quit} {
		h := k.Help()
		help = append(help, h.Key+" "+h.Desc)
	}
	b.WriteString(formatter.Dim(strings.Join(help, " • ")))

	return b.String()
}
