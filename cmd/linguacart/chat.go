package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"linguacart/cmd/linguacart/ui"
	"linguacart/internal/render"
)

// exitPhrases end the session when typed on their own.
var exitPhrases = map[string]bool{
	"quit": true,
	"exit": true,
	"bye":  true,
}

// chatMessage is one entry in the transcript.
type chatMessage struct {
	role    string // "user" or "assistant"
	content string
	at      time.Time
}

// replyMsg carries one finished turn back into the update loop: the reply
// text plus a snapshot of the session state the status line shows. The
// engine itself is only ever touched by the turn command, so the render
// path never reads state another goroutine may be writing.
type replyMsg struct {
	text           string
	cartItems      int
	orderConfirmed bool
}

type goodbyeMsg struct{}

// chatModel is the bubbletea model for the interactive session.
type chatModel struct {
	session *session

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	styles   ui.Styles
	renderer *glamour.TermRenderer

	history   []chatMessage
	isLoading bool
	quitting  bool
	ready     bool
	width     int
	height    int

	// Status-line snapshot, refreshed from each replyMsg.
	cartItems      int
	orderConfirmed bool
}

func newChatModel(s *session) chatModel {
	styles := ui.NewStyles(ui.ResolveTheme(s.cfg.UI.Theme))

	ti := textinput.New()
	ti.Placeholder = "Tell me what you're looking for..."
	ti.Prompt = styles.Prompt.Render("> ")
	ti.CharLimit = 500
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Muted

	m := chatModel{
		session: s,
		input:   ti,
		spinner: sp,
		styles:  styles,
	}
	m.history = append(m.history, chatMessage{
		role:    "assistant",
		content: s.engine.Greeting(),
		at:      time.Now(),
	})
	return m
}

func (m chatModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		headerHeight := 2
		footerHeight := 3
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerHeight - footerHeight
		}
		m.input.Width = msg.Width - 4
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(msg.Width-4),
		)
		if err == nil {
			m.renderer = renderer
		}
		m.viewport.SetContent(m.renderHistory())
		m.viewport.GotoBottom()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			if m.isLoading {
				return m, nil
			}
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				return m, nil
			}
			m.input.Reset()
			m.history = append(m.history, chatMessage{role: "user", content: text, at: time.Now()})
			if exitPhrases[strings.ToLower(text)] {
				m.history = append(m.history, chatMessage{role: "assistant", content: render.Farewell, at: time.Now()})
				m.viewport.SetContent(m.renderHistory())
				m.viewport.GotoBottom()
				m.quitting = true
				return m, tea.Tick(400*time.Millisecond, func(time.Time) tea.Msg { return goodbyeMsg{} })
			}
			m.isLoading = true
			m.viewport.SetContent(m.renderHistory())
			m.viewport.GotoBottom()
			engine := m.session.engine
			return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
				reply := engine.HandleTurn(text)
				st := engine.State()
				items := 0
				for _, qty := range st.Cart {
					items += qty
				}
				return replyMsg{text: reply, cartItems: items, orderConfirmed: st.OrderConfirmed}
			})
		}

	case replyMsg:
		m.isLoading = false
		m.cartItems = msg.cartItems
		m.orderConfirmed = msg.orderConfirmed
		m.history = append(m.history, chatMessage{role: "assistant", content: msg.text, at: time.Now()})
		m.viewport.SetContent(m.renderHistory())
		m.viewport.GotoBottom()

	case goodbyeMsg:
		return m, tea.Quit

	case spinner.TickMsg:
		if m.isLoading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m chatModel) renderHistory() string {
	var sb strings.Builder
	for _, msg := range m.history {
		switch msg.role {
		case "user":
			sb.WriteString(m.styles.User.Render("You") + "\n")
			sb.WriteString(m.styles.Body.Render(msg.content))
			sb.WriteString("\n\n")
		default:
			sb.WriteString(m.styles.Title.Render("linguacart") + "\n")
			sb.WriteString(m.renderMarkdown(msg.content))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// renderMarkdown renders assistant text through glamour, falling back to
// plain text when the renderer is unavailable or chokes.
func (m chatModel) renderMarkdown(content string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = content + "\n"
		}
	}()
	if m.renderer == nil || content == "" {
		return content + "\n"
	}
	rendered, err := m.renderer.Render(content)
	if err != nil {
		return content + "\n"
	}
	return rendered
}

func (m chatModel) View() string {
	if !m.ready {
		return "Starting up..."
	}

	header := m.styles.Title.Render(" linguacart ") +
		m.styles.Muted.Render(" · language-learning books, cart & checkout")

	status := m.statusLine()
	footer := m.styles.Divider.Render(strings.Repeat("─", max(m.width, 1))) + "\n"
	if m.isLoading {
		footer += m.spinner.View() + m.styles.Muted.Render(" thinking...")
	} else {
		footer += m.input.View()
	}
	footer += "\n" + status

	return lipgloss.JoinVertical(lipgloss.Left, header, m.viewport.View(), footer)
}

// statusLine shows cart size and a quit hint. It reads only the snapshot
// fields on the model; engine state belongs to the turn command.
func (m chatModel) statusLine() string {
	left := fmt.Sprintf("cart: %d item(s)", m.cartItems)
	if m.orderConfirmed {
		left += " · order confirmed"
	}
	return m.styles.Muted.Render(left + " · type 'quit' to leave, esc to abort")
}

// runChat starts the interactive session.
func runChat() error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()

	p := tea.NewProgram(newChatModel(s), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("chat ui: %w", err)
	}
	return nil
}
