package main

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"quest/a2ui"
	"quest/clipboard"
	"quest/render"
	"quest/voice"
)

// TUI message types
type TranscriptMsg struct {
	Role string
	Text string
}
type VoiceStatusMsg struct{ Status voice.Status }
type AgentBusyMsg struct{}
type AgentReplyMsg struct {
	Text string
	UI   *a2ui.UIDescription
}
type AgentErrorMsg struct{ Err string }

var (
	tuiProgram *tea.Program
	tuiMu      sync.Mutex
)

var (
	userStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true)
	agentStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
	textStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	statusOK     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	statusBad    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	statusDim    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("239"))
	hintBold     = lipgloss.NewStyle().Foreground(lipgloss.Color("239")).Bold(true)
	selectStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true)
	copiedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	surfaceTitle = lipgloss.NewStyle().Foreground(lipgloss.Color("246"))
)

type convLine struct {
	role string
	text string
}

type tuiModel struct {
	session   *clientSession
	renderer  *render.Renderer
	reconnect chan<- struct{}

	width, height int
	conversation  []convLine
	voiceStatus   voice.Status
	voiceEnabled  bool
	busy          bool
	errLine       string
	lastReply     string
	copied        bool

	input   textinput.Model
	spin    spinner.Model
	targets []render.ActionRef
	sel     int
}

func newTUIModel(session *clientSession, renderer *render.Renderer, reconnect chan<- struct{}, voiceEnabled bool) tuiModel {
	ti := textinput.New()
	ti.Placeholder = "ask about fractional roles (or speak)"
	ti.Prompt = "> "
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	status := voice.StatusConnecting
	if !voiceEnabled {
		status = voice.StatusDisconnected
	}

	return tuiModel{
		session:      session,
		renderer:     renderer,
		reconnect:    reconnect,
		voiceStatus:  status,
		voiceEnabled: voiceEnabled,
		input:        ti,
		spin:         sp,
	}
}

func NewTUIProgram(session *clientSession, renderer *render.Renderer, reconnect chan<- struct{}, voiceEnabled bool) *tea.Program {
	return tea.NewProgram(newTUIModel(session, renderer, reconnect, voiceEnabled), tea.WithAltScreen())
}

func (m tuiModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.session.Stop()
			return m, tea.Quit

		case "enter":
			if v := strings.TrimSpace(m.input.Value()); v != "" {
				m.input.Reset()
				m.errLine = ""
				m.copied = false
				// Append happens on the program goroutine; sending back into
				// Update would deadlock, so route through a goroutine.
				go m.session.Submit(v)
				return m, nil
			}
			if len(m.targets) > 0 {
				ref := m.targets[m.sel]
				if m.renderer.Trigger(ref.SurfaceID, ref.Action.Name) {
					m.targets = m.renderer.ActionTargets()
					if m.sel >= len(m.targets) {
						m.sel = 0
					}
				}
			}
			return m, nil

		case "tab":
			if len(m.targets) > 0 {
				m.sel = (m.sel + 1) % len(m.targets)
			}
			return m, nil

		case "shift+tab":
			if len(m.targets) > 0 {
				m.sel = (m.sel - 1 + len(m.targets)) % len(m.targets)
			}
			return m, nil

		case "ctrl+y":
			if m.lastReply != "" {
				if err := clipboard.Copy(m.lastReply); err == nil {
					m.copied = true
				}
			}
			return m, nil

		case "ctrl+r":
			if m.voiceEnabled && (m.voiceStatus == voice.StatusError || m.voiceStatus == voice.StatusDisconnected) {
				select {
				case m.reconnect <- struct{}{}:
				default:
				}
				m.voiceStatus = voice.StatusConnecting
			}
			return m, nil
		}

	case TranscriptMsg:
		m.conversation = append(m.conversation, convLine{role: msg.Role, text: msg.Text})

	case VoiceStatusMsg:
		m.voiceStatus = msg.Status

	case AgentBusyMsg:
		m.busy = true
		m.errLine = ""
		return m, m.spin.Tick

	case AgentReplyMsg:
		m.busy = false
		m.lastReply = msg.Text
		m.copied = false
		m.renderer.Apply(msg.UI)
		m.targets = m.renderer.ActionTargets()
		m.sel = 0

	case AgentErrorMsg:
		m.busy = false
		m.errLine = msg.Err

	case spinner.TickMsg:
		if m.busy {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m tuiModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	convWidth := m.width / 2
	if convWidth < 30 {
		convWidth = 30
	}
	surfWidth := m.width - convWidth - 1
	if surfWidth < 20 {
		surfWidth = 20
	}

	left := m.renderConversation(convWidth)
	right := m.renderSurfaces(surfWidth)

	leftPanel := lipgloss.NewStyle().
		Width(convWidth).
		Height(m.height).
		Render(left)
	rightPanel := lipgloss.NewStyle().
		Width(surfWidth).
		Height(m.height).
		PaddingLeft(1).
		Render(right)

	return lipgloss.JoinHorizontal(lipgloss.Top, leftPanel, rightPanel)
}

func (m tuiModel) renderConversation(width int) string {
	wrapWidth := width - 2
	if wrapWidth < 10 {
		wrapWidth = 10
	}

	var b strings.Builder

	// Status line
	switch m.voiceStatus {
	case voice.StatusConnected:
		b.WriteString(statusOK.Render("● voice connected"))
	case voice.StatusConnecting:
		b.WriteString(statusDim.Render("○ voice connecting..."))
	case voice.StatusDisconnected:
		if m.voiceEnabled {
			b.WriteString(statusDim.Render("○ voice disconnected") + hintStyle.Render("  (ctrl+r to reconnect)"))
		} else {
			b.WriteString(statusDim.Render("○ voice off"))
		}
	case voice.StatusError:
		b.WriteString(statusBad.Render("✗ voice error") + hintStyle.Render("  (ctrl+r to reconnect)"))
	}
	b.WriteString("\n\n")

	// Conversation history, newest last, trimmed to the visible area.
	lines := m.conversationLines(wrapWidth)
	maxLines := m.height - 8
	if maxLines < 3 {
		maxLines = 3
	}
	if len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}
	for _, l := range lines {
		b.WriteString(l + "\n")
	}

	if m.busy {
		b.WriteString(m.spin.View() + statusDim.Render("thinking...") + "\n")
	}
	if m.errLine != "" {
		b.WriteString(errStyle.Render("error: "+m.errLine) + "\n")
	}
	if m.copied {
		b.WriteString(copiedStyle.Render("[✓ copied]") + "\n")
	}

	b.WriteString("\n" + m.input.View() + "\n")
	b.WriteString(hintBold.Render("tab") + hintStyle.Render(" select action  ") +
		hintBold.Render("enter") + hintStyle.Render(" trigger/send  ") +
		hintBold.Render("ctrl+y") + hintStyle.Render(" copy reply"))
	b.WriteString("\n" + hintStyle.Render("quest "+version))

	return b.String()
}

func (m tuiModel) conversationLines(wrapWidth int) []string {
	var out []string
	for _, c := range m.conversation {
		prefix := agentStyle.Render("agent ")
		if c.role == "user" {
			prefix = userStyle.Render("you   ")
		}
		wrapped := wrapText(c.text, wrapWidth-6)
		for i, line := range wrapped {
			if i == 0 {
				out = append(out, prefix+textStyle.Render(line))
			} else {
				out = append(out, "      "+textStyle.Render(line))
			}
		}
	}
	return out
}

func (m tuiModel) renderSurfaces(width int) string {
	var b strings.Builder
	b.WriteString(surfaceTitle.Render("Results") + "\n\n")

	if m.renderer.Len() == 0 {
		b.WriteString(statusDim.Render("Nothing to show yet"))
		return b.String()
	}
	b.WriteString(m.renderer.Render(width - 2))

	if len(m.targets) > 0 {
		ref := m.targets[m.sel]
		b.WriteString("\n\n")
		b.WriteString(hintStyle.Render("action: ") +
			selectStyle.Render(ref.Action.Label) +
			hintStyle.Render(fmt.Sprintf(" (%s, %d/%d)", ref.SurfaceID, m.sel+1, len(m.targets))))
	}
	return b.String()
}

func tuiSend(msg tea.Msg) {
	tuiMu.Lock()
	p := tuiProgram
	tuiMu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

func wrapText(text string, width int) []string {
	if len(text) == 0 {
		return []string{""}
	}
	if width <= 0 {
		width = 1
	}

	var lines []string
	for len(text) > width {
		// Find last space within width
		splitAt := width
		for i := width; i > 0; i-- {
			if text[i] == ' ' {
				splitAt = i
				break
			}
		}
		lines = append(lines, text[:splitAt])
		text = strings.TrimLeft(text[splitAt:], " ")
	}
	if len(text) > 0 {
		lines = append(lines, text)
	}
	return lines
}
