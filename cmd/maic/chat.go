// This file implements the interactive chat interface using bubbletea.
// The LLM call itself is made by an external collaborator; the chat shows
// what would be sent: the composed system prompt, the ranked evidence and
// the citation label for each question.
package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"maic/internal/modes"
	"maic/internal/retrieval"
	"maic/internal/service"
)

// chatCmd starts the interactive chat interface explicitly.
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start the interactive chat interface",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(cmd.Context())
	},
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	userStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("36"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// chatModel is the main model for the interactive chat interface.
type chatModel struct {
	// UI components
	textinput textinput.Model
	viewport  viewport.Model
	spinner   spinner.Model
	renderer  *glamour.TermRenderer

	// State
	history   []chatEntry
	mode      modes.Mode
	isLoading bool
	width     int
	height    int
	ready     bool

	// Backend
	ctx   context.Context
	tutor *service.Tutor
}

type chatEntry struct {
	role    string // "user" or "maic"
	content string
	time    time.Time
}

// Messages for tea updates
type (
	responseMsg string
	errorMsg    error
)

// initChat initializes the interactive chat model.
func initChat(ctx context.Context, tutor *service.Tutor) chatModel {
	ti := textinput.New()
	ti.Placeholder = "질문을 입력하세요... (Enter to send, /help for commands)"
	ti.Focus()
	ti.Prompt = "│ "
	ti.CharLimit = 4096
	ti.Width = 80

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	vp := viewport.New(80, 20)
	vp.SetContent("")

	renderer, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)

	return chatModel{
		textinput: ti,
		viewport:  vp,
		spinner:   sp,
		renderer:  renderer,
		mode:      modes.ModeGrammar,
		ctx:       ctx,
		tutor:     tutor,
	}
}

func (m chatModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		spCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.handleSubmit()
		}
		m.textinput, tiCmd = m.textinput.Update(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		headerHeight := 2
		inputHeight := 3
		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, msg.Height-headerHeight-inputHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = msg.Height - headerHeight - inputHeight
		}
		m.textinput.Width = msg.Width - 4
		m.renderer, _ = glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(msg.Width-8),
		)
		m.viewport.SetContent(m.renderHistory())
		m.viewport.GotoBottom()

	case responseMsg:
		m.isLoading = false
		m.history = append(m.history, chatEntry{role: "maic", content: string(msg), time: time.Now()})
		m.viewport.SetContent(m.renderHistory())
		m.viewport.GotoBottom()

	case errorMsg:
		m.isLoading = false
		m.history = append(m.history, chatEntry{role: "maic", content: errStyle.Render(fmt.Sprintf("오류: %v", msg)), time: time.Now()})
		m.viewport.SetContent(m.renderHistory())
		m.viewport.GotoBottom()

	case spinner.TickMsg:
		m.spinner, spCmd = m.spinner.Update(msg)
	}

	m.viewport, vpCmd = m.viewport.Update(msg)
	return m, tea.Batch(tiCmd, vpCmd, spCmd)
}

// handleSubmit processes Enter: slash commands locally, everything else
// through the compose pipeline.
func (m chatModel) handleSubmit() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.textinput.Value())
	if input == "" || m.isLoading {
		return m, nil
	}
	m.textinput.Reset()

	if strings.HasPrefix(input, "/") {
		return m.handleCommand(input)
	}

	m.history = append(m.history, chatEntry{role: "user", content: input, time: time.Now()})
	m.isLoading = true
	m.viewport.SetContent(m.renderHistory())
	m.viewport.GotoBottom()

	question := input
	mode := m.mode
	return m, m.composePreview(question, mode)
}

// composePreview runs the pipeline off the UI thread.
func (m chatModel) composePreview(question string, mode modes.Mode) tea.Cmd {
	return func() tea.Msg {
		hits := m.tutor.SearchHits(question)
		res, err := m.tutor.ComposePrompt(m.ctx, service.ComposeRequest{
			Question:  question,
			ModeToken: mode.Key(),
			Hits:      hits,
		})
		if err != nil {
			return errorMsg(err)
		}

		var b strings.Builder
		fmt.Fprintf(&b, "## %s · %s · %s\n\n", res.Mode.Key(), res.Prompt.Model, res.SourceLabel)
		if len(res.RankedHits) > 0 {
			b.WriteString("**근거:**\n")
			for i, h := range res.RankedHits {
				fmt.Fprintf(&b, "%d. `%s`\n", i+1, retrieval.DocKey(h))
			}
			b.WriteString("\n")
		}
		b.WriteString("```\n")
		b.WriteString(res.Prompt.SystemPrompt)
		b.WriteString("\n```\n")
		return responseMsg(b.String())
	}
}

func (m chatModel) handleCommand(input string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(input)
	cmd, rest := fields[0], strings.TrimSpace(strings.TrimPrefix(input, fields[0]))

	var out string
	switch cmd {
	case "/quit", "/exit":
		return m, tea.Quit
	case "/help":
		out = strings.Join([]string{
			"**Commands:**",
			"- `/mode <token>` - switch mode (문법/문장/지문, grammar/sentence/passage, g/s/p)",
			"- `/modes` - list available modes",
			"- `/check <text>` - validate bracket notation",
			"- `/quit` - exit",
		}, "\n")
	case "/modes":
		var lines []string
		for _, s := range m.tutor.Modes().EnabledModes() {
			marker := " "
			if s.Key == m.mode {
				marker = "*"
			}
			lines = append(lines, fmt.Sprintf("%s **%s** (%s) - %s", marker, s.Label, s.Key.Key(), s.Goal))
		}
		out = strings.Join(lines, "\n")
	case "/mode":
		mode, err := m.tutor.Modes().Canon(rest)
		if err != nil {
			out = errStyle.Render(fmt.Sprintf("알 수 없는 모드: %q", rest))
		} else {
			m.mode = mode
			out = fmt.Sprintf("모드 변경: **%s**", mode.Key())
		}
	case "/check":
		rep := m.tutor.ReviewAnswer(rest)
		if rep.OK {
			out = fmt.Sprintf("OK - %d groups", rep.Groups)
		} else {
			out = "FAIL\n- " + strings.Join(rep.Errors, "\n- ")
		}
	default:
		out = helpStyle.Render(fmt.Sprintf("unknown command %s (try /help)", cmd))
	}

	m.history = append(m.history, chatEntry{role: "maic", content: out, time: time.Now()})
	m.viewport.SetContent(m.renderHistory())
	m.viewport.GotoBottom()
	return m, nil
}

func (m chatModel) renderHistory() string {
	var b strings.Builder
	for _, e := range m.history {
		if e.role == "user" {
			b.WriteString(userStyle.Render("You: ") + e.content + "\n\n")
			continue
		}
		content := e.content
		if m.renderer != nil {
			if rendered, err := m.renderer.Render(content); err == nil {
				content = rendered
			}
		}
		b.WriteString(content + "\n")
	}
	return b.String()
}

func (m chatModel) View() string {
	if !m.ready {
		return "loading..."
	}

	header := headerStyle.Render("MAIC") + "  " +
		labelStyle.Render(fmt.Sprintf("mode: %s", m.mode.Key()))

	status := ""
	if m.isLoading {
		status = m.spinner.View() + " composing..."
	}

	return fmt.Sprintf("%s\n%s\n%s\n%s",
		header,
		m.viewport.View(),
		status,
		m.textinput.View(),
	)
}

// runChat wires the tutor and runs the bubbletea program.
func runChat(ctx context.Context) error {
	tutor, cleanup, err := buildTutor(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	p := tea.NewProgram(initChat(ctx, tutor), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
