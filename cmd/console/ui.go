package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/jwebster45206/campaign-engine/pkg/chat"
	"github.com/jwebster45206/campaign-engine/pkg/game"
)

const (
	AgentName       = "GM"
	PlaceHolderText = "What do you do?"
)

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	config       *ConsoleConfig
	client       *http.Client
	game         *game.SavedGame
	chatViewport viewport.Model
	textarea     textarea.Model
	history      []string
	ready        bool
	width        int
	height       int
	err          error
	loading      bool
}

type turnResponseMsg struct {
	response *chat.TurnResponse
	err      error
}

var (
	chatPanelStyle = lipgloss.NewStyle().
			PaddingTop(1).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(3)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	speakerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")). // purple
			Bold(true)

	narratorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey
)

func NewConsoleUI(cfg *ConsoleConfig, client *http.Client, g *game.SavedGame) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 1000
	ta.SetWidth(50)
	ta.SetHeight(3)
	ta.ShowLineNumbers = false

	chatVp := viewport.New(50, 20)
	chatVp.MouseWheelEnabled = true

	ui := ConsoleUI{
		config:       cfg,
		client:       client,
		game:         g,
		textarea:     ta,
		chatViewport: chatVp,
	}

	// Replay the saved conversation so a resumed game shows its history.
	for _, t := range g.Turns {
		ui.history = append(ui.history,
			ui.renderUserLine(t.UserInput),
			ui.renderGMLine(t.GMResponse))
	}
	return ui
}

func (m ConsoleUI) Init() tea.Cmd {
	return textarea.Blink
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		taCmd tea.Cmd
		vpCmd tea.Cmd
	)

	m.textarea, taCmd = m.textarea.Update(msg)
	m.chatViewport, vpCmd = m.chatViewport.Update(msg)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		chatWidth := m.width - 6
		m.chatViewport.Width = chatWidth
		m.chatViewport.Height = m.height - 8
		m.textarea.SetWidth(chatWidth)
		m.ready = true
		m.refreshChat()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.loading {
				return m, nil
			}
			input := strings.TrimSpace(m.textarea.Value())
			if input == "" {
				return m, nil
			}
			m.textarea.Reset()
			m.history = append(m.history, m.renderUserLine(input))
			m.loading = true
			m.err = nil
			m.refreshChat()
			return m, m.sendTurn(input)
		}

	case turnResponseMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.history = append(m.history, m.renderGMLine(msg.response.Response))
		}
		m.refreshChat()
	}

	return m, tea.Batch(taCmd, vpCmd)
}

func (m ConsoleUI) View() string {
	if !m.ready {
		return "Loading..."
	}

	var footer string
	switch {
	case m.loading:
		footer = loadingStyle.Render("The GM is thinking...")
	case m.err != nil:
		footer = errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	default:
		footer = m.textarea.View()
	}

	return chatPanelStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(m.game.GameName),
		m.chatViewport.View(),
		footer,
		promptStyle.Render("enter: send  esc: quit"),
	))
}

func (m *ConsoleUI) refreshChat() {
	content := strings.Join(m.history, "\n\n")
	m.chatViewport.SetContent(wordwrap.String(content, m.chatViewport.Width))
	m.chatViewport.GotoBottom()
}

func (m *ConsoleUI) renderUserLine(input string) string {
	return speakerStyle.Render("You: ") + userStyle.Render(input)
}

func (m *ConsoleUI) renderGMLine(response string) string {
	return speakerStyle.Render(AgentName+": ") + narratorStyle.Render(response)
}

func (m *ConsoleUI) sendTurn(input string) tea.Cmd {
	return func() tea.Msg {
		resp, err := postTurn(m.client, m.config.APIBaseURL, m.config.GameID, input)
		return turnResponseMsg{response: resp, err: err}
	}
}
