package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/emberforge/adventure/internal/dice"
	"github.com/emberforge/adventure/internal/scenario"
	"github.com/emberforge/adventure/internal/session"
)

type uiState int

const (
	stateInputName uiState = iota
	stateInputGenre
	stateLoading
	statePlaying
	stateError
)

// Options configure the interactive game.
type Options struct {
	DefaultGenre string
	Encounters   bool
	Roll         dice.Source
	Log          *slog.Logger
}

type model struct {
	state      uiState
	provider   scenario.Provider
	opts       Options
	sess       *session.Session
	playerName string
	textInput  textinput.Model
	viewport   viewport.Model
	err        error
	gameLog    string
	width      int
	height     int
}

var (
	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F5F87")).
			Bold(true).
			PaddingLeft(1)

	gameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	sidebarStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)

	dangerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5555")).
			Bold(true)
)

func NewModel(provider scenario.Provider, opts Options) model {
	ti := textinput.New()
	ti.Placeholder = "Enter your name..."
	ti.Focus()
	ti.CharLimit = 156
	ti.Width = 40

	return model{
		state:     stateInputName,
		provider:  provider,
		opts:      opts,
		textInput: ti,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

type scenarioReadyMsg struct {
	sess *session.Session
}

type errMsg struct {
	err error
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyEnter:
			switch m.state {
			case stateInputName:
				m.playerName = strings.TrimSpace(m.textInput.Value())
				m.state = stateInputGenre
				m.textInput.Reset()
				m.textInput.Placeholder = fmt.Sprintf("Genre (%s)...",
					strings.Join(scenario.Genres(), "/"))
				return m, nil

			case stateInputGenre:
				genre := strings.TrimSpace(strings.ToLower(m.textInput.Value()))
				if genre == "" {
					genre = m.opts.DefaultGenre
				}
				m.state = stateLoading
				m.textInput.Reset()
				return m, m.buildScenario(genre)

			case statePlaying:
				input := m.textInput.Value()
				if input == "" {
					return m, nil
				}
				m.textInput.Reset()
				return m.runCommand(input)
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = int(float64(msg.Width) * 0.75)
		m.viewport.Height = msg.Height - 6
		if m.state == statePlaying {
			m.viewport.SetContent(m.gameLog)
		}

	case scenarioReadyMsg:
		m.sess = msg.sess
		m.state = statePlaying
		logWidth := int(float64(m.width) * 0.75)
		m.gameLog = gameStyle.Width(logWidth).Render(m.sess.Intro()) + "\n\n"
		if m.viewport.Width == 0 {
			m.viewport = viewport.New(logWidth, m.height-6)
		}
		m.viewport.SetContent(m.gameLog)
		m.textInput.Placeholder = "What do you do?"
		return m, nil

	case errMsg:
		m.err = msg.err
		m.state = stateError
		return m, nil
	}

	if m.state != stateLoading && m.state != stateError {
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

// runCommand executes one session command synchronously and appends both the
// echoed input and the response to the log.
func (m model) runCommand(input string) (tea.Model, tea.Cmd) {
	logWidth := int(float64(m.width) * 0.75)
	m.gameLog += userStyle.Width(logWidth).Render("> "+input) + "\n\n"

	resp := m.sess.Execute(input)
	m.gameLog += gameStyle.Width(logWidth).Render(resp.Text) + "\n\n"
	m.viewport.SetContent(m.gameLog)
	m.viewport.GotoBottom()

	if resp.Quit {
		return m, tea.Quit
	}
	if resp.State.Terminal() {
		m.textInput.Placeholder = "The adventure is over. Press Esc to exit."
	}
	return m, nil
}

func (m model) View() string {
	var s string

	switch m.state {
	case stateInputName:
		s = fmt.Sprintf(
			"Welcome, adventurer!\n\n%s\n\n%s",
			"What is your name?",
			m.textInput.View(),
		)

	case stateInputGenre:
		s = fmt.Sprintf(
			"Well met, %s.\n\n%s\n\n%s",
			m.playerName,
			"Pick a genre for your adventure:",
			m.textInput.View(),
		)

	case stateLoading:
		s = "\n  Preparing your adventure... please wait.\n"

	case statePlaying:
		mainView := lipgloss.JoinHorizontal(lipgloss.Top,
			m.viewport.View(),
			m.renderSidebar(),
		)
		help := helpStyle.Render("Type 'help' for commands, 'quit' to leave.")
		s = lipgloss.JoinVertical(lipgloss.Left,
			mainView,
			"\n"+m.textInput.View(),
			"\n"+help,
		)

	case stateError:
		s = fmt.Sprintf("\n  Error: %v\n\nPress Esc to quit.", m.err)
	}

	return "\n" + s + "\n"
}

func (m model) renderSidebar() string {
	if m.sess == nil {
		return ""
	}

	player := m.sess.Player()

	location := titleStyle.Render("LOCATION") + "\n" + m.sess.Location().Name + "\n\n"

	statsTitle := titleStyle.Render("STATS") + "\n"
	health := fmt.Sprintf("Health: %d/%d\n", player.Health, player.MaxHealth)
	if player.Health*4 <= player.MaxHealth {
		health = dangerStyle.Render(strings.TrimRight(health, "\n")) + "\n"
	}
	stats := health
	stats += fmt.Sprintf("Attack: %d\n", player.AttackPower())
	stats += fmt.Sprintf("Armor: %d\n", player.ArmorValue())
	stats += fmt.Sprintf("Turns: %d\n", m.sess.Turns())
	if enemy := m.sess.Enemy(); enemy != nil {
		stats += dangerStyle.Render(fmt.Sprintf("Fighting: %s (%d HP)", enemy.Name, enemy.Health)) + "\n"
	}
	stats += "\n"

	gearTitle := titleStyle.Render("EQUIPPED") + "\n"
	gear := ""
	if w := player.Weapon(); w != nil {
		gear += fmt.Sprintf("Weapon: %s\n", w.Name)
	}
	if a := player.EquippedArmor(); a != nil {
		gear += fmt.Sprintf("Armor: %s\n", a.Name)
	}
	if gear == "" {
		gear = "(nothing)\n"
	}
	gear += "\n"

	invTitle := titleStyle.Render("INVENTORY") + "\n"
	inventory := ""
	if inv := player.Inventory(); len(inv) == 0 {
		inventory = "(empty)"
	} else {
		for _, it := range inv {
			inventory += "- " + it.Name + "\n"
		}
	}

	content := location + statsTitle + stats + gearTitle + gear + invTitle + inventory

	sidebarWidth := int(float64(m.width) * 0.23)
	return sidebarStyle.Width(sidebarWidth).Height(m.viewport.Height).Render(content)
}

func (m model) buildScenario(genre string) tea.Cmd {
	return func() tea.Msg {
		bundle, err := m.provider.Bundle(context.Background(), genre, nil)
		if err != nil {
			return errMsg{err}
		}
		sess, err := session.New(bundle, session.Options{
			PlayerName: m.playerName,
			Encounters: m.opts.Encounters,
			Roll:       m.opts.Roll,
			Log:        m.opts.Log,
		})
		if err != nil {
			return errMsg{err}
		}
		return scenarioReadyMsg{sess}
	}
}

// Run starts the interactive game and blocks until the player exits.
func Run(provider scenario.Provider, opts Options) error {
	p := tea.NewProgram(NewModel(provider, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
