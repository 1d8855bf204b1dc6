// Package tui provides the Bubble Tea quiz interface.
package tui

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/ayeshaa24/mental-maths/internal/model"
	"github.com/ayeshaa24/mental-maths/internal/profile"
	"github.com/ayeshaa24/mental-maths/internal/resultsui"
	"github.com/ayeshaa24/mental-maths/internal/session"
	"github.com/ayeshaa24/mental-maths/internal/stats"
)

type screen int

const (
	screenMenu screen = iota
	screenQuiz
	screenResults
)

const answerCharLimit = 16

var (
	titleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	itemStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0"))
	selectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	disabledStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#4A4A4A"))
	questionStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	matchedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A")).Bold(true)
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	levelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	levelOnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	cursorRowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
)

// revealMsg fires after the reveal delay for a matched question. It is
// dropped unless the same session is still waiting on the same question.
type revealMsg struct {
	sessionID string
	index     int
}

// Model implements the Bubble Tea quiz UI.
type Model struct {
	config model.Config
	gen    session.Generator
	log    zerolog.Logger
	now    func() time.Time

	screen screen
	width  int
	height int
	errMsg string

	menu menuState

	session *session.Session
	input   textinput.Model
	bar     progress.Model

	results *resultsui.Model
}

// NewModel constructs a quiz TUI model. The menu starts on the configured
// selection.
func NewModel(cfg model.Config, gen session.Generator, log zerolog.Logger) *Model {
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "answer"
	input.CharLimit = answerCharLimit
	input.Focus()

	m := &Model{
		config: cfg,
		gen:    gen,
		log:    log,
		now:    time.Now,
		input:  input,
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
	m.menu = newMenuState(cfg.Selection)
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = progressWidth(msg.Width)
		if m.results != nil {
			m.results.Resize(msg.Width, msg.Height)
		}
		return m, nil
	case revealMsg:
		return m, m.handleReveal(msg)
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.closeSession()
			return m, tea.Quit
		}
		switch m.screen {
		case screenQuiz:
			return m, m.updateQuiz(msg)
		case screenResults:
			return m, m.updateResults(msg)
		default:
			return m, m.updateMenu(msg)
		}
	}
	if m.screen == screenQuiz {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	var content string
	switch m.screen {
	case screenQuiz:
		content = m.viewQuiz()
	case screenResults:
		return m.results.View()
	default:
		content = m.viewMenu()
	}
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// startSession generates a batch for sel and switches to the quiz screen.
func (m *Model) startSession(sel profile.Selection) tea.Cmd {
	s, err := session.Start(m.gen, sel, session.WithClock(m.now), session.WithLogger(m.log))
	if err != nil {
		m.showError(err)
		return nil
	}
	m.enterQuiz(s)
	return textinput.Blink
}

// restartSession replays the finished session's selection with a new batch.
func (m *Model) restartSession() tea.Cmd {
	if m.session == nil {
		return nil
	}
	next, err := m.session.Restart(m.gen)
	if err != nil {
		m.showError(err)
		m.screen = screenMenu
		m.results = nil
		return nil
	}
	m.enterQuiz(next)
	return textinput.Blink
}

func (m *Model) enterQuiz(s *session.Session) {
	m.session = s
	m.errMsg = ""
	m.results = nil
	m.input.Reset()
	m.input.Focus()
	m.screen = screenQuiz
}

func (m *Model) closeSession() {
	if m.session != nil {
		m.session.Close()
	}
}

func (m *Model) showResults() {
	questions := m.session.Questions()
	summary := stats.Summarize(m.session)
	m.results = resultsui.NewModel(questions, summary, m.session.Selection().String())
	if m.width > 0 && m.height > 0 {
		m.results.Resize(m.width, m.height)
	}
	m.input.Blur()
	m.screen = screenResults
}

func (m *Model) backToMenu() {
	m.closeSession()
	m.session = nil
	m.results = nil
	m.input.Blur()
	m.screen = screenMenu
}

func (m *Model) updateResults(msg tea.KeyMsg) tea.Cmd {
	action, cmd := m.results.Update(msg)
	switch action {
	case resultsui.ActionPlayAgain:
		return m.restartSession()
	case resultsui.ActionChooseLevel:
		m.backToMenu()
		return nil
	case resultsui.ActionQuit:
		return tea.Quit
	}
	return cmd
}

func (m *Model) showError(err error) {
	m.errMsg = err.Error()
	if errors.Is(err, profile.ErrEmptySelection) {
		m.errMsg = "pick a level for at least one operator"
	}
	m.log.Error().Err(err).Msg("failed to start session")
}

func progressWidth(width int) int {
	w := width / 2
	if w < 10 {
		w = 10
	}
	if w > 60 {
		w = 60
	}
	return w
}
