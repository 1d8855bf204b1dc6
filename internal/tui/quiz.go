package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/ayeshaa24/mental-maths/internal/model"
	"github.com/ayeshaa24/mental-maths/internal/operator"
	"github.com/ayeshaa24/mental-maths/internal/session"
	"github.com/ayeshaa24/mental-maths/internal/stats"
)

func (m *Model) updateQuiz(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.backToMenu()
		return nil
	case tea.KeyTab:
		if err := m.session.Skip(); err != nil {
			m.logTransitionError(err)
			return nil
		}
		m.input.Reset()
		if m.session.Complete() {
			m.showResults()
		}
		return nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	value := m.input.Value()
	if value == before {
		return cmd
	}
	matched, err := m.session.Submit(value)
	if err != nil {
		m.logTransitionError(err)
		return cmd
	}
	if !matched {
		return cmd
	}
	return tea.Batch(cmd, m.scheduleReveal())
}

// scheduleReveal shows the next question after the configured delay.
func (m *Model) scheduleReveal() tea.Cmd {
	token := revealMsg{sessionID: m.session.ID(), index: m.session.Progress()}
	if m.config.RevealDelay <= 0 {
		return func() tea.Msg { return token }
	}
	return tea.Tick(m.config.RevealDelay, func(_ time.Time) tea.Msg {
		return token
	})
}

func (m *Model) handleReveal(msg revealMsg) tea.Cmd {
	s := m.session
	if s == nil || s.Closed() || s.ID() != msg.sessionID || s.Progress() != msg.index || !s.AwaitingReveal() {
		return nil
	}
	if err := s.Reveal(); err != nil {
		m.logTransitionError(err)
		return nil
	}
	m.input.Reset()
	if s.Complete() {
		m.showResults()
	}
	return nil
}

func (m *Model) logTransitionError(err error) {
	if errors.Is(err, session.ErrSessionClosed) || errors.Is(err, session.ErrSessionComplete) {
		m.log.Debug().Err(err).Msg("ignored input for inactive session")
		return
	}
	m.log.Warn().Err(err).Msg("session transition failed")
}

func (m *Model) viewQuiz() string {
	s := m.session
	q, ok := s.Current()
	if !ok {
		return ""
	}
	header := fmt.Sprintf("Question %d/%d", s.Progress()+1, model.BatchSize)
	style := questionStyle
	if s.AwaitingReveal() {
		style = matchedStyle
	}
	lines := []string{
		titleStyle.Render(header),
		m.bar.ViewAs(s.Fraction()),
		"",
		style.Render(renderQuestion(q)),
		"",
		m.input.View(),
		"",
	}
	if spark := stats.Sparkline(stats.AnswerTimes(s.Questions())); spark != "" {
		lines = append(lines, footerStyle.Render("times "+spark))
	}
	lines = append(lines, footerStyle.Render("tab: skip  esc: menu  ctrl+c: quit"))
	return strings.Join(lines, "\n")
}

// renderQuestion stacks infix questions right-aligned with a rule below;
// special questions stay on one line.
func renderQuestion(q model.Question) string {
	if q.Operator.Category() != operator.Infix {
		return q.Display
	}
	top := operator.FormatNumber(q.First)
	bottom := q.Operator.Symbol() + " " + operator.FormatNumber(q.Second)
	width := runewidth.StringWidth(top)
	if w := runewidth.StringWidth(bottom); w > width {
		width = w
	}
	return strings.Join([]string{
		padLeft(top, width),
		padLeft(bottom, width),
		strings.Repeat("─", width),
	}, "\n")
}

func padLeft(s string, width int) string {
	if w := runewidth.StringWidth(s); w < width {
		return strings.Repeat(" ", width-w) + s
	}
	return s
}
