// Package resultsui provides the Bubble Tea results screen shown after a quiz.
package resultsui

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ayeshaa24/mental-maths/internal/model"
	"github.com/ayeshaa24/mental-maths/internal/stats"
)

const (
	tabOverview = iota
	tabQuestions
	tabTiming
)

// Action is what the player asked for on the results screen.
type Action int

const (
	ActionNone Action = iota
	ActionPlayAgain
	ActionChooseLevel
	ActionQuit
)

const gaugeWidth = 30

var buttonLabels = []string{"play again", "choose level"}

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	buttonStyle     = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#B0B0B0")).
			Padding(0, 2).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	focusedButtonStyle = buttonStyle.
				Foreground(lipgloss.Color("#F0F0F0")).
				Bold(true).
				BorderForeground(lipgloss.Color("#C89A3A"))
)

// Model implements the Bubble Tea results UI.
type Model struct {
	questions []model.Question
	summary   stats.Summary
	selection string

	tabs      []string
	activeTab int
	viewports []viewport.Model
	table     table.Model
	gauge     progress.Model
	button    int

	width  int
	height int
}

// NewModel constructs a results UI for a completed quiz.
func NewModel(questions []model.Question, summary stats.Summary, selection string) *Model {
	m := &Model{
		questions: questions,
		summary:   summary,
		selection: selection,
		tabs:      []string{"Overview", "Questions", "Timing"},
		gauge: progress.New(
			progress.WithDefaultGradient(),
			progress.WithoutPercentage(),
			progress.WithWidth(gaugeWidth),
		),
	}
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
	m.table = buildQuestionTable(questions, 1)
	m.renderTabContents()
	return m
}

// Summary returns the summary the screen was built from.
func (m *Model) Summary() stats.Summary {
	return m.summary
}

// Resize lays the screen out for a new terminal size.
func (m *Model) Resize(width, height int) {
	m.width = width
	m.height = height
	m.updateLayout()
	m.renderTabContents()
}

// Update handles a message and reports the action it triggered, if any.
func (m *Model) Update(msg tea.Msg) (Action, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Resize(msg.Width, msg.Height)
		return ActionNone, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return ActionQuit, nil
		}
		switch msg.String() {
		case "q":
			return ActionQuit, nil
		case "r":
			return ActionPlayAgain, nil
		case "m", "esc":
			return ActionChooseLevel, nil
		case "tab":
			m.button = (m.button + 1) % len(buttonLabels)
			return ActionNone, nil
		case "shift+tab":
			m.button = (m.button + len(buttonLabels) - 1) % len(buttonLabels)
			return ActionNone, nil
		case "enter":
			if m.button == 0 {
				return ActionPlayAgain, nil
			}
			return ActionChooseLevel, nil
		case "left", "h":
			m.moveTab(-1)
			return ActionNone, nil
		case "right", "l":
			m.moveTab(1)
			return ActionNone, nil
		default:
			var cmd tea.Cmd
			if m.activeTab == tabQuestions {
				m.table, cmd = m.table.Update(msg)
				return ActionNone, cmd
			}
			vp := m.viewports[m.activeTab]
			vp, cmd = vp.Update(msg)
			m.viewports[m.activeTab] = vp
			return ActionNone, cmd
		}
	}
	return ActionNone, nil
}

// View renders the results screen.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return m.renderOverview(80)
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = lipgloss.Height(m.renderButtons()) + 1
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = bodyHeight
	}
	m.table.SetWidth(m.width)
	m.table.SetHeight(maxInt(1, bodyHeight-1))
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
	if m.activeTab == tabQuestions {
		m.table.Focus()
	} else {
		m.table.Blur()
	}
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	line := truncateLine(fmt.Sprintf("Results: %s", m.selection), m.width)
	return tabs + "\n" + headerStyle.Render(line)
}

func (m *Model) renderButtons() string {
	parts := make([]string, 0, len(buttonLabels))
	for i, label := range buttonLabels {
		if i == m.button {
			parts = append(parts, focusedButtonStyle.Render(label))
		} else {
			parts = append(parts, buttonStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderFooter() string {
	help := headerStyle.Render("Nav: left/right  Scroll: up/down  Buttons: tab/enter  Play again: r  Menu: m  Quit: q")
	return m.renderButtons() + "\n" + help
}

func (m *Model) renderBody(height int) string {
	if m.activeTab == tabQuestions {
		return fitLines(tableMutedStyle.Render(m.table.View()), m.width, height)
	}
	return fitLines(m.viewports[m.activeTab].View(), m.width, height)
}

func (m *Model) renderTabContents() {
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.viewports[tabOverview].SetContent(m.renderOverview(width))
	m.viewports[tabTiming].SetContent(renderTiming(m.questions, width))
	m.viewports[tabQuestions].SetContent("")
}

func (m *Model) renderOverview(width int) string {
	s := m.summary
	cards := []string{
		metricCard("Time taken", fmt.Sprintf("%.1fs", s.Total.Seconds())),
		metricCard("Answered", fmt.Sprintf("%d", s.Answered)),
		metricCard("Skipped", fmt.Sprintf("%d", s.Skipped)),
	}
	var row string
	if width < 60 {
		row = strings.Join(cards, "\n")
	} else {
		row = lipgloss.JoinHorizontal(lipgloss.Top, cards...)
	}
	lines := []string{
		row,
		"",
		cardTitleStyle.Render("Speed"),
		m.renderGauge(),
	}
	if spark := stats.Sparkline(stats.AnswerTimes(m.questions)); spark != "" {
		lines = append(lines, "", cardTitleStyle.Render("Answer times")+" "+spark)
	}
	return strings.Join(lines, "\n")
}

// renderGauge draws the speed gauge with the average time as its label.
func (m *Model) renderGauge() string {
	label := "-"
	if m.summary.Answered > 0 {
		label = fmt.Sprintf("%.1fs", m.summary.Average)
	}
	return m.gauge.ViewAs(m.summary.Rating) + " " + cardValueStyle.Render(label)
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func renderTiming(questions []model.Question, width int) string {
	var buf bytes.Buffer
	if err := stats.RenderTimingsWithColor(&buf, questions, width, true); err != nil {
		return fmt.Sprintf("Failed to render timings: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func buildQuestionTable(questions []model.Question, height int) table.Model {
	columns := []table.Column{
		{Title: "#", Width: 3},
		{Title: "Question", Width: 16},
		{Title: "Answer", Width: 10},
		{Title: "Time", Width: 9},
	}
	rows := make([]table.Row, 0, len(questions))
	for i, q := range questions {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			q.Display,
			q.Answer,
			q.Timing.String(),
		})
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(maxInt(1, height)),
	)
	t.SetStyles(tableStyles())
	return t
}

func tableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
