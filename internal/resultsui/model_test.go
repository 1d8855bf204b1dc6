package resultsui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ayeshaa24/mental-maths/internal/model"
	"github.com/ayeshaa24/mental-maths/internal/stats"
)

func sampleQuestions() []model.Question {
	return []model.Question{
		{Display: "7 x 8", Answer: "56", Timing: model.Timing{Status: model.TimingAnswered, Seconds: 1.5}},
		{Display: "√144", Answer: "12", Timing: model.Timing{Status: model.TimingSkipped}},
		{Display: "12 + 30", Answer: "42", Timing: model.Timing{Status: model.TimingAnswered, Seconds: 2.1}},
	}
}

func newSampleModel() *Model {
	questions := sampleQuestions()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	summary := stats.SummarizeQuestions(questions, start, start.Add(6*time.Second))
	return NewModel(questions, summary, "easy")
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestOverviewShowsSummary(t *testing.T) {
	m := newSampleModel()
	out := m.renderOverview(100)
	for _, want := range []string{"Time taken", "6.0s", "Answered", "Skipped", "1.8s"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in overview:\n%s", want, out)
		}
	}
}

func TestGaugeLabelWithoutAnswers(t *testing.T) {
	questions := []model.Question{{Display: "1 + 1", Answer: "2", Timing: model.Timing{Status: model.TimingSkipped}}}
	m := NewModel(questions, stats.SummarizeQuestions(questions, time.Time{}, time.Time{}), "warmup")
	if !strings.HasSuffix(m.renderGauge(), "-") {
		t.Fatalf("expected placeholder label, got %q", m.renderGauge())
	}
}

func TestQuestionTableRows(t *testing.T) {
	m := newSampleModel()
	rows := m.table.Rows()
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[1][3] != model.SkipLabel {
		t.Fatalf("expected skip label, got %q", rows[1][3])
	}
	if rows[0][3] != "1.5 sec" {
		t.Fatalf("unexpected time cell %q", rows[0][3])
	}
}

func TestActions(t *testing.T) {
	tests := []struct {
		keys []string
		want Action
	}{
		{[]string{"r"}, ActionPlayAgain},
		{[]string{"m"}, ActionChooseLevel},
		{[]string{"esc"}, ActionChooseLevel},
		{[]string{"q"}, ActionQuit},
		{[]string{"enter"}, ActionPlayAgain},
		{[]string{"tab", "enter"}, ActionChooseLevel},
		{[]string{"tab", "tab", "enter"}, ActionPlayAgain},
	}
	for _, tt := range tests {
		m := newSampleModel()
		var got Action
		for _, k := range tt.keys {
			got, _ = m.Update(key(k))
		}
		if got != tt.want {
			t.Fatalf("keys %v: got action %d, want %d", tt.keys, got, tt.want)
		}
	}
}

func TestTabNavigationWraps(t *testing.T) {
	m := newSampleModel()
	for i := 0; i < 3; i++ {
		m.Update(key("right"))
	}
	if m.activeTab != tabOverview {
		t.Fatalf("expected to wrap to overview, got %d", m.activeTab)
	}
	m.moveTab(-1)
	if m.activeTab != tabTiming {
		t.Fatalf("expected to wrap back to timing, got %d", m.activeTab)
	}
}

func TestViewFitsWindow(t *testing.T) {
	m := newSampleModel()
	m.Update(tea.WindowSizeMsg{Width: 90, Height: 24})
	lines := strings.Split(m.View(), "\n")
	if len(lines) != 24 {
		t.Fatalf("expected 24 lines, got %d", len(lines))
	}
	if !strings.Contains(m.View(), "play again") {
		t.Fatalf("expected buttons in view")
	}
}
