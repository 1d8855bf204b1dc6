// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/ayeshaa24/mental-maths/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Source is the finished quiz data a summary is computed from.
type Source interface {
	Questions() []model.Question
	StartedAt() time.Time
	EndedAt() time.Time
}

// Summary aggregates a completed quiz.
type Summary struct {
	// Total spans the whole quiz, skipped questions included.
	Total time.Duration
	// Average is the mean answer time in seconds over answered questions.
	Average  float64
	Answered int
	Skipped  int
	// Rating is the speed gauge fill fraction for Average.
	Rating float64
}

// Summarize computes the summary for a completed quiz. It does not modify src.
func Summarize(src Source) Summary {
	return SummarizeQuestions(src.Questions(), src.StartedAt(), src.EndedAt())
}

// SummarizeQuestions is Summarize over raw values.
func SummarizeQuestions(questions []model.Question, startedAt, endedAt time.Time) Summary {
	var sum float64
	var s Summary
	for _, q := range questions {
		switch q.Timing.Status {
		case model.TimingAnswered:
			sum += q.Timing.Seconds
			s.Answered++
		case model.TimingSkipped:
			s.Skipped++
		}
	}
	if s.Answered > 0 {
		s.Average = sum / float64(s.Answered)
	}
	if endedAt.After(startedAt) {
		s.Total = endedAt.Sub(startedAt)
	}
	s.Rating = SpeedRating(s.Average)
	return s
}

type ratingStep struct {
	upTo     float64
	fraction float64
}

var ratingSteps = []ratingStep{
	{1, 1.0},
	{2, 0.9},
	{3, 0.8},
	{5, 0.7},
	{7, 0.6},
	{10, 0.5},
	{12, 0.4},
	{15, 0.3},
	{20, 0.2},
	{30, 0.1},
}

// SpeedRating maps an average answer time in seconds to a gauge fill fraction.
// Zero means nothing was answered.
func SpeedRating(avg float64) float64 {
	if avg <= 0 {
		return 0
	}
	for _, step := range ratingSteps {
		if avg <= step.upTo {
			return step.fraction
		}
	}
	return 0.05
}

// AnswerTimes returns the elapsed seconds of answered questions in order.
func AnswerTimes(questions []model.Question) []float64 {
	out := make([]float64, 0, len(questions))
	for _, q := range questions {
		if q.Timing.Answered() {
			out = append(out, q.Timing.Seconds)
		}
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderSummary prints the headline numbers of a quiz.
func RenderSummary(w io.Writer, s Summary) error {
	lines := []string{
		fmt.Sprintf("Time taken: %.1fs", s.Total.Seconds()),
		fmt.Sprintf("Avg time: %.1fs", s.Average),
		fmt.Sprintf("Answered: %d  Skipped: %d", s.Answered, s.Skipped),
		fmt.Sprintf("Speed: %.0f%%", s.Rating*100),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderResults prints the question, answer and time of each question.
func RenderResults(w io.Writer, questions []model.Question) error {
	if len(questions) == 0 {
		_, err := fmt.Fprintln(w, "No questions.")
		return err
	}
	columns := []column{{"#", true}, {"Question", false}, {"Answer", true}, {"Time", true}}
	rows := make([][]string, 0, len(questions))
	for i, q := range questions {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			q.Display,
			q.Answer,
			q.Timing.String(),
		})
	}
	for _, line := range formatTable(columns, rows) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderWorksheet prints numbered questions, with answers when requested.
func RenderWorksheet(w io.Writer, questions []model.Question, withAnswers bool) error {
	columns := []column{{"#", true}, {"Question", false}}
	if withAnswers {
		columns = append(columns, column{"Answer", true})
	}
	rows := make([][]string, 0, len(questions))
	for i, q := range questions {
		row := []string{fmt.Sprintf("%d", i+1), q.Display}
		if withAnswers {
			row = append(row, q.Answer)
		}
		rows = append(rows, row)
	}
	for _, line := range formatTable(columns, rows) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
