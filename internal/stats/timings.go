package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/ayeshaa24/mental-maths/internal/model"
)

const (
	barRune             = '█'
	minBarWidth         = 10
	terminalWidthBackup = 80
	colorReset          = "\x1b[0m"
	barColor            = "\x1b[35m"
)

// RenderTimings prints one horizontal bar per question, scaled to the slowest
// answer. Skipped questions print the skip label instead of a bar. A width of
// zero uses the terminal width.
func RenderTimings(w io.Writer, questions []model.Question, width int) error {
	return renderTimings(w, questions, width, false)
}

// RenderTimingsWithColor is RenderTimings with forced color output.
func RenderTimingsWithColor(w io.Writer, questions []model.Question, width int, forceColor bool) error {
	return renderTimings(w, questions, width, forceColor)
}

func renderTimings(w io.Writer, questions []model.Question, width int, forceColor bool) error {
	if len(questions) == 0 {
		return nil
	}
	if width <= 0 {
		width = terminalWidth()
	}
	labelWidth := len(fmt.Sprintf("Q%d", len(questions)))
	valueWidth := len("SKIP") + 4
	barWidth := width - labelWidth - valueWidth - 3
	if barWidth < minBarWidth {
		barWidth = minBarWidth
	}

	slowest := 0.0
	for _, t := range AnswerTimes(questions) {
		if t > slowest {
			slowest = t
		}
	}

	useColor := shouldUseColor(w, forceColor)
	for i, q := range questions {
		label := fmt.Sprintf("Q%-*d", labelWidth-1, i+1)
		var bar, value string
		switch q.Timing.Status {
		case model.TimingAnswered:
			n := 1
			if slowest > 0 {
				n = int(math.Round(q.Timing.Seconds / slowest * float64(barWidth)))
			}
			if n < 1 {
				n = 1
			}
			bar = strings.Repeat(string(barRune), n)
			if useColor {
				bar = barColor + bar + colorReset
			}
			bar += strings.Repeat(" ", barWidth-n)
			value = fmt.Sprintf("%.1fs", q.Timing.Seconds)
		case model.TimingSkipped:
			bar = strings.Repeat(" ", barWidth)
			value = model.SkipLabel
		default:
			bar = strings.Repeat(" ", barWidth)
			value = "-"
		}
		if _, err := fmt.Fprintf(w, "%s │%s %*s\n", label, bar, valueWidth, value); err != nil {
			return err
		}
	}
	return nil
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func shouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
