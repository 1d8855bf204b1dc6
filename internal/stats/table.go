package stats

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// column describes one column of a plain-text table.
type column struct {
	title string
	right bool
}

// narrow measures operator glyphs (÷ √ ² ³ ∛) as one cell. They are East Asian
// ambiguous, so the locale-dependent default would count them as two under
// CJK locales while terminals draw them as one.
var narrow = &runewidth.Condition{EastAsianWidth: false}

func formatTable(columns []column, rows [][]string) []string {
	if len(columns) == 0 {
		return nil
	}
	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = displayWidth(col.title)
	}
	for _, row := range rows {
		for i := range columns {
			if w := displayWidth(cell(row, i)); w > widths[i] {
				widths[i] = w
			}
		}
	}

	titles := make([]string, len(columns))
	for i, col := range columns {
		titles[i] = col.title
	}
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, formatRow(columns, widths, titles))
	for _, row := range rows {
		lines = append(lines, formatRow(columns, widths, row))
	}
	return lines
}

func formatRow(columns []column, widths []int, row []string) string {
	cells := make([]string, len(columns))
	for i, col := range columns {
		cells[i] = padCell(cell(row, i), widths[i], col.right)
	}
	return strings.Join(cells, " ")
}

// cell returns row[i], or an empty cell for short rows.
func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func padCell(value string, width int, rightAlign bool) string {
	padding := width - displayWidth(value)
	if padding <= 0 {
		return value
	}
	if rightAlign {
		return strings.Repeat(" ", padding) + value
	}
	return value + strings.Repeat(" ", padding)
}

func displayWidth(value string) int {
	return narrow.StringWidth(value)
}
