package operator

import (
	"fmt"
	"math"
	"strconv"
)

// answerPlaces is the number of fractional digits kept in canonical answers.
const answerPlaces = 4

// FormatNumber renders integral values without a fractional part and
// everything else in shortest decimal form.
func FormatNumber(v float64) string {
	if v == math.Trunc(v) && !math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatAnswer returns the canonical answer string for a result. The value is
// rounded to four places first, so floating noise such as 3.0000000000000004
// from a cube root still renders as an integer.
func FormatAnswer(v float64) string {
	scale := math.Pow(10, answerPlaces)
	rounded := math.Round(v*scale) / scale
	if rounded == 0 {
		rounded = 0 // drop negative zero
	}
	return FormatNumber(rounded)
}

// FormatPercentage renders "{pct}% of {second}". pct is first*100 rounded to
// an integer unless its fractional part is exactly one half.
func FormatPercentage(first, second float64) string {
	pct := first * 100
	if pct-math.Floor(pct) != 0.5 {
		pct = math.Round(pct)
	}
	return fmt.Sprintf("%s%% of %s", FormatNumber(pct), FormatNumber(second))
}

// Display renders the question text shown to the player.
func Display(op Operator, first, second float64) string {
	switch op {
	case Square:
		return FormatNumber(first) + ExponentGlyph(int(math.Round(second)))
	case Root:
		return RootGlyph(RootIndex(second)) + FormatNumber(first)
	case Percent:
		return FormatPercentage(first, second)
	default:
		return fmt.Sprintf("%s %s %s", FormatNumber(first), op.Symbol(), FormatNumber(second))
	}
}

// RootIndex recovers the integer root index from its fractional exponent.
func RootIndex(exponent float64) int {
	if exponent <= 0 {
		return 1
	}
	return int(math.Round(1 / exponent))
}
