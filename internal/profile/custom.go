package profile

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ayeshaa24/mental-maths/internal/operator"
)

var (
	// ErrEmptySelection is returned when no operator has a level.
	ErrEmptySelection = errors.New("no operator selected")
	// ErrLevelOutOfRange is returned for levels outside 0..MaxLevel.
	ErrLevelOutOfRange = errors.New("level out of range")
	// ErrReservedSlot is returned when the reserved slot carries a level.
	ErrReservedSlot = errors.New("reserved slot cannot be selected")
)

// MaxLevel is the highest custom level.
const MaxLevel = 5

// Custom holds one level per operator slot; 0 leaves the slot unselected.
type Custom [operator.SlotCount]int

// Choice is one selected operator with its level.
type Choice struct {
	Operator operator.Operator
	Level    int
}

// Validate checks levels and that at least one operator is selected.
func (c Custom) Validate() error {
	for i, level := range c {
		if level < 0 || level > MaxLevel {
			return fmt.Errorf("%w: %s=%d", ErrLevelOutOfRange, operator.Operator(i), level)
		}
	}
	if c[operator.Reserved] != 0 {
		return ErrReservedSlot
	}
	if len(c.Selected()) == 0 {
		return ErrEmptySelection
	}
	return nil
}

// Ready reports whether a session may start with this selection.
func (c Custom) Ready() bool {
	return c.Validate() == nil
}

// Selected lists the selected operators in slot order.
func (c Custom) Selected() []Choice {
	var out []Choice
	for _, op := range operator.All() {
		if level := c[op]; level > 0 {
			out = append(out, Choice{Operator: op, Level: level})
		}
	}
	return out
}

// String renders the comma separated slot form accepted by ParseCustom.
func (c Custom) String() string {
	parts := make([]string, len(c))
	for i, level := range c {
		parts[i] = strconv.Itoa(level)
	}
	return strings.Join(parts, ",")
}

// ParseCustom accepts either eight comma separated levels ("0,0,3,0,0,0,0,0")
// or operator assignments ("mul=3,add=1").
func ParseCustom(s string) (Custom, error) {
	var c Custom
	s = strings.TrimSpace(s)
	if s == "" {
		return c, ErrEmptySelection
	}
	parts := strings.Split(s, ",")
	if strings.Contains(s, "=") {
		for _, part := range parts {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			name, value, ok := strings.Cut(part, "=")
			if !ok {
				return c, fmt.Errorf("invalid custom entry %q", part)
			}
			op, err := operator.Parse(name)
			if err != nil {
				return c, err
			}
			level, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return c, fmt.Errorf("invalid level for %s: %w", op, err)
			}
			c[op] = level
		}
	} else {
		if len(parts) != operator.SlotCount {
			return c, fmt.Errorf("expected %d levels, got %d", operator.SlotCount, len(parts))
		}
		for i, part := range parts {
			level, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return c, fmt.Errorf("invalid level %q: %w", part, err)
			}
			c[i] = level
		}
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// FromSlice builds a Custom from up to SlotCount levels.
func FromSlice(levels []int) (Custom, error) {
	var c Custom
	if len(levels) > operator.SlotCount {
		return c, fmt.Errorf("expected at most %d levels, got %d", operator.SlotCount, len(levels))
	}
	copy(c[:], levels)
	return c, c.Validate()
}

// CustomBounds are the generation bounds derived from one custom level.
type CustomBounds struct {
	First       Range
	AddSecond   Range
	MulSecond   Range
	SpecialBase Range
	PercentStep PercentStep
}

var customPercentSteps = map[int]PercentStep{
	1: {A: 10, B: 10},
	2: {A: 5, B: 10},
	3: {A: 1, B: 10},
	4: {A: 1, B: 1},
	5: {A: 0.5, B: 10},
}

// BoundsFor derives bounds for a level. Infix magnitude grows by a digit per
// level; special operators scale their base by ten per level.
func BoundsFor(level int) CustomBounds {
	if level < 1 {
		level = 1
	}
	if level > MaxLevel {
		level = MaxLevel
	}
	bound := int(math.Pow10(level))
	step, ok := customPercentSteps[level]
	if !ok {
		step = PercentStep{A: 10, B: 10}
	}
	return CustomBounds{
		First:       Range{bound / 10, bound},
		AddSecond:   Range{1, bound},
		MulSecond:   Range{1, 12},
		SpecialBase: Range{1, 10 * level},
		PercentStep: step,
	}
}
