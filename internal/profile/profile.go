// Package profile maps difficulty tiers and custom selections to numeric
// generation bounds.
package profile

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ayeshaa24/mental-maths/internal/operator"
)

var (
	// ErrUnknownTier is returned for tier names outside the catalog.
	ErrUnknownTier = errors.New("unknown tier")
	// ErrTierDisabled is returned for tiers that exist but cannot be played.
	ErrTierDisabled = errors.New("tier is disabled")
)

// Tier names a difficulty preset.
type Tier string

const (
	Warmup    Tier = "warmup"
	Easy      Tier = "easy"
	Medium    Tier = "medium"
	Hard      Tier = "hard"
	Difficult Tier = "difficult"
)

// Range is an inclusive integer interval.
type Range struct {
	Min int
	Max int
}

// Width returns the number of integers in the range.
func (r Range) Width() int {
	if r.Max < r.Min {
		return 0
	}
	return r.Max - r.Min + 1
}

// Contains reports whether v lies inside the range.
func (r Range) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

// PercentStep controls percentage questions: the percentage is a multiple of
// A (in percent) and the base value a multiple of B.
type PercentStep struct {
	A float64
	B int
}

// Profile holds the generation bounds for a tier.
type Profile struct {
	Tier    Tier
	Label   string
	Enabled bool
	// Operators is how many catalog entries, in declaration order, are eligible.
	Operators   int
	First       Range
	MulSecond   Range
	SubMin      int
	SquareBase  Range
	Exponent    Range
	RootBase    Range
	RootIndex   Range
	PercentStep PercentStep
}

// Eligible returns the operators reachable at this tier.
func (p Profile) Eligible() []operator.Operator {
	all := operator.All()
	n := p.Operators
	if n > len(all) {
		n = len(all)
	}
	if n < 0 {
		n = 0
	}
	return all[:n]
}

var profiles = []Profile{
	{
		Tier:        Warmup,
		Label:       "1 digit +, -, x, ÷",
		Enabled:     true,
		Operators:   4,
		First:       Range{1, 10},
		MulSecond:   Range{1, 10},
		SubMin:      1,
		SquareBase:  Range{1, 10},
		Exponent:    Range{2, 2},
		RootBase:    Range{1, 10},
		RootIndex:   Range{1, 1},
		PercentStep: PercentStep{A: 10, B: 10},
	},
	{
		Tier:        Easy,
		Label:       "2 digit +, -, x, ÷",
		Enabled:     true,
		Operators:   4,
		First:       Range{1, 100},
		MulSecond:   Range{1, 10},
		SubMin:      1,
		SquareBase:  Range{1, 10},
		Exponent:    Range{2, 2},
		RootBase:    Range{1, 10},
		RootIndex:   Range{1, 1},
		PercentStep: PercentStep{A: 10, B: 10},
	},
	{
		Tier:        Medium,
		Label:       "3 digit +, -, x, ÷, ², √, %",
		Enabled:     true,
		Operators:   7,
		First:       Range{10, 1000},
		MulSecond:   Range{1, 10},
		SubMin:      10,
		SquareBase:  Range{1, 10},
		Exponent:    Range{2, 2},
		RootBase:    Range{1, 10},
		RootIndex:   Range{2, 2},
		PercentStep: PercentStep{A: 5, B: 10},
	},
	{
		Tier:        Hard,
		Label:       "4 digit +, -, x, ÷, ², ³, √, ∛, %",
		Enabled:     true,
		Operators:   7,
		First:       Range{100, 10000},
		MulSecond:   Range{10, 100},
		SubMin:      100,
		SquareBase:  Range{1, 10},
		Exponent:    Range{2, 3},
		RootBase:    Range{1, 10},
		RootIndex:   Range{2, 3},
		PercentStep: PercentStep{A: 1, B: 10},
	},
	{
		Tier:        Difficult,
		Label:       "+, -, x, ÷, ², ³, √, ∛, %",
		Enabled:     false,
		Operators:   7,
		First:       Range{100, 10000},
		MulSecond:   Range{10, 100},
		SubMin:      100,
		SquareBase:  Range{1, 10},
		Exponent:    Range{2, 3},
		RootBase:    Range{1, 10},
		RootIndex:   Range{2, 3},
		PercentStep: PercentStep{A: 1, B: 10},
	},
}

// Profiles returns every defined tier, disabled ones included, easiest first.
func Profiles() []Profile {
	out := make([]Profile, len(profiles))
	copy(out, profiles)
	return out
}

// Tiers returns the selectable tier names, easiest first.
func Tiers() []Tier {
	var out []Tier
	for _, p := range profiles {
		if p.Enabled {
			out = append(out, p.Tier)
		}
	}
	return out
}

// Lookup returns the profile for a tier, disabled or not.
func Lookup(t Tier) (Profile, bool) {
	for _, p := range profiles {
		if p.Tier == t {
			return p, true
		}
	}
	return Profile{}, false
}

// ParseTier resolves a selectable tier by name.
func ParseTier(name string) (Tier, error) {
	t := Tier(strings.ToLower(strings.TrimSpace(name)))
	p, ok := Lookup(t)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTier, name)
	}
	if !p.Enabled {
		return "", fmt.Errorf("%w: %s", ErrTierDisabled, t)
	}
	return t, nil
}
