// Package generator builds quiz question batches.
package generator

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/ayeshaa24/mental-maths/internal/model"
	"github.com/ayeshaa24/mental-maths/internal/operator"
	"github.com/ayeshaa24/mental-maths/internal/profile"
)

// DefaultMaxAttempts bounds consecutive rejected attempts for one question.
const DefaultMaxAttempts = 1000

// ErrGenerationExhausted is returned when the bounds never yield a valid question.
var ErrGenerationExhausted = errors.New("question generation exhausted")

// maxDivisor is the largest divisor offered in division questions.
const maxDivisor = 12

// Generator produces randomized question batches.
type Generator struct {
	rnd         *rand.Rand
	maxAttempts int
	log         zerolog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed makes generation deterministic.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.rnd = rand.New(rand.NewSource(seed))
	}
}

// WithMaxAttempts overrides DefaultMaxAttempts. Values below one are ignored.
func WithMaxAttempts(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.maxAttempts = n
		}
	}
}

// WithLogger attaches a logger for rejected attempts.
func WithLogger(log zerolog.Logger) Option {
	return func(g *Generator) {
		g.log = log
	}
}

// New returns a Generator seeded with the current time.
func New(opts ...Option) *Generator {
	g := &Generator{
		rnd:         rand.New(rand.NewSource(time.Now().UnixNano())),
		maxAttempts: DefaultMaxAttempts,
		log:         zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// shape is a candidate question before formatting.
type shape struct {
	op     operator.Operator
	first  float64
	second float64
}

func (s shape) question() model.Question {
	return model.Question{
		First:    s.first,
		Second:   s.second,
		Operator: s.op,
		Display:  operator.Display(s.op, s.first, s.second),
		Answer:   operator.FormatAnswer(s.op.Apply(s.first, s.second)),
	}
}

// Generate returns exactly model.BatchSize questions for the selection.
// Attempts without a valid shape are discarded and retried.
func (g *Generator) Generate(sel profile.Selection) ([]model.Question, error) {
	if err := sel.Validate(); err != nil {
		return nil, fmt.Errorf("invalid selection: %w", err)
	}

	var next func() (shape, bool)
	switch sel.Mode {
	case profile.ModeTiered:
		p, ok := profile.Lookup(sel.Tier)
		if !ok {
			return nil, fmt.Errorf("invalid selection: %w: %q", profile.ErrUnknownTier, sel.Tier)
		}
		eligible := p.Eligible()
		next = func() (shape, bool) {
			return g.tieredShape(p, eligible[g.rnd.Intn(len(eligible))])
		}
	case profile.ModeCustom:
		choices := sel.Custom.Selected()
		next = func() (shape, bool) {
			return g.customShape(choices[g.rnd.Intn(len(choices))])
		}
	}

	questions := make([]model.Question, 0, model.BatchSize)
	rejected := 0
	for len(questions) < model.BatchSize {
		s, ok := next()
		if !ok {
			rejected++
			g.log.Debug().Str("op", s.op.Name()).Float64("first", s.first).Msg("rejected question attempt")
			if rejected >= g.maxAttempts {
				return nil, fmt.Errorf("%w: %d consecutive rejected attempts for %s", ErrGenerationExhausted, rejected, sel)
			}
			continue
		}
		rejected = 0
		questions = append(questions, s.question())
	}
	return questions, nil
}

func (g *Generator) tieredShape(p profile.Profile, op operator.Operator) (shape, bool) {
	s := shape{op: op}
	switch op {
	case operator.Add:
		s.first = float64(g.intn(p.First))
		s.second = float64(g.intn(p.First))
	case operator.Subtract:
		first := g.intn(p.First)
		s.first = float64(first)
		s.second = float64(g.intn(profile.Range{Min: minInt(p.SubMin, first), Max: first}))
	case operator.Multiply:
		s.first = float64(g.intn(p.First))
		s.second = float64(g.intn(p.MulSecond))
	case operator.Divide:
		return g.divideShape(p.First)
	case operator.Square:
		s.first = float64(g.intn(p.SquareBase))
		s.second = float64(g.intn(p.Exponent))
	case operator.Root:
		s.first, s.second = g.rootOperands(p.RootBase, g.intn(p.RootIndex))
	case operator.Percent:
		s.first, s.second = g.percentOperands(p.PercentStep)
	default:
		return s, false
	}
	return s, true
}

func (g *Generator) customShape(c profile.Choice) (shape, bool) {
	b := profile.BoundsFor(c.Level)
	s := shape{op: c.Operator}
	switch c.Operator {
	case operator.Add:
		s.first = float64(g.intn(b.First))
		s.second = float64(g.intn(b.AddSecond))
	case operator.Subtract:
		first := g.intn(b.First)
		s.first = float64(first)
		s.second = float64(g.intn(profile.Range{Min: 1, Max: first}))
	case operator.Multiply:
		s.first = float64(g.intn(b.First))
		s.second = float64(g.intn(b.MulSecond))
	case operator.Divide:
		return g.divideShape(b.First)
	case operator.Square:
		s.first = float64(g.intn(b.SpecialBase))
		s.second = 2
	case operator.Root:
		s.first, s.second = g.rootOperands(b.SpecialBase, 2)
	case operator.Percent:
		s.first, s.second = g.percentOperands(b.PercentStep)
	default:
		return s, false
	}
	return s, true
}

func (g *Generator) divideShape(first profile.Range) (shape, bool) {
	n := g.intn(first)
	s := shape{op: operator.Divide, first: float64(n)}
	divisors := Factors(n)
	if len(divisors) == 0 {
		return s, false
	}
	s.second = float64(divisors[g.rnd.Intn(len(divisors))])
	return s, true
}

// rootOperands returns base**index and the fractional exponent 1/index.
func (g *Generator) rootOperands(base profile.Range, index int) (float64, float64) {
	if index < 1 {
		index = 1
	}
	b := g.intn(base)
	return math.Pow(float64(b), float64(index)), 1 / float64(index)
}

func (g *Generator) percentOperands(step profile.PercentStep) (float64, float64) {
	steps := int(100 / step.A)
	if steps < 1 {
		steps = 1
	}
	k := 1 + g.rnd.Intn(steps)
	first := float64(k) * step.A / 100
	second := float64((1 + g.rnd.Intn(100)) * step.B)
	return first, second
}

func (g *Generator) intn(r profile.Range) int {
	if r.Width() <= 0 {
		return r.Min
	}
	return r.Min + g.rnd.Intn(r.Width())
}

// Factors returns the divisors offered for n. Every i in [2, min(√n, 12)]
// dividing n is included, along with its quotient n/i when that quotient is
// itself in [2, 12]. The result is sorted.
func Factors(n int) []int {
	if n < 4 {
		return nil
	}
	limit := int(math.Sqrt(float64(n)))
	if limit > maxDivisor {
		limit = maxDivisor
	}
	seen := map[int]struct{}{}
	for i := 2; i <= limit; i++ {
		if n%i != 0 {
			continue
		}
		seen[i] = struct{}{}
		if q := n / i; q > 1 && q <= maxDivisor {
			seen[q] = struct{}{}
		}
	}
	out := make([]int, 0, len(seen))
	for d := range seen {
		out = append(out, d)
	}
	sort.Ints(out)
	return out
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
