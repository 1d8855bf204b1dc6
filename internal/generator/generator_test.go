package generator

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"testing"

	"github.com/ayeshaa24/mental-maths/internal/model"
	"github.com/ayeshaa24/mental-maths/internal/operator"
	"github.com/ayeshaa24/mental-maths/internal/profile"
)

var answerPattern = regexp.MustCompile(`^\d+(\.\d{1,4})?$`)

func allSelections(t *testing.T) []profile.Selection {
	t.Helper()
	var out []profile.Selection
	for _, tier := range profile.Tiers() {
		sel, err := profile.ForTier(tier)
		if err != nil {
			t.Fatalf("for tier %s: %v", tier, err)
		}
		out = append(out, sel)
	}
	for level := 1; level <= profile.MaxLevel; level++ {
		var c profile.Custom
		for _, op := range operator.All() {
			c[op] = level
		}
		sel, err := profile.ForCustom(c)
		if err != nil {
			t.Fatalf("for custom: %v", err)
		}
		out = append(out, sel)
	}
	return out
}

func TestGenerateBatchProperties(t *testing.T) {
	for _, sel := range allSelections(t) {
		for seed := int64(1); seed <= 40; seed++ {
			g := New(WithSeed(seed))
			questions, err := g.Generate(sel)
			if err != nil {
				t.Fatalf("%s seed %d: %v", sel, seed, err)
			}
			if len(questions) != model.BatchSize {
				t.Fatalf("%s: expected %d questions, got %d", sel, model.BatchSize, len(questions))
			}
			for _, q := range questions {
				checkQuestion(t, sel, q)
			}
		}
	}
}

func checkQuestion(t *testing.T, sel profile.Selection, q model.Question) {
	t.Helper()
	if q.Display == "" {
		t.Fatalf("%s: empty display for %+v", sel, q)
	}
	if !answerPattern.MatchString(q.Answer) {
		t.Fatalf("%s: answer %q is not canonical (%s)", sel, q.Answer, q.Display)
	}
	if q.Timing.Status != model.TimingPending {
		t.Fatalf("%s: new question must have pending timing", sel)
	}
	if !q.Operator.Selectable() {
		t.Fatalf("%s: generated reserved operator", sel)
	}
	switch q.Operator {
	case operator.Divide:
		first, second := int(q.First), int(q.Second)
		if second < 2 || second > 12 {
			t.Fatalf("%s: divisor %d out of range", sel, second)
		}
		if first%second != 0 {
			t.Fatalf("%s: %d is not divisible by %d", sel, first, second)
		}
	case operator.Subtract:
		v, err := strconv.ParseFloat(q.Answer, 64)
		if err != nil || v < 0 {
			t.Fatalf("%s: negative subtraction %s = %s", sel, q.Display, q.Answer)
		}
	case operator.Percent:
		if q.Display != operator.FormatPercentage(q.First, q.Second) {
			t.Fatalf("%s: percent display %q mismatch", sel, q.Display)
		}
	case operator.Root:
		index := operator.RootIndex(q.Second)
		root := math.Round(math.Pow(q.First, q.Second))
		if math.Pow(root, float64(index)) != q.First {
			t.Fatalf("%s: root %s is not exact", sel, q.Display)
		}
		if q.Answer != operator.FormatNumber(root) {
			t.Fatalf("%s: root answer %q, want %v", sel, q.Answer, root)
		}
	}
}

func TestGenerateTierOperatorEligibility(t *testing.T) {
	sel, _ := profile.ForTier(profile.Warmup)
	for seed := int64(1); seed <= 30; seed++ {
		questions, err := New(WithSeed(seed)).Generate(sel)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		for _, q := range questions {
			if q.Operator.Category() != operator.Infix {
				t.Fatalf("warmup generated %s", q.Display)
			}
			if q.First < 1 || q.First > 10 {
				t.Fatalf("warmup operand out of range: %s", q.Display)
			}
		}
	}
}

func TestGenerateCustomMultiplyOnly(t *testing.T) {
	c, err := profile.ParseCustom("mul=3")
	if err != nil {
		t.Fatalf("parse custom: %v", err)
	}
	sel, err := profile.ForCustom(c)
	if err != nil {
		t.Fatalf("for custom: %v", err)
	}
	questions, err := New(WithSeed(7)).Generate(sel)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for _, q := range questions {
		if q.Operator != operator.Multiply {
			t.Fatalf("expected multiply only, got %s", q.Display)
		}
		if q.First < 100 || q.First > 1000 || q.Second < 1 || q.Second > 12 {
			t.Fatalf("operands out of level 3 bounds: %s", q.Display)
		}
	}
}

func TestGenerateIsDeterministicWithSeed(t *testing.T) {
	sel, _ := profile.ForTier(profile.Hard)
	a, err := New(WithSeed(42)).Generate(sel)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	b, err := New(WithSeed(42)).Generate(sel)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for i := range a {
		if a[i].Display != b[i].Display || a[i].Answer != b[i].Answer {
			t.Fatalf("question %d differs: %q vs %q", i, a[i].Display, b[i].Display)
		}
	}
}

func TestGenerateRejectsInvalidSelection(t *testing.T) {
	_, err := New().Generate(profile.Selection{Mode: profile.ModeCustom})
	if !errors.Is(err, profile.ErrEmptySelection) {
		t.Fatalf("expected empty selection error, got %v", err)
	}
	_, err = New().Generate(profile.Selection{Mode: profile.ModeTiered, Tier: profile.Difficult})
	if !errors.Is(err, profile.ErrTierDisabled) {
		t.Fatalf("expected disabled tier error, got %v", err)
	}
}

func TestGenerateMixedCaseTier(t *testing.T) {
	sel, err := profile.ForTier("Hard")
	if err != nil {
		t.Fatalf("for tier: %v", err)
	}
	questions, err := New(WithSeed(1)).Generate(sel)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(questions) != model.BatchSize {
		t.Fatalf("expected %d questions, got %d", model.BatchSize, len(questions))
	}
}

func TestGenerateRejectsUnresolvedTier(t *testing.T) {
	sel := profile.Selection{Mode: profile.ModeTiered, Tier: "Hard"}
	_, err := New(WithSeed(1)).Generate(sel)
	if !errors.Is(err, profile.ErrUnknownTier) {
		t.Fatalf("expected unknown tier error, got %v", err)
	}
}

func TestDivideShapeRejectsWithoutDivisors(t *testing.T) {
	g := New(WithSeed(1))
	if _, ok := g.divideShape(profile.Range{Min: 1, Max: 3}); ok {
		t.Fatalf("expected rejection for operands without divisors")
	}
	s, ok := g.divideShape(profile.Range{Min: 84, Max: 84})
	if !ok {
		t.Fatalf("expected 84 to have divisors")
	}
	if int(s.first)%int(s.second) != 0 {
		t.Fatalf("invalid divisor %v for %v", s.second, s.first)
	}
}

func TestGenerateExhaustsAttemptBudget(t *testing.T) {
	c, _ := profile.ParseCustom("div=1")
	sel, _ := profile.ForCustom(c)
	exhausted := 0
	for seed := int64(1); seed <= 50; seed++ {
		_, err := New(WithSeed(seed), WithMaxAttempts(1)).Generate(sel)
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrGenerationExhausted) {
			t.Fatalf("unexpected error: %v", err)
		}
		exhausted++
	}
	if exhausted == 0 {
		t.Fatalf("expected at least one exhausted batch with a single attempt budget")
	}
}

func TestFactors(t *testing.T) {
	tests := []struct {
		n    int
		want []int
	}{
		{1, nil},
		{7, nil},
		{4, []int{2}},
		{12, []int{2, 3, 4, 6}},
		{84, []int{2, 3, 4, 6, 7, 12}},
		{97, nil},
		{1000, []int{2, 4, 5, 8, 10}},
	}
	for _, tt := range tests {
		got := Factors(tt.n)
		if len(got) != len(tt.want) {
			t.Fatalf("Factors(%d) = %v, want %v", tt.n, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Fatalf("Factors(%d) = %v, want %v", tt.n, got, tt.want)
			}
		}
	}
}
