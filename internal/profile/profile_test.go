package profile

import (
	"errors"
	"testing"

	"github.com/ayeshaa24/mental-maths/internal/operator"
)

func TestParseTier(t *testing.T) {
	for _, name := range []string{"warmup", "easy", "Medium", " hard "} {
		if _, err := ParseTier(name); err != nil {
			t.Fatalf("ParseTier(%q): %v", name, err)
		}
	}
	if _, err := ParseTier("difficult"); !errors.Is(err, ErrTierDisabled) {
		t.Fatalf("expected difficult to be disabled, got %v", err)
	}
	if _, err := ParseTier("insane"); !errors.Is(err, ErrUnknownTier) {
		t.Fatalf("expected unknown tier, got %v", err)
	}
}

func TestTiersExcludeDisabled(t *testing.T) {
	tiers := Tiers()
	want := []Tier{Warmup, Easy, Medium, Hard}
	if len(tiers) != len(want) {
		t.Fatalf("expected %d tiers, got %v", len(want), tiers)
	}
	for i := range want {
		if tiers[i] != want[i] {
			t.Fatalf("unexpected order: %v", tiers)
		}
	}
}

func TestHigherTiersAreSupersets(t *testing.T) {
	var prev Profile
	for i, tier := range Tiers() {
		p, _ := Lookup(tier)
		if i == 0 {
			prev = p
			continue
		}
		if p.Operators < prev.Operators {
			t.Fatalf("%s has fewer operators than %s", p.Tier, prev.Tier)
		}
		if p.First.Max < prev.First.Max {
			t.Fatalf("%s has narrower bounds than %s", p.Tier, prev.Tier)
		}
		prev = p
	}
}

func TestEligible(t *testing.T) {
	warmup, _ := Lookup(Warmup)
	ops := warmup.Eligible()
	if len(ops) != 4 || ops[3] != operator.Divide {
		t.Fatalf("unexpected warmup operators: %v", ops)
	}
	hard, _ := Lookup(Hard)
	for _, op := range hard.Eligible() {
		if op == operator.Reserved {
			t.Fatalf("reserved slot must never be eligible")
		}
	}
	if len(hard.Eligible()) != 7 {
		t.Fatalf("expected 7 hard operators, got %d", len(hard.Eligible()))
	}
}

func TestCustomValidate(t *testing.T) {
	var empty Custom
	if !errors.Is(empty.Validate(), ErrEmptySelection) {
		t.Fatalf("expected empty selection error")
	}
	if empty.Ready() {
		t.Fatalf("empty selection must not be ready")
	}
	c := Custom{0, 0, 3}
	if err := c.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	c[operator.Reserved] = 1
	if !errors.Is(c.Validate(), ErrReservedSlot) {
		t.Fatalf("expected reserved slot error")
	}
	c = Custom{6}
	if !errors.Is(c.Validate(), ErrLevelOutOfRange) {
		t.Fatalf("expected level out of range")
	}
}

func TestParseCustom(t *testing.T) {
	c, err := ParseCustom("0,0,3,0,0,0,0,0")
	if err != nil {
		t.Fatalf("parse slots: %v", err)
	}
	sel := c.Selected()
	if len(sel) != 1 || sel[0].Operator != operator.Multiply || sel[0].Level != 3 {
		t.Fatalf("unexpected selection: %+v", sel)
	}

	c, err = ParseCustom("mul=3, add=1")
	if err != nil {
		t.Fatalf("parse assignments: %v", err)
	}
	if c[operator.Add] != 1 || c[operator.Multiply] != 3 {
		t.Fatalf("unexpected levels: %v", c)
	}
	if c.String() != "1,0,3,0,0,0,0,0" {
		t.Fatalf("unexpected string form: %s", c.String())
	}

	if _, err := ParseCustom("0,0,0,0,0,0,0,0"); !errors.Is(err, ErrEmptySelection) {
		t.Fatalf("expected empty selection, got %v", err)
	}
	if _, err := ParseCustom("1,2"); err == nil {
		t.Fatalf("expected slot count error")
	}
}

func TestBoundsForScalesMonotonically(t *testing.T) {
	prev := BoundsFor(1)
	for level := 2; level <= MaxLevel; level++ {
		b := BoundsFor(level)
		if b.First.Max <= prev.First.Max || b.SpecialBase.Max <= prev.SpecialBase.Max {
			t.Fatalf("level %d does not widen bounds", level)
		}
		prev = b
	}
	if b := BoundsFor(3); b.First != (Range{100, 1000}) || b.MulSecond != (Range{1, 12}) {
		t.Fatalf("unexpected level 3 bounds: %+v", b)
	}
}

func TestSelectionConstructors(t *testing.T) {
	if _, err := ForTier(Difficult); !errors.Is(err, ErrTierDisabled) {
		t.Fatalf("expected disabled tier error, got %v", err)
	}
	if _, err := ForCustom(Custom{}); !errors.Is(err, ErrEmptySelection) {
		t.Fatalf("expected empty selection error, got %v", err)
	}
	sel, err := ForTier(Medium)
	if err != nil {
		t.Fatalf("for tier: %v", err)
	}
	if sel.Mode != ModeTiered || sel.Validate() != nil {
		t.Fatalf("unexpected selection: %+v", sel)
	}
}

func TestForTierNormalizesName(t *testing.T) {
	sel, err := ForTier(" Hard ")
	if err != nil {
		t.Fatalf("for tier: %v", err)
	}
	if sel.Tier != Hard {
		t.Fatalf("expected %q, got %q", Hard, sel.Tier)
	}
	if _, ok := Lookup(sel.Tier); !ok {
		t.Fatalf("expected stored tier %q to resolve", sel.Tier)
	}
	if _, err := ForTier("brutal"); !errors.Is(err, ErrUnknownTier) {
		t.Fatalf("expected unknown tier error, got %v", err)
	}
}
