// Package operator defines the closed catalog of quiz operators.
package operator

import (
	"fmt"
	"math"
	"strings"
)

// Operator identifies one slot of the catalog. The value doubles as the slot
// index used by custom selections.
type Operator int

// Catalog entries in declaration order.
const (
	Add Operator = iota
	Subtract
	Multiply
	Divide
	Square
	Root
	Percent
	// Reserved keeps the eighth custom slot. It is never selectable.
	Reserved
)

// SlotCount is the number of catalog slots including Reserved.
const SlotCount = 8

// Category separates two-operand infix operators from special ones.
type Category int

const (
	Infix Category = iota
	Special
)

func (c Category) String() string {
	if c == Infix {
		return "infix"
	}
	return "special"
}

type entry struct {
	name     string
	symbol   string
	category Category
	apply    func(a, b float64) float64
}

var catalog = [SlotCount]entry{
	Add:      {name: "add", symbol: "+", category: Infix, apply: func(a, b float64) float64 { return a + b }},
	Subtract: {name: "sub", symbol: "-", category: Infix, apply: func(a, b float64) float64 { return a - b }},
	Multiply: {name: "mul", symbol: "x", category: Infix, apply: func(a, b float64) float64 { return a * b }},
	Divide:   {name: "div", symbol: "÷", category: Infix, apply: floorDiv},
	Square:   {name: "pow", symbol: "²", category: Special, apply: math.Pow},
	Root:     {name: "root", symbol: "√", category: Special, apply: math.Pow},
	Percent:  {name: "pct", symbol: "%", category: Special, apply: func(a, b float64) float64 { return a * b }},
	Reserved: {name: "reserved", symbol: "?", category: Special, apply: func(float64, float64) float64 { return 0 }},
}

func floorDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return math.Floor(a / b)
}

// All returns the seven real operators in declaration order.
func All() []Operator {
	return []Operator{Add, Subtract, Multiply, Divide, Square, Root, Percent}
}

// Slots returns every catalog slot, Reserved included.
func Slots() []Operator {
	return append(All(), Reserved)
}

// Valid reports whether o is a catalog slot.
func (o Operator) Valid() bool {
	return o >= Add && o <= Reserved
}

// Selectable reports whether o may appear in a generated question.
func (o Operator) Selectable() bool {
	return o.Valid() && o != Reserved
}

// Name returns the short operator name used by flags and config.
func (o Operator) Name() string {
	if !o.Valid() {
		return fmt.Sprintf("operator(%d)", int(o))
	}
	return catalog[o].name
}

// Symbol returns the display symbol.
func (o Operator) Symbol() string {
	if !o.Valid() {
		return "?"
	}
	return catalog[o].symbol
}

// Category returns how the operator is rendered.
func (o Operator) Category() Category {
	if !o.Valid() {
		return Special
	}
	return catalog[o].category
}

// Apply evaluates the operator. Divide floors, Root expects the fractional
// exponent as b, Percent expects a fraction as a.
func (o Operator) Apply(a, b float64) float64 {
	if !o.Valid() {
		return 0
	}
	return catalog[o].apply(a, b)
}

func (o Operator) String() string {
	return o.Name()
}

// Parse resolves an operator from its name or symbol.
func Parse(s string) (Operator, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	switch key {
	case "subtract", "minus":
		return Subtract, nil
	case "multiply", "times", "*", "×":
		return Multiply, nil
	case "divide", "/":
		return Divide, nil
	case "square", "power", "^":
		return Square, nil
	case "sqrt":
		return Root, nil
	case "percent", "percentage":
		return Percent, nil
	}
	for _, op := range All() {
		if key == catalog[op].name || key == catalog[op].symbol {
			return op, nil
		}
	}
	return 0, fmt.Errorf("unknown operator %q", s)
}

var exponentGlyphs = map[int]string{
	2: "²",
	3: "³",
	4: "⁴",
	5: "⁵",
	6: "⁶",
}

var rootGlyphs = map[int]string{
	2: "√",
	3: "∛",
	4: "∜",
}

// ExponentGlyph returns the superscript for an exponent, ² when unmapped.
func ExponentGlyph(n int) string {
	if g, ok := exponentGlyphs[n]; ok {
		return g
	}
	return "²"
}

// RootGlyph returns the radical for a root index, √ when unmapped.
func RootGlyph(n int) string {
	if g, ok := rootGlyphs[n]; ok {
		return g
	}
	return "√"
}
