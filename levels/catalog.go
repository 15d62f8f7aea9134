package levels

import (
	"slices"

	"github.com/pthm-cable/gatelab/gates"
)

// Allowed sets. Each call returns a fresh slice so no two levels share one.

func basic() []gates.Kind {
	return []gates.Kind{gates.And, gates.Or, gates.Not}
}

func extended() []gates.Kind {
	return append(basic(), gates.Nand, gates.Nor)
}

func withXor() []gates.Kind {
	return append(extended(), gates.Xor)
}

func full() []gates.Kind {
	return append(withXor(), gates.Xnor)
}

func one(b bool) []bool { return []bool{b} }

func allOn(in []bool) bool {
	for _, v := range in {
		if !v {
			return false
		}
	}
	return true
}

func anyOn(in []bool) bool {
	for _, v := range in {
		if v {
			return true
		}
	}
	return false
}

func bit(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Goal functions, one per level.

func goalAnd(in []bool) []bool  { return one(allOn(in)) }
func goalOr(in []bool) []bool   { return one(anyOn(in)) }
func goalNot(in []bool) []bool  { return one(!in[0]) }
func goalNand(in []bool) []bool { return one(!allOn(in)) }
func goalNor(in []bool) []bool  { return one(!anyOn(in)) }
func goalXor(in []bool) []bool  { return one(in[0] != in[1]) }
func goalXnor(in []bool) []bool { return one(in[0] == in[1]) }

func goalHalfAdder(in []bool) []bool {
	a, b := in[0], in[1]
	return []bool{a != b, a && b}
}

func goalFullAdder(in []bool) []bool {
	a, b, cin := in[0], in[1], in[2]
	sum := (a != b) != cin
	cout := (a && b) || (cin && (a != b))
	return []bool{sum, cout}
}

// Inputs A0, A1, B0, B1; outputs S0, S1, Cout.
func goalTwoBitAdder(in []bool) []bool {
	a := bit(in[0]) + 2*bit(in[1])
	b := bit(in[2]) + 2*bit(in[3])
	total := a + b
	return []bool{total&1 != 0, total&2 != 0, total&4 != 0}
}

// Inputs A, B, Select.
func goalMux(in []bool) []bool {
	a, b, sel := in[0], in[1], in[2]
	if sel {
		return one(b)
	}
	return one(a)
}

var catalog = []*Level{
	// Axioms
	{
		ID: 1, Title: "The Conjunction",
		Description: "Goal: Activate output only when BOTH inputs are ON.",
		Hint:        "Node: AND",
		Allowed:     []gates.Kind{gates.And},
		Goal:        goalAnd, InputCount: 2, OutputCount: 1,
	},
	{
		ID: 2, Title: "The Disjunction",
		Description: "Goal: Activate output if AT LEAST ONE input is ON.",
		Hint:        "Node: OR",
		Allowed:     []gates.Kind{gates.Or},
		Goal:        goalOr, InputCount: 2, OutputCount: 1,
	},
	{
		ID: 3, Title: "The Inverter",
		Description: "Goal: Output ON when input is OFF.",
		Hint:        "Node: NOT",
		Allowed:     []gates.Kind{gates.Not},
		Goal:        goalNot, InputCount: 1, OutputCount: 1,
	},

	// Negated gates
	{
		ID: 4, Title: "The NAND Gate",
		Description: "Goal: Output OFF only when both inputs are ON.",
		Hint:        "Logic: NOT( A AND B )",
		Allowed:     basic(),
		Goal:        goalNand, InputCount: 2, OutputCount: 1,
	},
	{
		ID: 5, Title: "The NOR Gate",
		Description: "Goal: Output ON only when both inputs are OFF.",
		Hint:        "Logic: NOT( A OR B )",
		Allowed:     basic(),
		Goal:        goalNor, InputCount: 2, OutputCount: 1,
	},

	// Exclusive gates
	{
		ID: 6, Title: "The XOR Gate",
		Description: "Goal: Output ON if inputs are different.\nInventory: Basic + NAND/NOR",
		Hint:        "Logic: (A OR B) AND (A NAND B)",
		Allowed:     extended(),
		Goal:        goalXor, InputCount: 2, OutputCount: 1,
	},
	{
		ID: 7, Title: "The XNOR Gate",
		Description: "Goal: Output ON if inputs are identical.",
		Hint:        "Logic: NOT( XOR(A, B) )",
		Allowed:     withXor(),
		Goal:        goalXnor, InputCount: 2, OutputCount: 1,
	},

	// Arithmetic
	{
		ID: 8, Title: "The Half Adder",
		Description:  "Goal: Add two 1-bit numbers (A, B).\nOutputs: Sum, Carry.",
		Hint:         "Sum: A XOR B\nCarry: A AND B",
		Allowed:      full(),
		Goal:         goalHalfAdder, InputCount: 2, OutputCount: 2,
		OutputLabels: []string{"Sum", "Carry"},
	},
	{
		ID: 9, Title: "The Full Adder",
		Description:  "Goal: Add three 1-bit numbers (A, B, Cin).\nOutputs: Sum, Cout.",
		Hint:         "Sum: A XOR B XOR Cin\nCout: (A AND B) OR (Cin AND (A XOR B))",
		Allowed:      full(),
		Goal:         goalFullAdder, InputCount: 3, OutputCount: 2,
		OutputLabels: []string{"Sum", "Cout"},
	},
	{
		ID: 10, Title: "2-Bit Ripple Carry Adder",
		Description:  "Goal: Add two 2-bit numbers.\nInputs: A0, A1, B0, B1.\nOutputs: S0, S1, Cout.",
		Hint:         "Bit 0: Half Adder(A0, B0)\nBit 1: Full Adder(A1, B1, CarryFrom0)",
		Allowed:      full(),
		Goal:         goalTwoBitAdder, InputCount: 4, OutputCount: 3,
		OutputLabels: []string{"S0", "S1", "Cout"},
	},

	// Deconstruction
	{
		ID: 11, Title: "The Universal Spark",
		Description: "Goal: Build a NOT gate using ONLY NAND.",
		Hint:        "Logic: NAND(A, A)",
		Allowed:     []gates.Kind{gates.Nand},
		Goal:        goalNot, InputCount: 1, OutputCount: 1,
	},
	{
		ID: 12, Title: "Reconstructing AND",
		Description: "Goal: Build an AND gate using NAND and NOT.",
		Hint:        "Logic: NOT( NAND(A, B) )",
		Allowed:     []gates.Kind{gates.Nand, gates.Not},
		Goal:        goalAnd, InputCount: 2, OutputCount: 1,
	},
	{
		ID: 13, Title: "Reconstructing OR",
		Description: "Goal: Build an OR gate using NAND and NOT.",
		Hint:        "Logic: NAND( NOT(A), NOT(B) )",
		Allowed:     []gates.Kind{gates.Nand, gates.Not},
		Goal:        goalOr, InputCount: 2, OutputCount: 1,
	},

	// Architecture
	{
		ID: 14, Title: "The Multiplexer",
		Description: "Goal: Build a switch.\nInputs: A, B, Select.\nIf Select=0, Out=A. If Select=1, Out=B.",
		Hint:        "Logic: (A AND NOT Sel) OR (B AND Sel)",
		Allowed:     full(),
		Goal:        goalMux, InputCount: 3, OutputCount: 1,
	},
}

// Playground is the free sandbox: every kind allowed, no goal, no terminals.
var Playground = &Level{
	ID:          0,
	Title:       "Playground",
	Description: "Free sandbox mode.\nNo goals, just logic.",
	Allowed:     slices.Clone(gates.All),
}

// All returns the campaign levels in play order.
func All() []*Level {
	return catalog
}

// Count returns the number of campaign levels.
func Count() int {
	return len(catalog)
}

// At returns the campaign level at index idx.
func At(idx int) (*Level, bool) {
	if idx < 0 || idx >= len(catalog) {
		return nil, false
	}
	return catalog[idx], true
}

// ByID returns the level with the given ID, including the playground.
func ByID(id int) (*Level, bool) {
	if id == Playground.ID {
		return Playground, true
	}
	for _, l := range catalog {
		if l.ID == id {
			return l, true
		}
	}
	return nil, false
}
