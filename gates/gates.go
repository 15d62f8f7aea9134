// Package gates defines the closed catalog of logic gate kinds and their evaluation rules.
package gates

// Kind identifies a gate's logic operation.
type Kind uint8

const (
	Input  Kind = iota // Driven externally, never computed
	Output             // Mirrors its single source
	And
	Or
	Not
	Nand
	Nor
	Xor
	Xnor

	numKinds
)

// MaxArity is the largest number of input ports any kind declares.
const MaxArity = 2

// All lists every kind in catalog order.
var All = []Kind{Input, Output, And, Or, Not, Nand, Nor, Xor, Xnor}

// Logic lists the kinds a player can place, in spawn-button order.
var Logic = []Kind{And, Or, Not, Nand, Nor, Xor, Xnor}

var names = [numKinds]string{
	Input:  "Input",
	Output: "Output",
	And:    "And",
	Or:     "Or",
	Not:    "Not",
	Nand:   "Nand",
	Nor:    "Nor",
	Xor:    "Xor",
	Xnor:   "Xnor",
}

// String returns the kind's canonical name, as written to save files.
func (k Kind) String() string {
	if k >= numKinds {
		return "Unknown"
	}
	return names[k]
}

// Valid reports whether k is one of the catalog kinds.
func (k Kind) Valid() bool {
	return k < numKinds
}

// Arity returns the number of input ports a node of kind k carries.
func (k Kind) Arity() int {
	switch k {
	case Input:
		return 0
	case Output, Not:
		return 1
	case And, Or, Nand, Nor, Xor, Xnor:
		return 2
	}
	return 0
}

// IsTerminal reports whether k is an Input or Output node.
// Terminal nodes are generated from the level, not placed by the player.
func (k Kind) IsTerminal() bool {
	return k == Input || k == Output
}

// Eval computes the output of a gate of kind k from its input values.
// Missing inputs read as false, so callers may pass a short slice for
// unconnected ports. Input nodes are never computed and always yield false.
func Eval(k Kind, in []bool) bool {
	a := at(in, 0)
	b := at(in, 1)

	switch k {
	case Output:
		return a
	case And:
		return a && b
	case Or:
		return a || b
	case Not:
		return !a
	case Nand:
		return !(a && b)
	case Nor:
		return !(a || b)
	case Xor:
		return a != b
	case Xnor:
		return a == b
	}
	return false
}

func at(in []bool, i int) bool {
	if i < len(in) {
		return in[i]
	}
	return false
}
