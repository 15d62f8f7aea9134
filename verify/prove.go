package verify

import (
	"errors"

	"github.com/go-air/gini"
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"

	"github.com/pthm-cable/gatelab/gates"
	"github.com/pthm-cable/gatelab/graph"
	"github.com/pthm-cable/gatelab/levels"
	"github.com/pthm-cable/gatelab/topology"
)

var (
	// ErrCyclic is returned by Prove for circuits with feedback loops, which
	// have no combinational meaning.
	ErrCyclic = errors.New("verify: circuit has feedback loops")

	// ErrCounts is returned by Prove when terminal counts do not match the level.
	ErrCounts = errors.New("verify: terminal count mismatch")

	// ErrNoGoal is returned by Prove for levels without a goal function.
	ErrNoGoal = errors.New("verify: level has no goal")
)

// Proof is the outcome of a SAT equivalence check.
type Proof struct {
	Equivalent     bool
	Counterexample []bool // Input vector on which circuit and goal differ
}

// Prove checks, symbolically, whether the combinational function of an
// acyclic circuit equals the level's goal on every input vector.
//
// The circuit and the goal's minterm expansion are built as one and-inverter
// graph; a miter (the disjunction of per-output xors) is handed to the SAT
// solver. An unsatisfiable miter proves equivalence; a model is a
// counterexample. The result describes the circuit's fully settled function,
// independent of any settle bound.
func Prove(g *graph.Graph, level *levels.Level) (Proof, error) {
	if !level.Playable() {
		return Proof{}, ErrNoGoal
	}

	inputs := g.Inputs()
	outputs := g.Outputs()
	if len(inputs) != level.InputCount || len(outputs) != level.OutputCount {
		return Proof{}, ErrCounts
	}

	rep := topology.Analyze(g)
	if !rep.Acyclic {
		return Proof{}, ErrCyclic
	}

	c := logic.NewC()
	lits := make(map[graph.Handle]z.Lit, g.Len())

	ins := make([]z.Lit, len(inputs))
	for i, h := range inputs {
		ins[i] = c.Lit()
		lits[h] = ins[i]
	}

	for _, h := range rep.Order {
		kind, _ := g.Kind(h)
		if kind == gates.Input {
			continue
		}
		a := sourceLit(c, g, lits, h, 0)
		b := sourceLit(c, g, lits, h, 1)
		lits[h] = gateLit(c, kind, a, b)
	}

	// Goal as a sum of minterms per output
	n := level.InputCount
	terms := make([][]z.Lit, level.OutputCount)
	for k := 0; k < levels.Space(n); k++ {
		vec := levels.Vector(k, n)
		want := level.Expected(vec)

		minterm := make([]z.Lit, n)
		for i, on := range vec {
			minterm[i] = ins[i]
			if !on {
				minterm[i] = ins[i].Not()
			}
		}
		m := c.Ands(minterm...)
		for j := range terms {
			if j < len(want) && want[j] {
				terms[j] = append(terms[j], m)
			}
		}
	}

	diffs := make([]z.Lit, len(outputs))
	for j, h := range outputs {
		diffs[j] = c.Xor(lits[h], c.Ors(terms[j]...))
	}
	miter := c.Ors(diffs...)

	// Structural hashing may already decide the miter
	switch miter {
	case c.F:
		return Proof{Equivalent: true}, nil
	case c.T:
		return Proof{Counterexample: make([]bool, n)}, nil
	}

	s := gini.New()
	s.Add(c.T)
	s.Add(0)
	// Every input gets a variable, even outside the miter's cone
	for _, m := range ins {
		s.Add(m)
		s.Add(m.Not())
		s.Add(0)
	}
	c.ToCnfFrom(s, miter)
	s.Assume(miter)

	if s.Solve() != 1 {
		return Proof{Equivalent: true}, nil
	}

	cex := make([]bool, n)
	for i, m := range ins {
		cex[i] = s.Value(m)
	}
	return Proof{Counterexample: cex}, nil
}

func sourceLit(c *logic.C, g *graph.Graph, lits map[graph.Handle]z.Lit, h graph.Handle, port int) z.Lit {
	src, ok := g.Source(h, port)
	if !ok {
		return c.F
	}
	return lits[src]
}

// gateLit mirrors gates.Eval over literals.
func gateLit(c *logic.C, k gates.Kind, a, b z.Lit) z.Lit {
	switch k {
	case gates.Output:
		return a
	case gates.And:
		return c.And(a, b)
	case gates.Or:
		return c.Or(a, b)
	case gates.Not:
		return a.Not()
	case gates.Nand:
		return c.And(a, b).Not()
	case gates.Nor:
		return c.Or(a, b).Not()
	case gates.Xor:
		return c.Xor(a, b)
	case gates.Xnor:
		return c.Xor(a, b).Not()
	}
	return c.F
}
