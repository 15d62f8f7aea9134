// Package systems advances circuit state by repeated whole-graph passes.
package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/gatelab/components"
	"github.com/pthm-cable/gatelab/gates"
)

// DefaultPasses is the settling bound used when none is configured.
// It lets a value cross a chain of that many gates and lets one-step
// feedback loops reach a fixed point.
const DefaultPasses = 50

// SettleResult reports how a settle request ended.
type SettleResult struct {
	Passes int  // Passes actually run
	Stable bool // Last pass changed nothing
}

// pending is a value computed during a pass, committed after it.
type pending struct {
	entity ecs.Entity
	value  bool
}

// Evaluator recomputes gate outputs.
type Evaluator struct {
	filter  ecs.Filter2[components.Gate, components.Ports]
	gateMap *ecs.Map1[components.Gate]

	earlyExit bool

	scratch []pending
	inputs  [gates.MaxArity]bool
}

// NewEvaluator creates an evaluator over the nodes of w.
// With earlyExit set, Settle stops at the first pass that changes nothing;
// the resulting values are identical to running the full bound.
func NewEvaluator(w *ecs.World, earlyExit bool) *Evaluator {
	return &Evaluator{
		filter:    *ecs.NewFilter2[components.Gate, components.Ports](w),
		gateMap:   ecs.NewMap1[components.Gate](w),
		earlyExit: earlyExit,
	}
}

// Pass recomputes every non-Input node once from the values committed before
// the pass began, then commits all new values together.
// Returns the number of nodes whose value changed.
func (e *Evaluator) Pass() int {
	e.scratch = e.scratch[:0]

	query := e.filter.Query()
	for query.Next() {
		gate, ports := query.Get()
		if gate.Kind == gates.Input {
			continue
		}

		n := int(ports.Count)
		for i := 0; i < n; i++ {
			src := ports.Sources[i]
			e.inputs[i] = !src.IsZero() && e.gateMap.Get(src).Value
		}

		next := gates.Eval(gate.Kind, e.inputs[:n])
		if next != gate.Value {
			e.scratch = append(e.scratch, pending{entity: query.Entity(), value: next})
		}
	}

	for _, p := range e.scratch {
		e.gateMap.Get(p.entity).Value = p.value
	}
	return len(e.scratch)
}

// Settle runs up to passes passes.
// A circuit that has not reached a fixed point keeps the values of the last
// pass; Stable reports which case occurred.
func (e *Evaluator) Settle(passes int) SettleResult {
	var res SettleResult
	for res.Passes < passes {
		changed := e.Pass()
		res.Passes++
		res.Stable = changed == 0
		if res.Stable && e.earlyExit {
			break
		}
	}
	return res
}
