package topology

import (
	"testing"

	"github.com/pthm-cable/gatelab/components"
	"github.com/pthm-cable/gatelab/gates"
	"github.com/pthm-cable/gatelab/graph"
)

func at(x, y int) components.Position {
	return components.Position{X: x, Y: y}
}

func TestAnalyze_AcyclicChain(t *testing.T) {
	g := graph.New()
	in := g.AddNode(gates.Input, at(0, 0))
	n1 := g.AddNode(gates.Not, at(100, 0))
	n2 := g.AddNode(gates.Not, at(200, 0))
	out := g.AddNode(gates.Output, at(300, 0))
	g.Connect(in, n1, 0)
	g.Connect(n1, n2, 0)
	g.Connect(n2, out, 0)

	rep := Analyze(g)
	if !rep.Acyclic {
		t.Fatal("chain should be acyclic")
	}
	if rep.Depth != 3 {
		t.Errorf("Depth = %d, want 3", rep.Depth)
	}
	if rep.PassesNeeded() != 3 {
		t.Errorf("PassesNeeded = %d, want 3", rep.PassesNeeded())
	}
	if len(rep.Dangling) != 0 {
		t.Errorf("found %d dangling ports, want 0", len(rep.Dangling))
	}

	pos := make(map[graph.Handle]int, len(rep.Order))
	for i, h := range rep.Order {
		pos[h] = i
	}
	if !(pos[in] < pos[n1] && pos[n1] < pos[n2] && pos[n2] < pos[out]) {
		t.Error("Order should list sources before consumers")
	}
}

func TestAnalyze_UnconnectedGateDepth(t *testing.T) {
	g := graph.New()
	g.AddNode(gates.Input, at(0, 0))
	and := g.AddNode(gates.And, at(100, 0))

	rep := Analyze(g)
	if rep.Depth != 1 {
		t.Errorf("Depth = %d, want 1 for a lone gate", rep.Depth)
	}
	if len(rep.Dangling) != 2 {
		t.Fatalf("found %d dangling ports, want 2", len(rep.Dangling))
	}
	if rep.Dangling[0] != (PortRef{Node: and, Port: 0}) {
		t.Error("dangling ports should be listed by node then port")
	}
}

func TestAnalyze_Cycle(t *testing.T) {
	g := graph.New()
	a := g.AddNode(gates.Nor, at(0, 0))
	b := g.AddNode(gates.Nor, at(0, 100))
	g.Connect(a, b, 0)
	g.Connect(b, a, 0)

	rep := Analyze(g)
	if rep.Acyclic {
		t.Fatal("cross-coupled gates should be cyclic")
	}
	if len(rep.Cycles) != 1 || len(rep.Cycles[0]) != 2 {
		t.Errorf("Cycles = %v, want one group of two", rep.Cycles)
	}
	if rep.Order != nil || rep.PassesNeeded() != -1 {
		t.Error("cyclic circuits have no order or pass bound")
	}
}

func TestAnalyze_SelfLoop(t *testing.T) {
	g := graph.New()
	and := g.AddNode(gates.And, at(0, 0))
	g.Connect(and, and, 0)
	g.Connect(and, and, 1)

	rep := Analyze(g)
	if rep.Acyclic {
		t.Fatal("self-fed gate should be cyclic")
	}
	if len(rep.SelfLoops) != 1 || rep.SelfLoops[0] != and {
		t.Errorf("SelfLoops = %v, want [and]", rep.SelfLoops)
	}
	if len(rep.Cycles) != 0 {
		t.Error("self loops are reported separately from cycles")
	}
}

func TestAnalyze_Empty(t *testing.T) {
	rep := Analyze(graph.New())
	if !rep.Acyclic || rep.Depth != 0 {
		t.Errorf("empty graph = %+v, want acyclic depth 0", rep)
	}
}
