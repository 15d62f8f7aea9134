package graph

import (
	"testing"

	"github.com/pthm-cable/gatelab/components"
	"github.com/pthm-cable/gatelab/gates"
)

func at(x, y int) components.Position {
	return components.Position{X: x, Y: y}
}

// ---------- AddNode / Connect ----------

func TestAddNode_PortsMatchArity(t *testing.T) {
	g := New()
	for _, k := range gates.All {
		h := g.AddNode(k, at(0, 0))
		if got := g.PortCount(h); got != k.Arity() {
			t.Errorf("%s node has %d ports, want %d", k, got, k.Arity())
		}
		for p := 0; p < g.PortCount(h); p++ {
			if _, ok := g.Source(h, p); ok {
				t.Errorf("new %s node has port %d occupied", k, p)
			}
		}
	}
	if g.Len() != len(gates.All) {
		t.Errorf("Len() = %d, want %d", g.Len(), len(gates.All))
	}
}

func TestConnect_OccupiedPortRejected(t *testing.T) {
	g := New()
	a := g.AddNode(gates.Input, at(0, 0))
	b := g.AddNode(gates.Input, at(0, 100))
	and := g.AddNode(gates.And, at(100, 0))

	if !g.Connect(a, and, 0) {
		t.Fatal("first connect should succeed")
	}
	if g.Connect(b, and, 0) {
		t.Error("connect onto occupied port should be rejected")
	}
	if src, _ := g.Source(and, 0); src != a {
		t.Error("rejected connect must leave the existing source in place")
	}
}

func TestConnect_InvalidPortRejected(t *testing.T) {
	g := New()
	a := g.AddNode(gates.Input, at(0, 0))
	not := g.AddNode(gates.Not, at(100, 0))

	for _, port := range []int{-1, 1, 2} {
		if g.Connect(a, not, port) {
			t.Errorf("connect to port %d of NOT should be rejected", port)
		}
	}
	if g.Connect(not, a, 0) {
		t.Error("Input nodes have no ports to connect to")
	}
}

func TestConnect_SelfFeedAllowed(t *testing.T) {
	g := New()
	not := g.AddNode(gates.Not, at(0, 0))
	if !g.Connect(not, not, 0) {
		t.Fatal("a node may feed its own port")
	}
	if g.References(not) != 1 {
		t.Errorf("References = %d, want 1", g.References(not))
	}
}

func TestConnect_FanOut(t *testing.T) {
	g := New()
	a := g.AddNode(gates.Input, at(0, 0))
	x := g.AddNode(gates.And, at(100, 0))
	y := g.AddNode(gates.Or, at(100, 100))

	g.Connect(a, x, 0)
	g.Connect(a, x, 1)
	g.Connect(a, y, 0)

	if got := g.References(a); got != 3 {
		t.Errorf("References = %d, want 3", got)
	}
}

// ---------- Disconnect ----------

func TestDisconnect_ReturnsPreviousSource(t *testing.T) {
	g := New()
	a := g.AddNode(gates.Input, at(0, 0))
	out := g.AddNode(gates.Output, at(100, 0))
	g.Connect(a, out, 0)

	src, ok := g.Disconnect(out, 0)
	if !ok || src != a {
		t.Fatalf("Disconnect = %v, %v; want source a", src, ok)
	}
	if _, ok := g.Source(out, 0); ok {
		t.Error("port should be empty after disconnect")
	}
	if _, ok := g.Disconnect(out, 0); ok {
		t.Error("disconnecting an empty port should be a no-op")
	}
}

// ---------- RemoveNode ----------

func TestRemoveNode_ClearsReferences(t *testing.T) {
	g := New()
	a := g.AddNode(gates.Input, at(0, 0))
	and := g.AddNode(gates.And, at(100, 0))
	out := g.AddNode(gates.Output, at(200, 0))

	g.Connect(a, and, 0)
	g.Connect(a, and, 1)
	g.Connect(and, out, 0)

	if !g.RemoveNode(and) {
		t.Fatal("RemoveNode should succeed on a live node")
	}
	if g.Alive(and) {
		t.Error("removed node still alive")
	}
	if _, ok := g.Source(out, 0); ok {
		t.Error("port fed by removed node should be cleared")
	}
	if g.Len() != 2 {
		t.Errorf("Len() = %d, want 2", g.Len())
	}
}

func TestRemoveNode_StaleHandle(t *testing.T) {
	g := New()
	old := g.AddNode(gates.And, at(0, 0))
	g.RemoveNode(old)

	// Recycled slot must not revive the old handle
	fresh := g.AddNode(gates.Or, at(0, 0))
	if g.Alive(old) {
		t.Error("stale handle reported alive after slot reuse")
	}
	if !g.Alive(fresh) {
		t.Error("fresh handle should be alive")
	}

	if g.RemoveNode(old) {
		t.Error("removing a stale handle should fail")
	}
	if g.Connect(old, fresh, 0) {
		t.Error("connect from a stale handle should fail")
	}
	if _, ok := g.Kind(old); ok {
		t.Error("Kind of a stale handle should report false")
	}
	if g.Len() != 1 {
		t.Errorf("Len() = %d, want 1", g.Len())
	}
}

func TestRemoveNode_SelfLoop(t *testing.T) {
	g := New()
	not := g.AddNode(gates.Not, at(0, 0))
	g.Connect(not, not, 0)
	if !g.RemoveNode(not) {
		t.Fatal("RemoveNode failed on self-fed node")
	}
	if g.Len() != 0 {
		t.Errorf("Len() = %d, want 0", g.Len())
	}
}

// ---------- Values ----------

func TestSetInputValue_OnlyInputs(t *testing.T) {
	g := New()
	in := g.AddNode(gates.Input, at(0, 0))
	and := g.AddNode(gates.And, at(100, 0))

	if !g.SetInputValue(in, true) || !g.Value(in) {
		t.Error("Input value should be settable")
	}
	if g.SetInputValue(and, true) {
		t.Error("non-Input value must not be settable")
	}
	if !g.ToggleInput(in) || g.Value(in) {
		t.Error("ToggleInput should flip the value")
	}
}

// ---------- Ordering ----------

func TestCanonical_Order(t *testing.T) {
	g := New()
	// Placed out of Y order on purpose
	and := g.AddNode(gates.And, at(500, 0))
	inB := g.AddNode(gates.Input, at(250, 350))
	out := g.AddNode(gates.Output, at(1000, 300))
	inA := g.AddNode(gates.Input, at(250, 200))
	not := g.AddNode(gates.Not, at(500, 100))

	want := []Handle{inA, inB, out, and, not}
	got := g.Canonical()
	if len(got) != len(want) {
		t.Fatalf("Canonical() has %d nodes, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Canonical()[%d] mismatch", i)
		}
	}
}

func TestOfKind_TiesKeepPlacementOrder(t *testing.T) {
	g := New()
	first := g.AddNode(gates.Input, at(0, 100))
	second := g.AddNode(gates.Input, at(50, 100))

	got := g.Inputs()
	if len(got) != 2 || got[0] != first || got[1] != second {
		t.Error("inputs at equal Y should keep placement order")
	}
}

func TestSelection(t *testing.T) {
	g := New()
	a := g.AddNode(gates.And, at(0, 0))
	b := g.AddNode(gates.Or, at(0, 0))

	g.Select(b, true)
	g.Select(a, true)
	sel := g.Selected()
	if len(sel) != 2 || sel[0] != a || sel[1] != b {
		t.Error("Selected() should list nodes in placement order")
	}

	g.ClearSelection()
	if len(g.Selected()) != 0 {
		t.Error("ClearSelection should deselect everything")
	}
}

// ---------- Spawn ----------

func TestSpawn_ByName(t *testing.T) {
	g := New()
	reg := gates.Default()

	h, ok := g.Spawn(reg, "NandNode", at(500, 500))
	if !ok {
		t.Fatal("Spawn by legacy name failed")
	}
	if k, _ := g.Kind(h); k != gates.Nand {
		t.Errorf("spawned kind = %s, want Nand", k)
	}
	if g.Position(h) != at(500, 500) {
		t.Error("spawned node should be at the requested position")
	}

	if _, ok := g.Spawn(reg, "Bogus", at(0, 0)); ok {
		t.Error("Spawn with unknown name should fail")
	}
	if g.Len() != 1 {
		t.Errorf("Len() = %d, want 1", g.Len())
	}
}
