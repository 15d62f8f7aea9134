package save

import (
	"slices"
	"testing"

	"github.com/pthm-cable/gatelab/components"
	"github.com/pthm-cable/gatelab/config"
	"github.com/pthm-cable/gatelab/gates"
	"github.com/pthm-cable/gatelab/graph"
	"github.com/pthm-cable/gatelab/levels"
	"github.com/pthm-cable/gatelab/systems"
)

func layout() config.LayoutConfig {
	return config.Default().Layout
}

func mustLevel(t *testing.T, id int) *levels.Level {
	t.Helper()
	l, ok := levels.ByID(id)
	if !ok {
		t.Fatalf("no level %d", id)
	}
	return l
}

// fullAdder builds a full adder on a fresh level 9 board.
func fullAdder(l *levels.Level) *graph.Graph {
	g := graph.New()
	Terminals(g, l, layout())
	in := g.Inputs()
	out := g.Outputs()

	add := func(k gates.Kind, x, y int, srcs ...graph.Handle) graph.Handle {
		h := g.AddNode(k, components.Position{X: x, Y: y})
		for i, s := range srcs {
			g.Connect(s, h, i)
		}
		return h
	}

	x1 := add(gates.Xor, 450, 200, in[0], in[1])
	sum := add(gates.Xor, 650, 250, x1, in[2])
	a1 := add(gates.And, 450, 400, in[0], in[1])
	a2 := add(gates.And, 650, 450, x1, in[2])
	cout := add(gates.Or, 800, 450, a1, a2)
	g.Connect(sum, out[0], 0)
	g.Connect(cout, out[1], 0)
	return g
}

// truthTable settles g for every input vector and collects the outputs.
func truthTable(g *graph.Graph) [][]bool {
	e := systems.NewEvaluator(g.World(), true)
	in := g.Inputs()
	out := g.Outputs()

	var table [][]bool
	for k := 0; k < levels.Space(len(in)); k++ {
		vec := levels.Vector(k, len(in))
		for i, h := range in {
			g.SetInputValue(h, vec[i])
		}
		e.Settle(systems.DefaultPasses)
		table = append(table, g.Values(out))
	}
	return table
}

// ---------- Terminals ----------

func TestTerminals_Layout(t *testing.T) {
	l := mustLevel(t, 8)
	g := graph.New()
	Terminals(g, l, layout())

	in := g.Inputs()
	out := g.Outputs()
	if len(in) != 2 || len(out) != 2 {
		t.Fatalf("got %d inputs %d outputs, want 2 and 2", len(in), len(out))
	}
	if g.Position(in[1]) != (components.Position{X: 250, Y: 350}) {
		t.Errorf("second input at %+v, want 250,350", g.Position(in[1]))
	}
	if g.Position(out[0]) != (components.Position{X: 1000, Y: 300}) {
		t.Errorf("first output at %+v, want 1000,300", g.Position(out[0]))
	}
	if g.Label(in[0]) != "In A" || g.Label(out[1]) != "Carry" {
		t.Errorf("labels = %q, %q; want In A, Carry", g.Label(in[0]), g.Label(out[1]))
	}
}

// ---------- Serialize / Deserialize ----------

func TestSerialize_Indices(t *testing.T) {
	l := mustLevel(t, 3)
	g := graph.New()
	Terminals(g, l, layout())
	not := g.AddNode(gates.Not, components.Position{X: 500, Y: 500})
	g.Connect(g.Inputs()[0], not, 0)
	g.Connect(not, g.Outputs()[0], 0)

	sol := Serialize(g)
	if len(sol.UserNodes) != 1 || sol.UserNodes[0] != (NodeDesc{Type: "Not", X: 500, Y: 500}) {
		t.Errorf("UserNodes = %+v", sol.UserNodes)
	}

	// Canonical order: input 0, output 1, NOT 2
	want := []Connection{
		{FromIdx: 2, ToIdx: 1, PortIdx: 0},
		{FromIdx: 0, ToIdx: 2, PortIdx: 0},
	}
	if !slices.Equal(sol.Connections, want) {
		t.Errorf("Connections = %+v, want %+v", sol.Connections, want)
	}
}

func TestRoundTrip_BehaviourPreserved(t *testing.T) {
	l := mustLevel(t, 9)
	orig := fullAdder(l)

	sol := Serialize(orig)
	restored := Deserialize(sol, l, layout())

	if restored.Len() != orig.Len() {
		t.Errorf("restored %d nodes, want %d", restored.Len(), orig.Len())
	}

	a, b := truthTable(orig), truthTable(restored)
	for k := range a {
		if !slices.Equal(a[k], b[k]) {
			t.Errorf("vector %d: original %v, restored %v", k, a[k], b[k])
		}
	}

	again := Serialize(restored)
	if !slices.Equal(again.UserNodes, sol.UserNodes) || !slices.Equal(again.Connections, sol.Connections) {
		t.Error("re-serializing a restored solution should be stable")
	}
}

func TestDeserialize_SkipsBadEntries(t *testing.T) {
	l := mustLevel(t, 1)
	sol := Solution{
		UserNodes: []NodeDesc{
			{Type: "AndNode", X: 500, Y: 300},
			{Type: "Teleporter", X: 0, Y: 0},
		},
		Connections: []Connection{
			{FromIdx: 0, ToIdx: 3, PortIdx: 0},  // In A -> AND.0
			{FromIdx: 1, ToIdx: 3, PortIdx: 1},  // In B -> AND.1
			{FromIdx: 3, ToIdx: 2, PortIdx: 0},  // AND -> LED
			{FromIdx: 1, ToIdx: 3, PortIdx: 0},  // occupied
			{FromIdx: 0, ToIdx: 99, PortIdx: 0}, // out of range
			{FromIdx: -1, ToIdx: 3, PortIdx: 0}, // out of range
			{FromIdx: 0, ToIdx: 3, PortIdx: 7},  // bad port
		},
	}

	g := Deserialize(sol, l, layout())
	if g.Len() != 4 {
		t.Fatalf("Len() = %d, want 4 (unknown type skipped)", g.Len())
	}

	and := g.UserNodes()[0]
	if k, _ := g.Kind(and); k != gates.And {
		t.Fatalf("user node kind = %s, want And", k)
	}
	if src, _ := g.Source(and, 0); src != g.Inputs()[0] {
		t.Error("occupied-port connection should not replace the first source")
	}
	if src, ok := g.Source(g.Outputs()[0], 0); !ok || src != and {
		t.Error("AND should feed the LED")
	}
}

func TestDeserialize_TerminalDescriptorIndexedInFileOrder(t *testing.T) {
	l := mustLevel(t, 1)
	// Indices: In A 0, In B 1, LED 2, then the loaded Input 3 and AND 4
	sol := Solution{
		UserNodes: []NodeDesc{
			{Type: "InputNode", X: 0, Y: 0},
			{Type: "And", X: 500, Y: 500},
		},
		Connections: []Connection{
			{FromIdx: 0, ToIdx: 4, PortIdx: 0},
			{FromIdx: 1, ToIdx: 4, PortIdx: 1},
			{FromIdx: 4, ToIdx: 2, PortIdx: 0},
		},
	}

	g := Deserialize(sol, l, layout())
	if g.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", g.Len())
	}

	users := g.UserNodes()
	if len(users) != 1 {
		t.Fatalf("got %d non-terminal nodes, want 1", len(users))
	}
	and := users[0]

	for port, want := range []components.Position{{X: 250, Y: 200}, {X: 250, Y: 350}} {
		src, ok := g.Source(and, port)
		if !ok {
			t.Fatalf("AND port %d is empty", port)
		}
		if k, _ := g.Kind(src); k != gates.Input || g.Position(src) != want {
			t.Errorf("AND port %d fed by %s at %+v, want level input at %+v", port, k, g.Position(src), want)
		}
	}

	led := g.Outputs()[0]
	if src, ok := g.Source(led, 0); !ok || src != and {
		t.Error("LED should be fed by AND")
	}
}

func TestDeserialize_EmptySolution(t *testing.T) {
	l := mustLevel(t, 10)
	g := Deserialize(Solution{}, l, layout())
	if len(g.Inputs()) != 4 || len(g.Outputs()) != 3 || len(g.UserNodes()) != 0 {
		t.Error("empty solution should yield only the level terminals")
	}
}
