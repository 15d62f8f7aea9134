// Package graph holds the circuit: an arena of gate nodes and their port
// connections, stored as entities in an ECS world.
//
// Nodes are addressed by generation-checked entity handles. The graph is the
// only owner of nodes; ports store non-owning handles, and RemoveNode is the
// single place where references to a removed node are cleared.
package graph

import (
	"log/slog"
	"sort"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/gatelab/components"
	"github.com/pthm-cable/gatelab/gates"
)

// Handle identifies a node. The zero handle never refers to a live node.
type Handle = ecs.Entity

// Graph owns all circuit nodes.
type Graph struct {
	world *ecs.World

	nodeMapper *ecs.Map6[
		components.Gate,
		components.Ports,
		components.Position,
		components.UIState,
		components.Placement,
		components.Label,
	]

	gateMap  *ecs.Map1[components.Gate]
	portMap  *ecs.Map1[components.Ports]
	posMap   *ecs.Map1[components.Position]
	uiMap    *ecs.Map1[components.UIState]
	labelMap *ecs.Map1[components.Label]

	placeFilter *ecs.Filter1[components.Placement]
	portFilter  *ecs.Filter1[components.Ports]

	nextSeq uint64
	count   int
}

// New creates an empty graph.
func New() *Graph {
	world := ecs.NewWorld()

	return &Graph{
		world: world,
		nodeMapper: ecs.NewMap6[
			components.Gate,
			components.Ports,
			components.Position,
			components.UIState,
			components.Placement,
			components.Label,
		](world),
		gateMap:     ecs.NewMap1[components.Gate](world),
		portMap:     ecs.NewMap1[components.Ports](world),
		posMap:      ecs.NewMap1[components.Position](world),
		uiMap:       ecs.NewMap1[components.UIState](world),
		labelMap:    ecs.NewMap1[components.Label](world),
		placeFilter: ecs.NewFilter1[components.Placement](world),
		portFilter:  ecs.NewFilter1[components.Ports](world),
	}
}

// World exposes the underlying ECS world to systems that iterate nodes.
func (g *Graph) World() *ecs.World {
	return g.world
}

// Len returns the number of live nodes.
func (g *Graph) Len() int {
	return g.count
}

// Alive reports whether h refers to a node currently owned by the graph.
func (g *Graph) Alive(h Handle) bool {
	return !h.IsZero() && g.world.Alive(h)
}

// AddNode creates a node of the given kind with empty ports sized to its arity.
func (g *Graph) AddNode(kind gates.Kind, pos components.Position) Handle {
	g.nextSeq++

	gate := components.Gate{Kind: kind}
	ports := components.NewPorts(kind)
	ui := components.UIState{}
	place := components.Placement{Seq: g.nextSeq}
	label := components.Label{}

	h := g.nodeMapper.NewEntity(&gate, &ports, &pos, &ui, &place, &label)
	g.count++
	return h
}

// RemoveNode deletes a node and clears every port that referenced it.
// Returns false if h was not a live node.
func (g *Graph) RemoveNode(h Handle) bool {
	if !g.Alive(h) {
		return false
	}

	cleared := 0
	query := g.portFilter.Query()
	for query.Next() {
		ports := query.Get()
		for i := 0; i < int(ports.Count); i++ {
			if ports.Sources[i] == h {
				ports.Sources[i] = ecs.Entity{}
				cleared++
			}
		}
	}

	g.world.RemoveEntity(h)
	g.count--

	slog.Debug("node removed", "node", h.ID(), "ports_cleared", cleared)
	return true
}

// Connect sets port of dst to be fed by src.
// The connection is rejected, leaving the graph unchanged, when either node is
// not live, the port index is out of range, or the port already has a source.
// A node may feed its own port.
func (g *Graph) Connect(src, dst Handle, port int) bool {
	if !g.Alive(src) || !g.Alive(dst) {
		slog.Debug("connect rejected: stale handle", "src", src.ID(), "dst", dst.ID())
		return false
	}
	ports := g.portMap.Get(dst)
	if port < 0 || port >= int(ports.Count) {
		slog.Debug("connect rejected: port out of range", "dst", dst.ID(), "port", port)
		return false
	}
	if !ports.Sources[port].IsZero() {
		slog.Debug("connect rejected: port occupied", "dst", dst.ID(), "port", port)
		return false
	}
	ports.Sources[port] = src
	return true
}

// Disconnect clears port of dst and returns the source it held.
// It is a no-op returning false when the port is empty or invalid.
func (g *Graph) Disconnect(dst Handle, port int) (Handle, bool) {
	if !g.Alive(dst) {
		return Handle{}, false
	}
	ports := g.portMap.Get(dst)
	if !ports.Occupied(port) {
		return Handle{}, false
	}
	prev := ports.Sources[port]
	ports.Sources[port] = ecs.Entity{}
	return prev, true
}

// Source returns the node feeding port of h.
func (g *Graph) Source(h Handle, port int) (Handle, bool) {
	if !g.Alive(h) {
		return Handle{}, false
	}
	ports := g.portMap.Get(h)
	src := ports.Source(port)
	return src, !src.IsZero()
}

// PortCount returns the number of input ports on h.
func (g *Graph) PortCount(h Handle) int {
	if !g.Alive(h) {
		return 0
	}
	return int(g.portMap.Get(h).Count)
}

// References counts the ports anywhere in the graph that h feeds.
func (g *Graph) References(h Handle) int {
	n := 0
	query := g.portFilter.Query()
	for query.Next() {
		ports := query.Get()
		for i := 0; i < int(ports.Count); i++ {
			if ports.Sources[i] == h {
				n++
			}
		}
	}
	return n
}

// Kind returns the gate kind of h.
func (g *Graph) Kind(h Handle) (gates.Kind, bool) {
	if !g.Alive(h) {
		return 0, false
	}
	return g.gateMap.Get(h).Kind, true
}

// Value returns the current output of h. Stale handles read false.
func (g *Graph) Value(h Handle) bool {
	if !g.Alive(h) {
		return false
	}
	return g.gateMap.Get(h).Value
}

// SetInputValue drives an Input node. Returns false for other kinds.
func (g *Graph) SetInputValue(h Handle, v bool) bool {
	if !g.Alive(h) {
		return false
	}
	gate := g.gateMap.Get(h)
	if gate.Kind != gates.Input {
		return false
	}
	gate.Value = v
	return true
}

// ToggleInput flips an Input node's value.
func (g *Graph) ToggleInput(h Handle) bool {
	return g.SetInputValue(h, !g.Value(h))
}

// Position returns the layout position of h.
func (g *Graph) Position(h Handle) components.Position {
	if !g.Alive(h) {
		return components.Position{}
	}
	return *g.posMap.Get(h)
}

// Move sets the layout position of h.
func (g *Graph) Move(h Handle, pos components.Position) {
	if !g.Alive(h) {
		return
	}
	*g.posMap.Get(h) = pos
}

// Label returns the display title of h.
func (g *Graph) Label(h Handle) string {
	if !g.Alive(h) {
		return ""
	}
	return g.labelMap.Get(h).Title
}

// SetLabel sets the display title of h.
func (g *Graph) SetLabel(h Handle, title string) {
	if !g.Alive(h) {
		return
	}
	g.labelMap.Get(h).Title = title
}

// Select sets the selection flag of h.
func (g *Graph) Select(h Handle, selected bool) {
	if !g.Alive(h) {
		return
	}
	g.uiMap.Get(h).Selected = selected
}

// SetDragging sets the dragging flag of h.
func (g *Graph) SetDragging(h Handle, dragging bool) {
	if !g.Alive(h) {
		return
	}
	g.uiMap.Get(h).Dragging = dragging
}

// UIState returns the editor flags of h.
func (g *Graph) UIState(h Handle) components.UIState {
	if !g.Alive(h) {
		return components.UIState{}
	}
	return *g.uiMap.Get(h)
}

// ClearSelection deselects every node.
func (g *Graph) ClearSelection() {
	for _, h := range g.Nodes() {
		g.uiMap.Get(h).Selected = false
	}
}

// Selected returns the selected nodes in placement order.
func (g *Graph) Selected() []Handle {
	var out []Handle
	for _, h := range g.Nodes() {
		if g.uiMap.Get(h).Selected {
			out = append(out, h)
		}
	}
	return out
}

// Nodes returns all live nodes in placement order.
func (g *Graph) Nodes() []Handle {
	type placed struct {
		h   Handle
		seq uint64
	}
	all := make([]placed, 0, g.count)

	query := g.placeFilter.Query()
	for query.Next() {
		place := query.Get()
		all = append(all, placed{h: query.Entity(), seq: place.Seq})
	}

	sort.Slice(all, func(i, j int) bool { return all[i].seq < all[j].seq })

	out := make([]Handle, len(all))
	for i, p := range all {
		out[i] = p.h
	}
	return out
}

// OfKind returns nodes of kind k, sorted by vertical position.
// Ties keep placement order.
func (g *Graph) OfKind(k gates.Kind) []Handle {
	var out []Handle
	for _, h := range g.Nodes() {
		if g.gateMap.Get(h).Kind == k {
			out = append(out, h)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return g.posMap.Get(out[i]).Y < g.posMap.Get(out[j]).Y
	})
	return out
}

// Inputs returns Input nodes sorted by vertical position.
func (g *Graph) Inputs() []Handle {
	return g.OfKind(gates.Input)
}

// Outputs returns Output nodes sorted by vertical position.
func (g *Graph) Outputs() []Handle {
	return g.OfKind(gates.Output)
}

// UserNodes returns the non-terminal nodes in placement order.
func (g *Graph) UserNodes() []Handle {
	var out []Handle
	for _, h := range g.Nodes() {
		if !g.gateMap.Get(h).Kind.IsTerminal() {
			out = append(out, h)
		}
	}
	return out
}

// Canonical returns the deterministic index ordering used for solution
// files: Inputs by Y, then Outputs by Y, then the remaining nodes in
// placement order.
func (g *Graph) Canonical() []Handle {
	inputs := g.Inputs()
	outputs := g.Outputs()
	users := g.UserNodes()

	out := make([]Handle, 0, len(inputs)+len(outputs)+len(users))
	out = append(out, inputs...)
	out = append(out, outputs...)
	out = append(out, users...)
	return out
}

// Values reads the current value of each handle.
func (g *Graph) Values(hs []Handle) []bool {
	vals := make([]bool, len(hs))
	for i, h := range hs {
		vals[i] = g.Value(h)
	}
	return vals
}
