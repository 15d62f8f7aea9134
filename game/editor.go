package game

import (
	"log/slog"

	"github.com/pthm-cable/gatelab/components"
	"github.com/pthm-cable/gatelab/gates"
	"github.com/pthm-cable/gatelab/graph"
)

// Spawn places a new gate of kind k at the spawn point.
// Returns false when the current level does not allow k.
func (g *Game) Spawn(k gates.Kind) (graph.Handle, bool) {
	level := g.Level()
	if level == nil || !level.Allows(k) {
		slog.Debug("spawn rejected", "kind", k.String())
		return graph.Handle{}, false
	}

	pos := components.Position{X: g.cfg.Layout.SpawnX, Y: g.cfg.Layout.SpawnY}
	h := g.graph.AddNode(k, pos)
	if info, ok := g.registry.Info(k); ok {
		g.graph.SetLabel(h, info.Title)
	}
	return h, true
}

// SpawnNamed places a gate by registry name, canonical or legacy.
func (g *Game) SpawnNamed(name string) (graph.Handle, bool) {
	info, ok := g.registry.Lookup(name)
	if !ok {
		return graph.Handle{}, false
	}
	return g.Spawn(info.Kind)
}

// Palette lists the gate kinds the current level allows, in catalog order.
func (g *Game) Palette() []gates.Kind {
	level := g.Level()
	if level == nil {
		return nil
	}
	var out []gates.Kind
	for _, k := range gates.All {
		if level.Allows(k) {
			out = append(out, k)
		}
	}
	return out
}

// DeleteSelected removes every selected node except level terminals.
// Returns the number of nodes removed.
func (g *Game) DeleteSelected() int {
	removed := 0
	for _, h := range g.graph.Selected() {
		k, _ := g.graph.Kind(h)
		if k.IsTerminal() {
			continue
		}
		if h == g.wireSource {
			g.wireSource = graph.Handle{}
		}
		if g.graph.RemoveNode(h) {
			removed++
		}
	}
	return removed
}

// ToggleInput flips an Input node. Other kinds are ignored.
func (g *Game) ToggleInput(h graph.Handle) bool {
	return g.graph.ToggleInput(h)
}

// SelectNode selects h. Unless additive is set, other nodes are deselected.
func (g *Game) SelectNode(h graph.Handle, additive bool) {
	if !additive {
		g.graph.ClearSelection()
	}
	g.graph.Select(h, true)
}

// ClearSelection deselects every node.
func (g *Game) ClearSelection() {
	g.graph.ClearSelection()
}

// DragTo moves h to pos. If h is selected, the rest of the selection moves by
// the same offset.
func (g *Game) DragTo(h graph.Handle, pos components.Position) {
	if !g.graph.Alive(h) {
		return
	}
	if !g.graph.UIState(h).Selected {
		g.graph.Move(h, pos)
		g.graph.SetDragging(h, true)
		return
	}

	from := g.graph.Position(h)
	dx, dy := pos.X-from.X, pos.Y-from.Y
	for _, s := range g.graph.Selected() {
		p := g.graph.Position(s)
		g.graph.Move(s, components.Position{X: p.X + dx, Y: p.Y + dy})
		g.graph.SetDragging(s, true)
	}
}

// EndDrag clears the dragging flag on every node.
func (g *Game) EndDrag() {
	for _, h := range g.graph.Nodes() {
		g.graph.SetDragging(h, false)
	}
}

// BeginWire starts dragging a wire from the output of src.
func (g *Game) BeginWire(src graph.Handle) bool {
	if !g.graph.Alive(src) {
		return false
	}
	g.wireSource = src
	return true
}

// GrabPort handles a press on an input port. An occupied port is detached
// and the wire continues dragging from its former source. Returns false if
// the port was empty.
func (g *Game) GrabPort(dst graph.Handle, port int) bool {
	src, ok := g.graph.Disconnect(dst, port)
	if !ok {
		return false
	}
	g.wireSource = src
	return true
}

// DropWire completes the dragged wire on port of dst. The wire is discarded
// when the port is occupied or invalid. Returns whether a connection was
// made.
func (g *Game) DropWire(dst graph.Handle, port int) bool {
	src := g.wireSource
	g.wireSource = graph.Handle{}
	if src.IsZero() {
		return false
	}
	return g.graph.Connect(src, dst, port)
}

// CancelWire discards the dragged wire.
func (g *Game) CancelWire() {
	g.wireSource = graph.Handle{}
}

// WireSource returns the node the dragged wire starts from.
func (g *Game) WireSource() (graph.Handle, bool) {
	return g.wireSource, !g.wireSource.IsZero()
}
