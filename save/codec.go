// Package save persists player solutions and campaign progress.
package save

import (
	"log/slog"

	"github.com/pthm-cable/gatelab/components"
	"github.com/pthm-cable/gatelab/config"
	"github.com/pthm-cable/gatelab/gates"
	"github.com/pthm-cable/gatelab/graph"
	"github.com/pthm-cable/gatelab/levels"
)

// NodeDesc is one player-placed node.
type NodeDesc struct {
	Type string `json:"type"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// Connection wires node FromIdx into port PortIdx of node ToIdx.
// Indices refer to the canonical ordering: Inputs by Y, Outputs by Y, then
// player nodes in placement order.
type Connection struct {
	FromIdx int `json:"from_idx"`
	ToIdx   int `json:"to_idx"`
	PortIdx int `json:"port_idx"`
}

// Solution is a persisted circuit for one level.
type Solution struct {
	UserNodes   []NodeDesc   `json:"user_nodes"`
	Connections []Connection `json:"connections"`
}

// Serialize captures the player nodes and every connection of g.
// Input and Output nodes are not described; they are rebuilt from the level.
func Serialize(g *graph.Graph) Solution {
	order := g.Canonical()
	index := make(map[graph.Handle]int, len(order))
	for i, h := range order {
		index[h] = i
	}

	sol := Solution{
		UserNodes:   []NodeDesc{},
		Connections: []Connection{},
	}

	for _, h := range g.UserNodes() {
		kind, _ := g.Kind(h)
		pos := g.Position(h)
		sol.UserNodes = append(sol.UserNodes, NodeDesc{Type: kind.String(), X: pos.X, Y: pos.Y})
	}

	for to, h := range order {
		for port := 0; port < g.PortCount(h); port++ {
			src, ok := g.Source(h, port)
			if !ok {
				continue
			}
			sol.Connections = append(sol.Connections, Connection{
				FromIdx: index[src],
				ToIdx:   to,
				PortIdx: port,
			})
		}
	}

	return sol
}

// Terminals adds the level's Input and Output nodes to g at their layout
// positions and titles them.
func Terminals(g *graph.Graph, level *levels.Level, layout config.LayoutConfig) {
	for i := 0; i < level.InputCount; i++ {
		h := g.AddNode(gates.Input, components.Position{
			X: layout.InputX,
			Y: layout.InputStartY + i*layout.InputSpacing,
		})
		g.SetLabel(h, level.InputTitle(i))
	}
	for i := 0; i < level.OutputCount; i++ {
		h := g.AddNode(gates.Output, components.Position{
			X: layout.OutputX,
			Y: layout.OutputStartY + i*layout.OutputSpacing,
		})
		g.SetLabel(h, level.OutputTitle(i))
	}
}

// Deserialize rebuilds a level's graph from a solution.
// Unknown node types, out-of-range indices and connections onto occupied
// ports are skipped; loading never fails.
func Deserialize(sol Solution, level *levels.Level, layout config.LayoutConfig) *graph.Graph {
	g := graph.New()
	Terminals(g, level, layout)
	Restore(g, sol)
	return g
}

// Restore adds a solution's nodes and connections to a graph that already
// holds the level's terminals.
// Connection indices resolve against the existing terminals in canonical
// order followed by the loaded nodes in file order. A loaded Input or Output
// descriptor stays in the loaded group.
func Restore(g *graph.Graph, sol Solution) {
	reg := gates.Default()

	order := g.Canonical()

	skipped := 0
	for _, nd := range sol.UserNodes {
		info, ok := reg.Lookup(nd.Type)
		if !ok {
			skipped++
			continue
		}
		h := g.AddNode(info.Kind, components.Position{X: nd.X, Y: nd.Y})
		g.SetLabel(h, info.Title)
		order = append(order, h)
	}

	for _, conn := range sol.Connections {
		if conn.FromIdx < 0 || conn.FromIdx >= len(order) || conn.ToIdx < 0 || conn.ToIdx >= len(order) {
			skipped++
			continue
		}
		if !g.Connect(order[conn.FromIdx], order[conn.ToIdx], conn.PortIdx) {
			skipped++
		}
	}

	if skipped > 0 {
		slog.Warn("solution entries skipped", "count", skipped)
	}
}
