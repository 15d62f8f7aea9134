// Package topology analyses the static wiring of a circuit: evaluation order,
// feedback loops, logic depth and unconnected ports.
package topology

import (
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/pthm-cable/gatelab/gates"
	"github.com/pthm-cable/gatelab/graph"
)

// PortRef names one input port.
type PortRef struct {
	Node graph.Handle
	Port int
}

// Report describes a circuit's wiring.
type Report struct {
	Acyclic   bool
	Order     []graph.Handle   // Sources before sinks; nil when cyclic
	Cycles    [][]graph.Handle // Strongly connected groups of two or more nodes
	SelfLoops []graph.Handle   // Nodes feeding one of their own ports
	Depth     int              // Passes needed to cross the longest chain; -1 when cyclic
	Dangling  []PortRef        // Empty ports, in node placement order
}

// PassesNeeded returns the number of passes after which an acyclic circuit is
// guaranteed settled, or -1 for cyclic circuits.
func (r *Report) PassesNeeded() int {
	if !r.Acyclic {
		return -1
	}
	return r.Depth
}

// Analyze builds a directed value-flow graph (source to consumer) and reports
// on it.
func Analyze(g *graph.Graph) Report {
	dg := simple.NewDirectedGraph()
	byID := make(map[int64]graph.Handle, g.Len())

	nodes := g.Nodes()
	for _, h := range nodes {
		id := int64(h.ID())
		byID[id] = h
		dg.AddNode(simple.Node(id))
	}

	var rep Report
	for _, h := range nodes {
		for port := 0; port < g.PortCount(h); port++ {
			src, ok := g.Source(h, port)
			if !ok {
				rep.Dangling = append(rep.Dangling, PortRef{Node: h, Port: port})
				continue
			}
			if src == h {
				// simple.DirectedGraph rejects self edges
				rep.SelfLoops = appendUnique(rep.SelfLoops, h)
				continue
			}
			dg.SetEdge(dg.NewEdge(simple.Node(int64(src.ID())), simple.Node(int64(h.ID()))))
		}
	}

	for _, scc := range topo.TarjanSCC(dg) {
		if len(scc) < 2 {
			continue
		}
		cycle := make([]graph.Handle, len(scc))
		for i, n := range scc {
			cycle[i] = byID[n.ID()]
		}
		rep.Cycles = append(rep.Cycles, cycle)
	}

	rep.Acyclic = len(rep.Cycles) == 0 && len(rep.SelfLoops) == 0
	if !rep.Acyclic {
		rep.Depth = -1
		return rep
	}

	sorted, err := topo.Sort(dg)
	if err != nil {
		rep.Acyclic = false
		rep.Depth = -1
		return rep
	}

	depth := make(map[int64]int, len(sorted))
	rep.Order = make([]graph.Handle, len(sorted))
	for i, n := range sorted {
		h := byID[n.ID()]
		rep.Order[i] = h

		// Inputs are driven, everything else needs at least one pass
		d := 0
		if kind, _ := g.Kind(h); kind != gates.Input {
			d = 1
			for port := 0; port < g.PortCount(h); port++ {
				if src, ok := g.Source(h, port); ok {
					d = max(d, depth[int64(src.ID())]+1)
				}
			}
		}
		depth[n.ID()] = d
		rep.Depth = max(rep.Depth, d)
	}

	return rep
}

func appendUnique(hs []graph.Handle, h graph.Handle) []graph.Handle {
	for _, x := range hs {
		if x == h {
			return hs
		}
	}
	return append(hs, h)
}
