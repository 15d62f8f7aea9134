package graph

import (
	"github.com/pthm-cable/gatelab/components"
	"github.com/pthm-cable/gatelab/gates"
)

// Spawn creates a node from a registry name such as "Nand" or "NandNode".
// Unknown names create nothing and report false.
func (g *Graph) Spawn(reg *gates.Registry, name string, pos components.Position) (Handle, bool) {
	info, ok := reg.Lookup(name)
	if !ok {
		return Handle{}, false
	}
	return g.AddNode(info.Kind, pos), true
}
