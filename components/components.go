// Package components defines the ECS components stored on circuit nodes.
package components

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/gatelab/gates"
)

// Gate holds a node's logic kind and its current output value.
type Gate struct {
	Kind  gates.Kind
	Value bool
}

// Ports holds a node's input port sources.
// A zero entity marks an empty port. Sources are lookups only; the world owns
// every node.
type Ports struct {
	Count   uint8
	Sources [gates.MaxArity]ecs.Entity
}

// NewPorts returns empty ports sized to the kind's arity.
func NewPorts(k gates.Kind) Ports {
	return Ports{Count: uint8(k.Arity())}
}

// Source returns the entity feeding port i, or the zero entity.
func (p *Ports) Source(i int) ecs.Entity {
	if i < 0 || i >= int(p.Count) {
		return ecs.Entity{}
	}
	return p.Sources[i]
}

// Occupied reports whether port i has a source.
func (p *Ports) Occupied(i int) bool {
	return !p.Source(i).IsZero()
}

// Position is a node's layout position in canvas units.
// It orders terminals for indexing and is otherwise ignored by the logic.
type Position struct {
	X, Y int
}

// UIState holds transient editor flags. The engine stores them but never reads
// them for evaluation.
type UIState struct {
	Selected bool
	Dragging bool
}

// Placement records the order in which nodes were created.
type Placement struct {
	Seq uint64
}

// Label holds a node's display title, e.g. "In A" or "Carry".
type Label struct {
	Title string
}
