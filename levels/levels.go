// Package levels defines puzzle level specifications and the built-in catalog.
package levels

import (
	"fmt"
	"slices"

	"github.com/pthm-cable/gatelab/gates"
)

// GoalFunc maps an input vector to the expected output vector.
type GoalFunc func(in []bool) []bool

// Level is an immutable puzzle specification.
type Level struct {
	ID           int
	Title        string
	Description  string
	Hint         string
	InputCount   int
	OutputCount  int
	OutputLabels []string
	Allowed      []gates.Kind
	Goal         GoalFunc // nil for free-play levels
}

// Key is the level's key in save files.
func (l *Level) Key() string {
	return fmt.Sprint(l.ID)
}

// Allows reports whether players may place gates of kind k.
func (l *Level) Allows(k gates.Kind) bool {
	return slices.Contains(l.Allowed, k)
}

// Playable reports whether the level has a goal to verify against.
func (l *Level) Playable() bool {
	return l.Goal != nil
}

// InputTitle returns the title of Input node i: "In A", "In B", ...
func (l *Level) InputTitle(i int) string {
	return fmt.Sprintf("In %c", 'A'+rune(i))
}

// OutputTitle returns the title of Output node i, preferring configured labels.
func (l *Level) OutputTitle(i int) string {
	if i < len(l.OutputLabels) {
		return l.OutputLabels[i]
	}
	if l.OutputCount > 1 {
		return fmt.Sprintf("Out %d", i)
	}
	return "LED"
}

// Expected evaluates the goal for one input vector.
// Returns nil for levels without a goal.
func (l *Level) Expected(in []bool) []bool {
	if l.Goal == nil {
		return nil
	}
	return l.Goal(in)
}

// Vector returns the input vector with index k in enumeration order:
// input i takes bit i of k, so input 0 is the least significant bit. Older
// save-game tooling enumerated with input 0 as the most significant bit;
// reported failing vectors follow this order instead.
func Vector(k, n int) []bool {
	v := make([]bool, n)
	for i := range n {
		v[i] = k&(1<<i) != 0
	}
	return v
}

// Space returns the number of input vectors for n inputs.
func Space(n int) int {
	return 1 << n
}
