package game

import (
	"log/slog"

	"github.com/pthm-cable/gatelab/graph"
	"github.com/pthm-cable/gatelab/levels"
	"github.com/pthm-cable/gatelab/save"
)

// StartLevel resets the editor to the level at idx: fresh terminals plus the
// stored solution, if any. Pass PlaygroundIndex for the sandbox.
// Returns false for locked or unknown levels.
func (g *Game) StartLevel(idx int) bool {
	if !g.Unlocked(idx) {
		return false
	}

	g.levelIdx = idx
	g.simulating = false
	g.message = ""

	level := g.Level()
	gr := graph.New()
	save.Terminals(gr, level, g.cfg.Layout)

	if sol, ok := g.progress.Solution(level.Key()); ok && level.Playable() {
		save.Restore(gr, sol)
	}
	g.setGraph(gr)

	slog.Debug("level started", "index", idx, "level", level.ID, "nodes", gr.Len())
	return true
}

// ContinueLatest starts the furthest unlocked level, clamped to the catalog.
func (g *Game) ContinueLatest() bool {
	idx := min(g.progress.MaxUnlocked, levels.Count()-1)
	return g.StartLevel(idx)
}

// StartPlayground starts the free sandbox.
func (g *Game) StartPlayground() {
	g.StartLevel(PlaygroundIndex)
}

// SaveSolution stores the current circuit for the current level and writes
// the save file. The playground is never saved.
func (g *Game) SaveSolution() error {
	level := g.Level()
	if level == nil || !level.Playable() {
		return nil
	}
	g.progress.Put(level.Key(), save.Serialize(g.graph))
	return g.progress.Store(g.savePath)
}

// Leave saves the current solution before returning to the menu.
func (g *Game) Leave() error {
	g.simulating = false
	return g.SaveSolution()
}

// NextLevel advances to the next level if it is unlocked.
func (g *Game) NextLevel() bool {
	if g.levelIdx == PlaygroundIndex {
		return false
	}
	if g.levelIdx >= levels.Count()-1 || g.levelIdx >= g.progress.MaxUnlocked {
		return false
	}
	return g.StartLevel(g.levelIdx + 1)
}

// PrevLevel returns to the previous level.
func (g *Game) PrevLevel() bool {
	if g.levelIdx <= 0 {
		return false
	}
	return g.StartLevel(g.levelIdx - 1)
}

// CanAdvance reports whether NextLevel would succeed.
func (g *Game) CanAdvance() bool {
	return g.levelIdx != PlaygroundIndex &&
		g.levelIdx < levels.Count()-1 &&
		g.levelIdx < g.progress.MaxUnlocked
}
